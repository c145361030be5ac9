package request

// DeclareDependantRequest represents the request body for declaring a
// legal dependant of a deceased person.
type DeclareDependantRequest struct {
	DeceasedID    string `json:"deceasedId"`
	DependantID   string `json:"dependantId"`
	Basis         string `json:"dependencyBasis"`
	IsMinor       bool   `json:"isMinor"`
	IsStudent     bool   `json:"isStudent"`
	HasDisability bool   `json:"hasDisability"`
}

// AssessDependencyRequest represents the request body for recording a
// financial dependency assessment. Dates use YYYY-MM-DD format.
type AssessDependencyRequest struct {
	DeceasedMonthlyIncome float64 `json:"deceasedMonthlyIncome"`
	DependantMonthlyNeeds float64 `json:"dependantMonthlyNeeds"`
	SupportAmount         float64 `json:"supportAmount"`
	SupportFrequency      string  `json:"supportFrequency"`
	SupportStartDate      string  `json:"supportStartDate"`
	SupportEndDate        *string `json:"supportEndDate,omitempty"`
	DependencyPercentage  float64 `json:"dependencyPercentage"`
	Level                 string  `json:"dependencyLevel"`
}

// AddEvidenceRequest attaches an evidence document. Either a raw
// document ID (trusted internal callers) or a sealed evidence token
// issued earlier by this service.
type AddEvidenceRequest struct {
	DocumentID    string `json:"documentId,omitempty"`
	EvidenceToken string `json:"evidenceToken,omitempty"`
}

// FileClaimRequest represents the request body for filing a S.26 claim.
type FileClaimRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// RecordCourtOrderRequest represents the request body for recording a
// court provision order.
type RecordCourtOrderRequest struct {
	OrderNumber    string  `json:"orderNumber"`
	ApprovedAmount float64 `json:"approvedAmount"`
	OrderType      string  `json:"orderType"`
}
