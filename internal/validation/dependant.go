package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Succession-Service-Backend/internal/api/request"
)

// ValidDependencyBasis contains the allowed dependency basis values.
var ValidDependencyBasis = map[string]bool{
	"SPOUSE": true, "CHILD": true, "PARENT": true,
	"SIBLING": true, "COHABITOR": true, "OTHER": true,
}

// ValidDependencyLevel contains the allowed dependency level values.
var ValidDependencyLevel = map[string]bool{
	"NONE": true, "PARTIAL": true, "FULL": true,
}

// ValidSupportFrequency contains the allowed support frequency values.
var ValidSupportFrequency = map[string]bool{
	"WEEKLY": true, "MONTHLY": true, "ANNUAL": true,
}

// ValidateDeclareDependant validates a dependant declaration request.
//
// Required fields:
//   - deceasedId: Must be a valid UUID
//   - dependantId: Must be a valid UUID, distinct from deceasedId
//   - dependencyBasis: Must be one of: SPOUSE, CHILD, PARENT, SIBLING, COHABITOR, OTHER
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateDeclareDependant(req request.DeclareDependantRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.DeceasedID); err != nil {
		errors["deceasedId"] = err.Error()
	}
	if err := ValidateUUID(req.DependantID); err != nil {
		errors["dependantId"] = err.Error()
	}
	if req.DeceasedID != "" && req.DeceasedID == req.DependantID {
		errors["dependantId"] = "dependant cannot be the deceased"
	}

	if strings.TrimSpace(req.Basis) == "" {
		errors["dependencyBasis"] = "dependencyBasis is required"
	} else if !ValidDependencyBasis[req.Basis] {
		errors["dependencyBasis"] = fmt.Sprintf("invalid basis: %s", req.Basis)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateAssessDependency validates a dependency assessment request.
//
// Required fields:
//   - supportFrequency: Must be one of: WEEKLY, MONTHLY, ANNUAL
//   - supportStartDate: Must be in YYYY-MM-DD format
//   - dependencyLevel: Must be one of: NONE, PARTIAL, FULL
//   - monetary fields: Must be non-negative
//   - dependencyPercentage: Must be within [0, 100]
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateAssessDependency(req request.AssessDependencyRequest) error {
	errors := make(map[string]string)

	if req.DeceasedMonthlyIncome < 0 {
		errors["deceasedMonthlyIncome"] = "deceasedMonthlyIncome cannot be negative"
	}
	if req.DependantMonthlyNeeds < 0 {
		errors["dependantMonthlyNeeds"] = "dependantMonthlyNeeds cannot be negative"
	}
	if req.SupportAmount < 0 {
		errors["supportAmount"] = "supportAmount cannot be negative"
	}
	if req.DependencyPercentage < 0 || req.DependencyPercentage > 100 {
		errors["dependencyPercentage"] = "dependencyPercentage must be between 0 and 100"
	}

	if strings.TrimSpace(req.SupportFrequency) == "" {
		errors["supportFrequency"] = "supportFrequency is required"
	} else if !ValidSupportFrequency[req.SupportFrequency] {
		errors["supportFrequency"] = fmt.Sprintf("invalid frequency: %s", req.SupportFrequency)
	}

	if strings.TrimSpace(req.SupportStartDate) == "" {
		errors["supportStartDate"] = "supportStartDate is required"
	} else if _, err := time.Parse("2006-01-02", req.SupportStartDate); err != nil {
		errors["supportStartDate"] = err.Error()
	}

	if req.SupportEndDate != nil {
		if _, err := time.Parse("2006-01-02", *req.SupportEndDate); err != nil {
			errors["supportEndDate"] = err.Error()
		}
	}

	if strings.TrimSpace(req.Level) == "" {
		errors["dependencyLevel"] = "dependencyLevel is required"
	} else if !ValidDependencyLevel[req.Level] {
		errors["dependencyLevel"] = fmt.Sprintf("invalid level: %s", req.Level)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateAddEvidence validates an evidence attachment request. Exactly
// one of documentId and evidenceToken must be supplied.
func ValidateAddEvidence(req request.AddEvidenceRequest) error {
	errors := make(map[string]string)

	hasDocument := strings.TrimSpace(req.DocumentID) != ""
	hasToken := strings.TrimSpace(req.EvidenceToken) != ""

	switch {
	case !hasDocument && !hasToken:
		errors["documentId"] = "either documentId or evidenceToken is required"
	case hasDocument && hasToken:
		errors["documentId"] = "documentId and evidenceToken are mutually exclusive"
	case hasDocument:
		if err := ValidateUUID(req.DocumentID); err != nil {
			errors["documentId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateFileClaim validates a S.26 claim request.
func ValidateFileClaim(req request.FileClaimRequest) error {
	errors := make(map[string]string)

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}
	if strings.TrimSpace(req.Currency) == "" {
		errors["currency"] = "currency is required"
	} else if len(req.Currency) != 3 {
		errors["currency"] = "currency must be a 3-letter code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateRecordCourtOrder validates a court provision order request.
func ValidateRecordCourtOrder(req request.RecordCourtOrderRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.OrderNumber) == "" {
		errors["orderNumber"] = "orderNumber is required"
	}
	if req.ApprovedAmount < 0 {
		errors["approvedAmount"] = "approvedAmount cannot be negative"
	}
	if strings.TrimSpace(req.OrderType) == "" {
		errors["orderType"] = "orderType is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
