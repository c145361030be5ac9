package request

// GuardianshipCheckRequest represents the request body for a
// guardianship eligibility check.
type GuardianshipCheckRequest struct {
	Candidate         GuardianCandidateRequest `json:"candidate"`
	Ward              WardRequest              `json:"ward"`
	AppointmentSource string                   `json:"appointmentSource"`
	EstateValue       float64                  `json:"estateValue"`
	Record            bool                     `json:"record"`
}

// GuardianCandidateRequest describes the proposed guardian.
type GuardianCandidateRequest struct {
	ID                              string `json:"id"`
	IsDeceased                      bool   `json:"isDeceased"`
	IsMinor                         bool   `json:"isMinor"`
	RequiresSupportedDecisionMaking bool   `json:"requiresSupportedDecisionMaking"`
	IsBankrupt                      bool   `json:"isBankrupt"`
}

// WardRequest describes the ward.
type WardRequest struct {
	ID                              string `json:"id"`
	IsMinor                         bool   `json:"isMinor"`
	RequiresSupportedDecisionMaking bool   `json:"requiresSupportedDecisionMaking"`
	HasSurvivingNaturalParent       bool   `json:"hasSurvivingNaturalParent"`
}
