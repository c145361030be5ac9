package model

// Appointment sources supplied by the caller and the appointment types
// they classify to.
const (
	SourceWill    = "WILL"
	SourceCourt   = "COURT"
	SourceNatural = "NATURAL"

	AppointmentTestamentary  = "TESTAMENTARY"
	AppointmentCourt         = "COURT_APPOINTED"
	AppointmentNaturalParent = "NATURAL_PARENT"
	AppointmentDeFacto       = "DE_FACTO"
)

// GuardianCandidate is a person proposed as guardian for a ward.
type GuardianCandidate struct {
	ID                              string `json:"id"`
	IsDeceased                      bool   `json:"isDeceased"`
	IsMinor                         bool   `json:"isMinor"`
	RequiresSupportedDecisionMaking bool   `json:"requiresSupportedDecisionMaking"`
	IsBankrupt                      bool   `json:"isBankrupt"`
}

// Ward is the person a guardian would act for.
type Ward struct {
	ID                              string `json:"id"`
	IsMinor                         bool   `json:"isMinor"`
	RequiresSupportedDecisionMaking bool   `json:"requiresSupportedDecisionMaking"`
	HasSurvivingNaturalParent       bool   `json:"hasSurvivingNaturalParent"`
}

// GuardianshipContext carries the circumstances of the proposed
// appointment.
type GuardianshipContext struct {
	AppointmentSource string  `json:"appointmentSource"`
	EstateValue       float64 `json:"estateValue"`
}

// GuardianEligibilityResult is the outcome of a guardianship
// eligibility check. A rejection is terminal; warnings accompany an
// eligible result without blocking it.
type GuardianEligibilityResult struct {
	IsEligible      bool     `json:"isEligible"`
	RequiresBond    bool     `json:"requiresBond"`
	BondReason      string   `json:"bondReason,omitempty"`
	RejectionReason string   `json:"rejectionReason,omitempty"`
	Warnings        []string `json:"warnings"`
	AppointmentType string   `json:"appointmentType"`
}
