package validation

import (
	"github.com/ndewijer/Succession-Service-Backend/internal/api/request"
)

// ValidAppointmentSource contains the recognised appointment sources.
// Unknown sources are accepted by the policy and classify as de facto,
// so validation only requires the candidate and ward identities.
var ValidAppointmentSource = map[string]bool{
	"WILL": true, "COURT": true, "NATURAL": true,
}

// ValidateGuardianshipCheck validates a guardianship eligibility check
// request.
//
// Required fields:
//   - candidate.id: Must be a valid UUID
//   - ward.id: Must be a valid UUID
//   - estateValue: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateGuardianshipCheck(req request.GuardianshipCheckRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.Candidate.ID); err != nil {
		errors["candidate.id"] = err.Error()
	}
	if err := ValidateUUID(req.Ward.ID); err != nil {
		errors["ward.id"] = err.Error()
	}
	if req.EstateValue < 0 {
		errors["estateValue"] = "estateValue cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
