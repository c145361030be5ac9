package service

import (
	"fmt"

	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/repository"
)

// GuardianshipService evaluates guardianship eligibility under
// S.70-S.73 of the Law of Succession Act and keeps the assessments on
// the case record.
type GuardianshipService struct {
	guardianshipRepo *repository.GuardianshipRepository
}

// NewGuardianshipService creates a new GuardianshipService with the provided repository dependencies.
func NewGuardianshipService(guardianshipRepo *repository.GuardianshipRepository) *GuardianshipService {
	return &GuardianshipService{
		guardianshipRepo: guardianshipRepo,
	}
}

// CheckEligibility evaluates whether the candidate may act as guardian
// for the ward. Disqualifications are terminal; an eligible result
// carries the appointment classification, the bond requirement and any
// statutory warnings.
func (s *GuardianshipService) CheckEligibility(candidate model.GuardianCandidate, ward model.Ward, ctx model.GuardianshipContext) *model.GuardianEligibilityResult {
	result := &model.GuardianEligibilityResult{
		Warnings: []string{},
	}

	if rejection := disqualification(candidate, ward); rejection != "" {
		result.IsEligible = false
		result.RejectionReason = rejection
		return result
	}

	result.IsEligible = true
	result.AppointmentType = classifyAppointment(ctx.AppointmentSource)
	result.RequiresBond, result.BondReason = bondRequirement(result.AppointmentType, candidate)

	// A testamentary guardian does not displace a surviving natural
	// parent: S.70(2) requires them to act jointly.
	if result.AppointmentType == model.AppointmentTestamentary && ward.HasSurvivingNaturalParent {
		result.Warnings = append(result.Warnings,
			"A surviving natural parent acts jointly with the testamentary guardian (S.70(2))")
	}

	return result
}

// NeedsGuardian reports whether the ward requires a guardian at all:
// minors, and persons whose disability requires supported decision
// making.
func (s *GuardianshipService) NeedsGuardian(ward model.Ward) bool {
	return ward.IsMinor || ward.RequiresSupportedDecisionMaking
}

// RecordAssessment persists an eligibility result for the case record.
func (s *GuardianshipService) RecordAssessment(candidateID, wardID string, result *model.GuardianEligibilityResult) (string, error) {
	id, err := s.guardianshipRepo.SaveAssessment(candidateID, wardID, result)
	if err != nil {
		return "", fmt.Errorf("failed to record guardianship assessment: %w", err)
	}
	return id, nil
}

// disqualification returns the terminal rejection reason, or empty when
// the candidate passes the threshold checks.
func disqualification(candidate model.GuardianCandidate, ward model.Ward) string {
	switch {
	case candidate.IsDeceased:
		return "Candidate is deceased"
	case candidate.IsMinor:
		return "Candidate is a minor and cannot hold guardianship"
	case candidate.RequiresSupportedDecisionMaking:
		return "Candidate lacks legal capacity to act as guardian"
	case candidate.ID == ward.ID:
		return "Candidate cannot be their own guardian"
	default:
		return ""
	}
}

// classifyAppointment maps the appointment source to the appointment
// type. Unknown sources classify as de facto guardianship.
func classifyAppointment(source string) string {
	switch source {
	case model.SourceWill:
		return model.AppointmentTestamentary
	case model.SourceCourt:
		return model.AppointmentCourt
	case model.SourceNatural:
		return model.AppointmentNaturalParent
	default:
		return model.AppointmentDeFacto
	}
}

// bondRequirement applies the per-type security rule: court-appointed
// and de facto guardians always post a bond, testamentary guardians and
// natural parents only when bankrupt.
func bondRequirement(appointmentType string, candidate model.GuardianCandidate) (bool, string) {
	switch appointmentType {
	case model.AppointmentCourt:
		return true, "Court-appointed guardians must post security for the ward's estate (S.72)"
	case model.AppointmentDeFacto:
		return true, "De facto guardians must post security pending formal appointment (S.72)"
	default:
		if candidate.IsBankrupt {
			return true, "An undischarged bankrupt must post security before administering the ward's property"
		}
		return false, ""
	}
}
