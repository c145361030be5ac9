package handlers

import (
	"net/http"

	"github.com/ndewijer/Succession-Service-Backend/internal/api/request"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
	"github.com/ndewijer/Succession-Service-Backend/internal/validation"
)

// GuardianshipHandler handles guardianship eligibility HTTP requests
type GuardianshipHandler struct {
	guardianshipService *service.GuardianshipService
}

// NewGuardianshipHandler creates a new GuardianshipHandler
func NewGuardianshipHandler(guardianshipService *service.GuardianshipService) *GuardianshipHandler {
	return &GuardianshipHandler{
		guardianshipService: guardianshipService,
	}
}

// GuardianshipCheckResponse wraps an eligibility result with the
// assessment record ID when the caller asked for it to be recorded.
type GuardianshipCheckResponse struct {
	AssessmentID  string                           `json:"assessmentId,omitempty"`
	NeedsGuardian bool                             `json:"needsGuardian"`
	Result        *model.GuardianEligibilityResult `json:"result"`
}

// Check evaluates guardianship eligibility for a candidate and ward.
//
// Endpoint: POST /api/guardianship/check
func (h *GuardianshipHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req request.GuardianshipCheckRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := validation.ValidateGuardianshipCheck(req); err != nil {
		respondServiceError(w, err)
		return
	}

	candidate := model.GuardianCandidate{
		ID:                              req.Candidate.ID,
		IsDeceased:                      req.Candidate.IsDeceased,
		IsMinor:                         req.Candidate.IsMinor,
		RequiresSupportedDecisionMaking: req.Candidate.RequiresSupportedDecisionMaking,
		IsBankrupt:                      req.Candidate.IsBankrupt,
	}
	ward := model.Ward{
		ID:                              req.Ward.ID,
		IsMinor:                         req.Ward.IsMinor,
		RequiresSupportedDecisionMaking: req.Ward.RequiresSupportedDecisionMaking,
		HasSurvivingNaturalParent:       req.Ward.HasSurvivingNaturalParent,
	}
	ctx := model.GuardianshipContext{
		AppointmentSource: req.AppointmentSource,
		EstateValue:       req.EstateValue,
	}

	result := h.guardianshipService.CheckEligibility(candidate, ward, ctx)

	response := GuardianshipCheckResponse{
		NeedsGuardian: h.guardianshipService.NeedsGuardian(ward),
		Result:        result,
	}

	if req.Record {
		assessmentID, err := h.guardianshipService.RecordAssessment(candidate.ID, ward.ID, result)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		response.AssessmentID = assessmentID
	}

	respondJSON(w, http.StatusOK, response)
}
