package handlers

import (
	"net/http"

	"github.com/ndewijer/Succession-Service-Backend/internal/api/request"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
	"github.com/ndewijer/Succession-Service-Backend/internal/validation"
)

// DependantHandler handles legal dependant HTTP requests
type DependantHandler struct {
	dependencyService    *service.DependencyService
	evidenceTokenService *service.EvidenceTokenService
}

// NewDependantHandler creates a new DependantHandler
func NewDependantHandler(
	dependencyService *service.DependencyService,
	evidenceTokenService *service.EvidenceTokenService,
) *DependantHandler {
	return &DependantHandler{
		dependencyService:    dependencyService,
		evidenceTokenService: evidenceTokenService,
	}
}

// Declare registers a new legal dependant.
//
// Endpoint: POST /api/dependants
func (h *DependantHandler) Declare(w http.ResponseWriter, r *http.Request) {
	var req request.DeclareDependantRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := validation.ValidateDeclareDependant(req); err != nil {
		respondServiceError(w, err)
		return
	}

	dependant, err := h.dependencyService.DeclareDependant(req.DeceasedID, req.DependantID, req.Basis, service.DependantFlags{
		IsMinor:       req.IsMinor,
		IsStudent:     req.IsStudent,
		HasDisability: req.HasDisability,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dependant)
}

// Get fetches one dependant.
//
// Endpoint: GET /api/dependants/{uuid}
func (h *DependantHandler) Get(w http.ResponseWriter, r *http.Request) {
	dependant, err := h.dependencyService.GetDependant(urlUUID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dependant)
}

// ListByDeceased lists all dependants declared against one deceased person.
//
// Endpoint: GET /api/dependants/deceased/{uuid}
func (h *DependantHandler) ListByDeceased(w http.ResponseWriter, r *http.Request) {
	dependants, err := h.dependencyService.ListDependantsOfDeceased(urlUUID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if dependants == nil {
		dependants = []model.LegalDependant{}
	}
	respondJSON(w, http.StatusOK, dependants)
}

// Assess records a financial dependency assessment.
//
// Endpoint: POST /api/dependants/{uuid}/assessment
func (h *DependantHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req request.AssessDependencyRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := validation.ValidateAssessDependency(req); err != nil {
		respondServiceError(w, err)
		return
	}

	// Construction failures are caller mistakes the field validation
	// cannot catch, such as future dates or an implausible support level.
	calc, err := buildCalculation(req)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	dependant, err := h.dependencyService.AssessFinancialDependency(urlUUID(r), calc, req.Level)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dependant)
}

// EvidenceResponse reports an evidence attachment outcome. The sealed
// token is what external callers hold instead of the raw document ID.
type EvidenceResponse struct {
	Dependant *model.LegalDependant `json:"dependant"`
	Added     bool                  `json:"added"`
	Token     string                `json:"evidenceToken"`
}

// AddEvidence attaches an evidence document reference. The caller
// supplies either a raw document ID or a sealed token issued earlier.
//
// Endpoint: POST /api/dependants/{uuid}/evidence
func (h *DependantHandler) AddEvidence(w http.ResponseWriter, r *http.Request) {
	var req request.AddEvidenceRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := validation.ValidateAddEvidence(req); err != nil {
		respondServiceError(w, err)
		return
	}

	documentID := req.DocumentID
	if req.EvidenceToken != "" {
		unsealed, err := h.evidenceTokenService.Unseal(req.EvidenceToken)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		documentID = unsealed
	}

	dependant, added, err := h.dependencyService.AddEvidence(urlUUID(r), documentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := h.evidenceTokenService.Seal(documentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, EvidenceResponse{
		Dependant: dependant,
		Added:     added,
		Token:     token,
	})
}

// FileClaim files a S.26 reasonable-provision claim.
//
// Endpoint: POST /api/dependants/{uuid}/claim
func (h *DependantHandler) FileClaim(w http.ResponseWriter, r *http.Request) {
	var req request.FileClaimRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := validation.ValidateFileClaim(req); err != nil {
		respondServiceError(w, err)
		return
	}

	dependant, err := h.dependencyService.FileSection26Claim(urlUUID(r), req.Amount, req.Currency)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dependant)
}

// RecordCourtOrder records the court's provision order.
//
// Endpoint: POST /api/dependants/{uuid}/court-order
func (h *DependantHandler) RecordCourtOrder(w http.ResponseWriter, r *http.Request) {
	var req request.RecordCourtOrderRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := validation.ValidateRecordCourtOrder(req); err != nil {
		respondServiceError(w, err)
		return
	}

	dependant, err := h.dependencyService.RecordCourtProvision(urlUUID(r), req.OrderNumber, req.ApprovedAmount, req.OrderType)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dependant)
}

// Qualification reports the dependant's S.29 standing and advisory provision.
//
// Endpoint: GET /api/dependants/{uuid}/qualification
func (h *DependantHandler) Qualification(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dependencyService.SummarizeQualification(urlUUID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// AuditTrail returns the dependant's event history.
//
// Endpoint: GET /api/dependants/{uuid}/events
func (h *DependantHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	events, err := h.dependencyService.GetAuditTrail(urlUUID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if events == nil {
		events = []model.DependantEvent{}
	}
	respondJSON(w, http.StatusOK, events)
}

// buildCalculation converts an assessment request into the domain value
// object, running its construction-time invariants.
func buildCalculation(req request.AssessDependencyRequest) (model.DependencyCalculation, error) {
	startDate, err := parseDate(req.SupportStartDate)
	if err != nil {
		return model.DependencyCalculation{}, err
	}

	calc := model.DependencyCalculation{
		DeceasedMonthlyIncome: req.DeceasedMonthlyIncome,
		DependantMonthlyNeeds: req.DependantMonthlyNeeds,
		SupportAmount:         req.SupportAmount,
		SupportFrequency:      req.SupportFrequency,
		SupportStartDate:      startDate,
		DependencyPercentage:  req.DependencyPercentage,
	}

	if req.SupportEndDate != nil {
		endDate, err := parseDate(*req.SupportEndDate)
		if err != nil {
			return model.DependencyCalculation{}, err
		}
		calc.SupportEndDate = &endDate
	}

	return model.NewDependencyCalculation(calc)
}
