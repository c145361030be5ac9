package handlers

import (
	"net/http"

	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
)

// ComplianceHandler handles compliance HTTP requests
type ComplianceHandler struct {
	complianceService *service.ComplianceService
	dependencyService *service.DependencyService
}

// NewComplianceHandler creates a new ComplianceHandler
func NewComplianceHandler(
	complianceService *service.ComplianceService,
	dependencyService *service.DependencyService,
) *ComplianceHandler {
	return &ComplianceHandler{
		complianceService: complianceService,
		dependencyService: dependencyService,
	}
}

// DependantFindings reports the compliance findings for one dependant.
//
// Endpoint: GET /api/dependants/{uuid}/compliance
func (h *ComplianceHandler) DependantFindings(w http.ResponseWriter, r *http.Request) {
	dependant, err := h.dependencyService.GetDependant(urlUUID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	findings := h.complianceService.EvaluateDependant(*dependant)
	if findings == nil {
		findings = []model.ComplianceFinding{}
	}
	respondJSON(w, http.StatusOK, findings)
}

// CaseStatus evaluates the live compliance status of a case.
//
// Endpoint: GET /api/compliance/case/{uuid}
func (h *ComplianceHandler) CaseStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.complianceService.EvaluateCase(urlUUID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// StoredCaseStatus returns the status persisted by the last sweep.
//
// Endpoint: GET /api/compliance/case/{uuid}/stored
func (h *ComplianceHandler) StoredCaseStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.complianceService.GetCaseStatus(urlUUID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}
