package handlers

import (
	"net/http"

	"github.com/ndewijer/Succession-Service-Backend/internal/api/request"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
	"github.com/ndewijer/Succession-Service-Backend/internal/validation"
)

// SuccessionHandler handles distribution calculation HTTP requests
type SuccessionHandler struct {
	successionService *service.SuccessionService
}

// NewSuccessionHandler creates a new SuccessionHandler
func NewSuccessionHandler(successionService *service.SuccessionService) *SuccessionHandler {
	return &SuccessionHandler{
		successionService: successionService,
	}
}

// IntestateDistributionResponse wraps a stored distribution result with
// its record ID.
type IntestateDistributionResponse struct {
	ResultID string                            `json:"resultId"`
	Result   model.IntestateDistributionResult `json:"result"`
}

// CalculateIntestate runs a single-house intestate distribution.
//
// Endpoint: POST /api/succession/intestate
func (h *SuccessionHandler) CalculateIntestate(w http.ResponseWriter, r *http.Request) {
	var req request.IntestateDistributionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := validation.ValidateIntestateDistribution(req); err != nil {
		respondServiceError(w, err)
		return
	}

	structure := model.SuccessionStructure{
		SurvivingSpouses:          req.SurvivingSpouses,
		LivingChildren:            req.LivingChildren,
		DeceasedChildrenWithIssue: req.DeceasedChildrenWithIssue,
		LivingParents:             req.LivingParents,
	}

	result, resultID, err := h.successionService.CalculateIntestate(req.DeceasedID, req.NetResidueValue, structure)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, IntestateDistributionResponse{
		ResultID: resultID,
		Result:   *result,
	})
}

// CalculatePolygamous runs a S.40 polygamous estate distribution.
//
// Endpoint: POST /api/succession/polygamous
func (h *SuccessionHandler) CalculatePolygamous(w http.ResponseWriter, r *http.Request) {
	var req request.PolygamousDistributionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := validation.ValidatePolygamousDistribution(req); err != nil {
		respondServiceError(w, err)
		return
	}

	houses := make([]model.PolygamousHouse, len(req.Houses))
	for i, house := range req.Houses {
		houses[i] = model.PolygamousHouse{
			HouseID:     house.HouseID,
			SpouseID:    house.SpouseID,
			ChildrenIDs: house.ChildrenIDs,
		}
	}

	plan, err := h.successionService.CalculatePolygamous(req.DeceasedID, req.TotalEstateValue, houses)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// GetDistribution fetches a stored distribution run.
//
// Endpoint: GET /api/succession/distribution/{uuid}
func (h *SuccessionHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	resultID := urlUUID(r)

	result, err := h.successionService.GetDistribution(resultID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
