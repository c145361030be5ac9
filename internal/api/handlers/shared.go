package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/validation"
)

// urlUUID extracts the uuid URL parameter. Routes using it are guarded
// by middleware.ValidateUUIDMiddleware.
func urlUUID(r *http.Request) string {
	return chi.URLParam(r, "uuid")
}

// parseDate parses a date string in "2006-01-02" or RFC3339 format.
func parseDate(str string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return parsed.UTC(), nil
}

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps a service-layer error to an HTTP status and
// sends a structured error response.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrDependantNotFound),
		errors.Is(err, apperrors.ErrDistributionNotFound),
		errors.Is(err, apperrors.ErrCaseStatusNotFound),
		errors.Is(err, apperrors.ErrGuardianshipAssessmentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrVersionConflict),
		errors.Is(err, apperrors.ErrDuplicateDependant):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrNegativeEstateValue),
		errors.Is(err, apperrors.ErrNoHouses),
		errors.Is(err, apperrors.ErrDependantIsDeceased),
		errors.Is(err, apperrors.ErrUnknownDependencyBasis),
		errors.Is(err, apperrors.ErrInvalidClaimAmount),
		errors.Is(err, apperrors.ErrInvalidEvidenceToken),
		errors.Is(err, apperrors.ErrNegativeAmount),
		errors.Is(err, apperrors.ErrEmptyID),
		errors.Is(err, apperrors.ErrMissingRequiredField):
		status = http.StatusBadRequest
	}

	respondJSON(w, status, map[string]string{
		"error": err.Error(),
	})
}

// decodeJSONBody decodes the request body into target, responding with
// 400 on malformed JSON. Returns false when decoding failed and a
// response has already been written.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return false
	}
	return true
}
