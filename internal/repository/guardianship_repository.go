package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
)

// GuardianshipRepository stores guardianship eligibility assessments
// for the case record.
type GuardianshipRepository struct {
	db *sql.DB
}

// NewGuardianshipRepository creates a new GuardianshipRepository.
func NewGuardianshipRepository(db *sql.DB) *GuardianshipRepository {
	return &GuardianshipRepository{db: db}
}

// SaveAssessment stores one eligibility result and returns its ID.
func (r *GuardianshipRepository) SaveAssessment(candidateID, wardID string, result *model.GuardianEligibilityResult) (string, error) {
	warningsJSON, err := marshalJSONColumn(result.Warnings)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = r.db.Exec(`
		INSERT INTO guardianship_assessment (id, candidate_id, ward_id, is_eligible, requires_bond, bond_reason, rejection_reason, appointment_type, warnings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, candidateID, wardID, result.IsEligible, result.RequiresBond,
		result.BondReason, result.RejectionReason, result.AppointmentType,
		warningsJSON, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to insert guardianship assessment: %w", err)
	}

	return id, nil
}

// GetAssessment loads a stored eligibility assessment.
func (r *GuardianshipRepository) GetAssessment(id string) (*model.GuardianEligibilityResult, error) {
	var result model.GuardianEligibilityResult
	var warningsJSON sql.NullString
	var bondReason, rejectionReason sql.NullString

	err := r.db.QueryRow(`
		SELECT is_eligible, requires_bond, bond_reason, rejection_reason, appointment_type, warnings
		FROM guardianship_assessment WHERE id = ?
	`, id).Scan(&result.IsEligible, &result.RequiresBond, &bondReason, &rejectionReason, &result.AppointmentType, &warningsJSON)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrGuardianshipAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query guardianship assessment: %w", err)
	}

	result.BondReason = bondReason.String
	result.RejectionReason = rejectionReason.String
	result.Warnings = []string{}
	if warningsJSON.Valid {
		if err := unmarshalJSONColumn(warningsJSON.String, &result.Warnings); err != nil {
			return nil, err
		}
	}

	return &result, nil
}
