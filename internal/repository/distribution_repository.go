package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
)

// DistributionRepository stores completed distribution calculation runs
// with their beneficiary shares.
type DistributionRepository struct {
	db *sql.DB
}

// NewDistributionRepository creates a new DistributionRepository.
func NewDistributionRepository(db *sql.DB) *DistributionRepository {
	return &DistributionRepository{db: db}
}

// SaveResult records one intestate distribution run. Shares are written
// in the same transaction as the result row.
func (r *DistributionRepository) SaveResult(deceasedID string, netResidueValue float64, result *model.IntestateDistributionResult) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	warningsJSON, err := marshalJSONColumn(result.Warnings)
	if err != nil {
		return "", err
	}
	effectsJSON, err := marshalJSONColumn(result.PersonalEffects.BeneficiaryIDs)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = tx.Exec(`
		INSERT INTO distribution_result (id, deceased_id, section_applied, description, net_residue_value, personal_effects_note, personal_effects_beneficiaries, warnings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, deceasedID, result.SectionApplied, result.Description, netResidueValue,
		result.PersonalEffects.Note, effectsJSON, warningsJSON, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveDistribution, err)
	}

	for _, share := range result.ResidueDistribution {
		_, err = tx.Exec(`
			INSERT INTO beneficiary_share (id, distribution_id, beneficiary_id, share_percentage, share_value, interest_type, conditions, is_trust, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), id, share.BeneficiaryID, share.SharePercentage,
			share.ShareValue, share.InterestType, share.Conditions, share.IsTrust, share.Description)
		if err != nil {
			return "", fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveDistribution, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveDistribution, err)
	}
	return id, nil
}

// GetResult loads a stored distribution run with its shares.
func (r *DistributionRepository) GetResult(id string) (*model.IntestateDistributionResult, error) {
	var result model.IntestateDistributionResult
	var effectsJSON, warningsJSON sql.NullString

	err := r.db.QueryRow(`
		SELECT section_applied, description, personal_effects_note, personal_effects_beneficiaries, warnings
		FROM distribution_result WHERE id = ?
	`, id).Scan(&result.SectionApplied, &result.Description, &result.PersonalEffects.Note, &effectsJSON, &warningsJSON)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrDistributionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution result: %w", err)
	}

	if effectsJSON.Valid {
		if err := unmarshalJSONColumn(effectsJSON.String, &result.PersonalEffects.BeneficiaryIDs); err != nil {
			return nil, err
		}
	}
	result.Warnings = []string{}
	if warningsJSON.Valid {
		if err := unmarshalJSONColumn(warningsJSON.String, &result.Warnings); err != nil {
			return nil, err
		}
	}

	rows, err := r.db.Query(`
		SELECT beneficiary_id, share_percentage, share_value, interest_type, conditions, is_trust, description
		FROM beneficiary_share
		WHERE distribution_id = ?
		ORDER BY beneficiary_id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiary shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share model.BeneficiaryShare
		var conditions sql.NullString
		err := rows.Scan(
			&share.BeneficiaryID, &share.SharePercentage, &share.ShareValue,
			&share.InterestType, &conditions, &share.IsTrust, &share.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary share: %w", err)
		}
		share.Conditions = conditions.String
		result.ResidueDistribution = append(result.ResidueDistribution, share)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beneficiary shares: %w", err)
	}

	return &result, nil
}
