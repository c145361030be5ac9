package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
)

// CaseStatusRepository stores the aggregated compliance status per
// deceased person. The sweep overwrites the previous status on each
// run.
type CaseStatusRepository struct {
	db *sql.DB
}

// NewCaseStatusRepository creates a new CaseStatusRepository.
func NewCaseStatusRepository(db *sql.DB) *CaseStatusRepository {
	return &CaseStatusRepository{db: db}
}

// Save upserts the compliance status for one deceased person.
func (r *CaseStatusRepository) Save(status model.CaseStatus) error {
	findingsJSON, err := marshalJSONColumn(status.Findings)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO case_status (deceased_id, overall_status, findings, checked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(deceased_id) DO UPDATE SET
			overall_status = excluded.overall_status,
			findings = excluded.findings,
			checked_at = excluded.checked_at
	`, status.DeceasedID, status.OverallStatus, findingsJSON, status.CheckedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert case status: %w", err)
	}

	return nil
}

// Get loads the stored compliance status for one deceased person.
func (r *CaseStatusRepository) Get(deceasedID string) (*model.CaseStatus, error) {
	var status model.CaseStatus
	var findingsJSON sql.NullString
	var checkedAtStr string

	err := r.db.QueryRow(`
		SELECT deceased_id, overall_status, findings, checked_at
		FROM case_status WHERE deceased_id = ?
	`, deceasedID).Scan(&status.DeceasedID, &status.OverallStatus, &findingsJSON, &checkedAtStr)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrCaseStatusNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query case status: %w", err)
	}

	status.Findings = []model.ComplianceFinding{}
	if findingsJSON.Valid {
		if err := unmarshalJSONColumn(findingsJSON.String, &status.Findings); err != nil {
			return nil, err
		}
	}
	status.CheckedAt, err = ParseTime(checkedAtStr)
	if err != nil {
		return nil, err
	}

	return &status, nil
}
