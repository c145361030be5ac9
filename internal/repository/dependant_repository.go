package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
)

// DependantRepository persists legal dependants. Dependant records are
// legal audit material: the repository offers no delete, and every
// update is guarded by the entity's optimistic-concurrency version.
type DependantRepository struct {
	db *sql.DB
}

// NewDependantRepository creates a new DependantRepository.
func NewDependantRepository(db *sql.DB) *DependantRepository {
	return &DependantRepository{db: db}
}

const dependantColumns = `
	id, deceased_id, dependant_id, basis_section, dependency_basis,
	dependency_level, dependency_percentage, monthly_support, dependency_calculation,
	is_minor, is_student, has_disability, is_claimant, claim_amount, claim_currency,
	provision_order_issued, court_order_number, court_approved_amount,
	version, created_at, updated_at`

// Create inserts a new dependant together with its declaration event in
// one transaction. A second declaration for the same deceased/dependant
// pair fails with ErrDuplicateDependant.
func (r *DependantRepository) Create(d *model.LegalDependant, event model.DependantEvent) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	calcJSON, err := marshalJSONColumn(d.Calculation)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO legal_dependant (`+dependantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.ID, d.DeceasedID, d.DependantID, d.BasisSection, d.DependencyBasis,
		d.DependencyLevel, d.DependencyPercentage, d.MonthlySupport, calcJSON,
		d.IsMinor, d.IsStudent, d.HasDisability, d.IsClaimant,
		nullFloat(d.ClaimAmount, d.IsClaimant), nullString(d.ClaimCurrency),
		d.ProvisionOrderIssued, nullString(d.CourtOrderNumber),
		nullFloat(d.CourtApprovedAmount, d.ProvisionOrderIssued),
		d.Version, d.CreatedAt.Format(time.RFC3339), d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return apperrors.ErrDuplicateDependant
		}
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveDependant, err)
	}

	if err := insertEvent(tx, event); err != nil {
		return err
	}

	return tx.Commit()
}

// Update writes the dependant back, asserting the version the caller
// loaded. A zero-row update means a competing writer got there first:
// the caller receives ErrVersionConflict and must reload and retry,
// never merge.
func (r *DependantRepository) Update(d *model.LegalDependant, expectedVersion int64, events []model.DependantEvent) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	calcJSON, err := marshalJSONColumn(d.Calculation)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`
		UPDATE legal_dependant
		SET dependency_level = ?, dependency_percentage = ?, monthly_support = ?,
			dependency_calculation = ?, is_minor = ?, is_student = ?, has_disability = ?,
			is_claimant = ?, claim_amount = ?, claim_currency = ?,
			provision_order_issued = ?, court_order_number = ?, court_approved_amount = ?,
			version = ?, updated_at = ?
		WHERE id = ? AND version = ?
	`,
		d.DependencyLevel, d.DependencyPercentage, d.MonthlySupport,
		calcJSON, d.IsMinor, d.IsStudent, d.HasDisability,
		d.IsClaimant, nullFloat(d.ClaimAmount, d.IsClaimant), nullString(d.ClaimCurrency),
		d.ProvisionOrderIssued, nullString(d.CourtOrderNumber),
		nullFloat(d.CourtApprovedAmount, d.ProvisionOrderIssued),
		d.Version, d.UpdatedAt.Format(time.RFC3339),
		d.ID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveDependant, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		// Either the record vanished or the version is stale. The
		// record is never deleted, so a missing row still means the
		// caller raced another writer on a fresh record.
		var exists int
		if scanErr := tx.QueryRow("SELECT COUNT(*) FROM legal_dependant WHERE id = ?", d.ID).Scan(&exists); scanErr == nil && exists == 0 {
			return apperrors.ErrDependantNotFound
		}
		return apperrors.ErrVersionConflict
	}

	for _, docID := range d.EvidenceDocuments {
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO dependant_evidence (id, dependant_id, document_id)
			VALUES (?, ?, ?)
		`, uuid.New().String(), d.ID, docID)
		if err != nil {
			return fmt.Errorf("failed to insert evidence reference: %w", err)
		}
	}

	for _, event := range events {
		if err := insertEvent(tx, event); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID loads a dependant with its evidence references.
func (r *DependantRepository) GetByID(id string) (*model.LegalDependant, error) {
	row := r.db.QueryRow(`SELECT `+dependantColumns+` FROM legal_dependant WHERE id = ?`, id)

	d, err := scanDependant(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrDependantNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadEvidence(d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByDeceasedAndDependant loads a dependant by its natural key.
func (r *DependantRepository) GetByDeceasedAndDependant(deceasedID, dependantID string) (*model.LegalDependant, error) {
	row := r.db.QueryRow(`
		SELECT `+dependantColumns+` FROM legal_dependant
		WHERE deceased_id = ? AND dependant_id = ?
	`, deceasedID, dependantID)

	d, err := scanDependant(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrDependantNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadEvidence(d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListByDeceased returns all dependants declared against one deceased
// person, oldest declaration first.
func (r *DependantRepository) ListByDeceased(deceasedID string) ([]model.LegalDependant, error) {
	rows, err := r.db.Query(`
		SELECT `+dependantColumns+` FROM legal_dependant
		WHERE deceased_id = ?
		ORDER BY created_at ASC
	`, deceasedID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveDependants, err)
	}
	defer rows.Close()

	var dependants []model.LegalDependant
	for rows.Next() {
		d, err := scanDependant(rows)
		if err != nil {
			return nil, err
		}
		dependants = append(dependants, *d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dependants: %w", err)
	}
	rows.Close()

	// Evidence is loaded only after the dependant cursor is drained and
	// closed: a nested query would check out a second pool connection,
	// and an in-memory database exists per connection.
	for i := range dependants {
		if err := r.loadEvidence(&dependants[i]); err != nil {
			return nil, err
		}
	}

	return dependants, nil
}

// ListDeceasedIDs returns the distinct deceased IDs with declared
// dependants. Used by the compliance sweep.
func (r *DependantRepository) ListDeceasedIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT deceased_id FROM legal_dependant ORDER BY deceased_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveDependants, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan deceased ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deceased IDs: %w", err)
	}

	return ids, nil
}

// ListEvents returns the audit trail of a dependant, oldest first.
func (r *DependantRepository) ListEvents(dependantID string) ([]model.DependantEvent, error) {
	rows, err := r.db.Query(`
		SELECT id, dependant_id, event_type, detail, occurred_at
		FROM dependant_event
		WHERE dependant_id = ?
		ORDER BY occurred_at ASC
	`, dependantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dependant events: %w", err)
	}
	defer rows.Close()

	var events []model.DependantEvent
	for rows.Next() {
		var e model.DependantEvent
		var occurredAtStr string
		if err := rows.Scan(&e.ID, &e.DependantID, &e.Type, &e.Detail, &occurredAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan dependant event: %w", err)
		}
		e.OccurredAt, err = ParseTime(occurredAtStr)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dependant events: %w", err)
	}

	return events, nil
}

func (r *DependantRepository) loadEvidence(d *model.LegalDependant) error {
	rows, err := r.db.Query(`
		SELECT document_id FROM dependant_evidence
		WHERE dependant_id = ?
		ORDER BY created_at ASC
	`, d.ID)
	if err != nil {
		return fmt.Errorf("failed to query evidence references: %w", err)
	}
	defer rows.Close()

	d.EvidenceDocuments = nil
	for rows.Next() {
		var docID string
		if err := rows.Scan(&docID); err != nil {
			return fmt.Errorf("failed to scan evidence reference: %w", err)
		}
		d.EvidenceDocuments = append(d.EvidenceDocuments, docID)
	}
	return rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDependant(row rowScanner) (*model.LegalDependant, error) {
	var d model.LegalDependant
	var calcJSON sql.NullString
	var claimAmount, courtApprovedAmount sql.NullFloat64
	var claimCurrency, courtOrderNumber sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&d.ID, &d.DeceasedID, &d.DependantID, &d.BasisSection, &d.DependencyBasis,
		&d.DependencyLevel, &d.DependencyPercentage, &d.MonthlySupport, &calcJSON,
		&d.IsMinor, &d.IsStudent, &d.HasDisability, &d.IsClaimant, &claimAmount, &claimCurrency,
		&d.ProvisionOrderIssued, &courtOrderNumber, &courtApprovedAmount,
		&d.Version, &createdAtStr, &updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan dependant: %w", err)
	}

	if calcJSON.Valid && calcJSON.String != "" {
		var calc model.DependencyCalculation
		if err := unmarshalJSONColumn(calcJSON.String, &calc); err != nil {
			return nil, err
		}
		d.Calculation = &calc
	}
	d.ClaimAmount = claimAmount.Float64
	d.ClaimCurrency = claimCurrency.String
	d.CourtOrderNumber = courtOrderNumber.String
	d.CourtApprovedAmount = courtApprovedAmount.Float64

	d.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return nil, err
	}
	d.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func insertEvent(tx *sql.Tx, event model.DependantEvent) error {
	_, err := tx.Exec(`
		INSERT INTO dependant_event (id, dependant_id, event_type, detail, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`, event.ID, event.DependantID, event.Type, event.Detail, event.OccurredAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert dependant event: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f float64, valid bool) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: valid}
}
