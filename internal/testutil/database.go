package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every pooled connection to ":memory:" gets its own database, so
	// the pool must stay at a single connection for the schema to be
	// visible everywhere.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Legal dependant table
		CREATE TABLE legal_dependant (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			deceased_id VARCHAR(36) NOT NULL,
			dependant_id VARCHAR(36) NOT NULL,
			basis_section VARCHAR(20) NOT NULL,
			dependency_basis VARCHAR(20) NOT NULL,
			dependency_level VARCHAR(10) NOT NULL,
			dependency_percentage FLOAT NOT NULL DEFAULT 0,
			monthly_support FLOAT NOT NULL DEFAULT 0,
			dependency_calculation TEXT,
			is_minor BOOLEAN NOT NULL DEFAULT FALSE,
			is_student BOOLEAN NOT NULL DEFAULT FALSE,
			has_disability BOOLEAN NOT NULL DEFAULT FALSE,
			is_claimant BOOLEAN NOT NULL DEFAULT FALSE,
			claim_amount FLOAT,
			claim_currency VARCHAR(3),
			provision_order_issued BOOLEAN NOT NULL DEFAULT FALSE,
			court_order_number VARCHAR(100),
			court_approved_amount FLOAT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT unique_deceased_dependant UNIQUE (deceased_id, dependant_id)
		);

		-- Dependant audit events
		CREATE TABLE dependant_event (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			dependant_id VARCHAR(36) NOT NULL,
			event_type VARCHAR(40) NOT NULL,
			detail TEXT,
			occurred_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(dependant_id) REFERENCES legal_dependant(id)
		);

		-- Evidence document references
		CREATE TABLE dependant_evidence (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			dependant_id VARCHAR(36) NOT NULL,
			document_id VARCHAR(36) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(dependant_id) REFERENCES legal_dependant(id),
			CONSTRAINT unique_dependant_document UNIQUE (dependant_id, document_id)
		);

		-- Stored distribution calculation runs
		CREATE TABLE distribution_result (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			deceased_id VARCHAR(36) NOT NULL,
			section_applied VARCHAR(20) NOT NULL,
			description TEXT,
			net_residue_value FLOAT NOT NULL,
			personal_effects_note TEXT,
			personal_effects_beneficiaries TEXT,
			warnings TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE beneficiary_share (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			distribution_id VARCHAR(36) NOT NULL,
			beneficiary_id VARCHAR(36) NOT NULL,
			share_percentage FLOAT NOT NULL,
			share_value FLOAT NOT NULL,
			interest_type VARCHAR(20) NOT NULL,
			conditions TEXT,
			is_trust BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT,
			FOREIGN KEY(distribution_id) REFERENCES distribution_result(id) ON DELETE CASCADE
		);

		-- Guardianship eligibility assessments
		CREATE TABLE guardianship_assessment (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			candidate_id VARCHAR(36) NOT NULL,
			ward_id VARCHAR(36) NOT NULL,
			is_eligible BOOLEAN NOT NULL,
			requires_bond BOOLEAN NOT NULL,
			bond_reason TEXT,
			rejection_reason TEXT,
			appointment_type VARCHAR(20) NOT NULL,
			warnings TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Aggregated per-deceased compliance status
		CREATE TABLE case_status (
			deceased_id VARCHAR(36) NOT NULL PRIMARY KEY,
			overall_status VARCHAR(15) NOT NULL,
			findings TEXT,
			checked_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Indexes for common lookups
		CREATE INDEX ix_legal_dependant_deceased_id ON legal_dependant(deceased_id);
		CREATE INDEX ix_dependant_event_dependant_id ON dependant_event(dependant_id);
		CREATE INDEX ix_dependant_evidence_dependant_id ON dependant_evidence(dependant_id);
		CREATE INDEX ix_distribution_result_deceased_id ON distribution_result(deceased_id);
		CREATE INDEX ix_beneficiary_share_distribution_id ON beneficiary_share(distribution_id);
		CREATE INDEX ix_guardianship_assessment_ward_id ON guardianship_assessment(ward_id);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"dependant_evidence",
		"dependant_event",
		"legal_dependant",
		"beneficiary_share",
		"distribution_result",
		"guardianship_assessment",
		"case_status",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "legal_dependant", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
