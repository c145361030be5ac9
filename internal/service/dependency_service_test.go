package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
	"github.com/ndewijer/Succession-Service-Backend/internal/testutil"
)

func assessedCalculation(t *testing.T, percentage float64) model.DependencyCalculation {
	t.Helper()

	calc, err := model.NewDependencyCalculation(model.DependencyCalculation{
		DeceasedMonthlyIncome: 5000,
		DependantMonthlyNeeds: 2000,
		SupportAmount:         1000,
		SupportFrequency:      model.FrequencyMonthly,
		SupportStartDate:      testutil.DateAt(2020, time.January, 15),
		DependencyPercentage:  percentage,
	})
	if err != nil {
		t.Fatalf("NewDependencyCalculation() returned unexpected error: %v", err)
	}
	return calc
}

// TestDependencyService_DeclareDependant tests dependant declaration
// through the persistence layer.
//
// WHY: Declaration writes the entity and its audit event in one
// transaction, and the natural-key uniqueness must hold across the
// service boundary, not only in the model.
func TestDependencyService_DeclareDependant(t *testing.T) {
	t.Run("declares and persists the declaration event", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDependencyService(t, db)
		deceasedID := testutil.MakeID()

		// Execute
		dependant, err := svc.DeclareDependant(deceasedID, testutil.MakeID(), model.BasisChild, service.DependantFlags{IsMinor: true})

		// Assert
		if err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}
		if !dependant.IsMinor {
			t.Error("Expected minor flag persisted")
		}
		testutil.AssertRowCount(t, db, "legal_dependant", 1)
		testutil.AssertRowCount(t, db, "dependant_event", 1)

		// Verify the stored record round-trips
		loaded, err := svc.GetDependant(dependant.ID)
		if err != nil {
			t.Fatalf("GetDependant() returned unexpected error: %v", err)
		}
		if loaded.DeceasedID != deceasedID || loaded.DependencyBasis != model.BasisChild {
			t.Errorf("Loaded dependant does not match declaration: %+v", loaded)
		}
	})

	t.Run("duplicate declaration fails with ErrDuplicateDependant", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDependencyService(t, db)
		deceasedID := testutil.MakeID()
		dependantID := testutil.MakeID()

		if _, err := svc.DeclareDependant(deceasedID, dependantID, model.BasisChild, service.DependantFlags{}); err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}

		// Execute
		_, err := svc.DeclareDependant(deceasedID, dependantID, model.BasisSibling, service.DependantFlags{})

		// Assert
		if !errors.Is(err, apperrors.ErrDuplicateDependant) {
			t.Errorf("Expected ErrDuplicateDependant, got %v", err)
		}
		testutil.AssertRowCount(t, db, "legal_dependant", 1)
	})

	t.Run("rejects self-dependency without writing", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDependencyService(t, db)
		id := testutil.MakeID()

		// Execute
		_, err := svc.DeclareDependant(id, id, model.BasisSpouse, service.DependantFlags{})

		// Assert
		if !errors.Is(err, apperrors.ErrDependantIsDeceased) {
			t.Errorf("Expected ErrDependantIsDeceased, got %v", err)
		}
		testutil.AssertRowCount(t, db, "legal_dependant", 0)
	})
}

// TestDependencyService_AssessAndReload tests assessment persistence.
//
// WHY: The calculation is stored as JSON; reloading must restore it
// faithfully enough to reproduce the qualification summary.
func TestDependencyService_AssessAndReload(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDependencyService(t, db)
	dependant, err := svc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisSibling, service.DependantFlags{})
	if err != nil {
		t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
	}

	// Execute
	updated, err := svc.AssessFinancialDependency(dependant.ID, assessedCalculation(t, 50), model.DependencyPartial)

	// Assert
	if err != nil {
		t.Fatalf("AssessFinancialDependency() returned unexpected error: %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("Expected version 2 after assessment, got %d", updated.Version)
	}

	reloaded, err := svc.GetDependant(dependant.ID)
	if err != nil {
		t.Fatalf("GetDependant() returned unexpected error: %v", err)
	}
	if reloaded.Calculation == nil {
		t.Fatal("Expected the calculation to be persisted")
	}
	if reloaded.DependencyPercentage != 50 {
		t.Errorf("Expected 50%%, got %.2f", reloaded.DependencyPercentage)
	}

	summary, err := svc.SummarizeQualification(dependant.ID)
	if err != nil {
		t.Fatalf("SummarizeQualification() returned unexpected error: %v", err)
	}
	if !summary.QualifiesForS29 {
		t.Error("Expected a sibling at 50% coverage over years to qualify")
	}
	if summary.Recommendation == nil || summary.Recommendation.MonthlyProvision != 1000 {
		t.Errorf("Expected a 1000 monthly recommendation, got %+v", summary.Recommendation)
	}
}

// TestDependencyService_AddEvidence tests evidence attachment through
// the service.
//
// WHY: Idempotence must hold end to end: a duplicate attachment writes
// nothing, bumps nothing and emits no event.
func TestDependencyService_AddEvidence(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDependencyService(t, db)
	dependant, err := svc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisParent, service.DependantFlags{})
	if err != nil {
		t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
	}
	docID := testutil.MakeID()

	// Execute
	updated, added, err := svc.AddEvidence(dependant.ID, docID)

	// Assert
	if err != nil {
		t.Fatalf("AddEvidence() returned unexpected error: %v", err)
	}
	if !added {
		t.Fatal("Expected first attachment to be added")
	}
	if updated.Version != 2 {
		t.Errorf("Expected version 2, got %d", updated.Version)
	}
	testutil.AssertRowCount(t, db, "dependant_evidence", 1)

	// Execute again with the same document
	unchanged, added, err := svc.AddEvidence(dependant.ID, docID)

	// Assert
	if err != nil {
		t.Fatalf("AddEvidence() returned unexpected error: %v", err)
	}
	if added {
		t.Error("Expected duplicate attachment to be a no-op")
	}
	if unchanged.Version != 2 {
		t.Errorf("Expected version unchanged, got %d", unchanged.Version)
	}
	testutil.AssertRowCount(t, db, "dependant_evidence", 1)
	// Declaration + first attachment only
	testutil.AssertRowCount(t, db, "dependant_event", 2)
}

// TestDependencyService_AuditTrail tests the event history.
//
// WHY: The audit trail is the legal narrative of the record; every
// successful mutation must appear on it in order.
func TestDependencyService_AuditTrail(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDependencyService(t, db)
	dependant, err := svc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisSibling, service.DependantFlags{})
	if err != nil {
		t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
	}

	if _, err := svc.AssessFinancialDependency(dependant.ID, assessedCalculation(t, 40), model.DependencyPartial); err != nil {
		t.Fatalf("AssessFinancialDependency() returned unexpected error: %v", err)
	}
	if _, err := svc.FileSection26Claim(dependant.ID, 50000, "KES"); err != nil {
		t.Fatalf("FileSection26Claim() returned unexpected error: %v", err)
	}
	if _, err := svc.RecordCourtProvision(dependant.ID, "HC/SUCC/7/2022", 75000, "LUMP_SUM"); err != nil {
		t.Fatalf("RecordCourtProvision() returned unexpected error: %v", err)
	}

	// Execute
	events, err := svc.GetAuditTrail(dependant.ID)

	// Assert
	if err != nil {
		t.Fatalf("GetAuditTrail() returned unexpected error: %v", err)
	}

	expectedTypes := []string{
		model.EventDependantDeclared,
		model.EventDependencyAssessed,
		model.EventClaimFiled,
		model.EventCourtProvisionMade,
	}
	if len(events) != len(expectedTypes) {
		t.Fatalf("Expected %d events, got %d", len(expectedTypes), len(events))
	}
	for i, expected := range expectedTypes {
		if events[i].Type != expected {
			t.Errorf("Event %d: expected %s, got %s", i, expected, events[i].Type)
		}
	}
}

// TestDependencyService_NotFound tests missing-record handling.
//
// WHY: Every read and mutation on an unknown ID must fail with the
// sentinel the HTTP layer maps to 404.
func TestDependencyService_NotFound(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDependencyService(t, db)
	missingID := testutil.MakeID()

	// Execute & Assert
	if _, err := svc.GetDependant(missingID); !errors.Is(err, apperrors.ErrDependantNotFound) {
		t.Errorf("GetDependant: expected ErrDependantNotFound, got %v", err)
	}
	if _, _, err := svc.AddEvidence(missingID, testutil.MakeID()); !errors.Is(err, apperrors.ErrDependantNotFound) {
		t.Errorf("AddEvidence: expected ErrDependantNotFound, got %v", err)
	}
	if _, err := svc.GetAuditTrail(missingID); !errors.Is(err, apperrors.ErrDependantNotFound) {
		t.Errorf("GetAuditTrail: expected ErrDependantNotFound, got %v", err)
	}
}
