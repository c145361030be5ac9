package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
	"github.com/ndewijer/Succession-Service-Backend/internal/testutil"
)

func findingCodes(findings []model.ComplianceFinding) map[string]string {
	codes := make(map[string]string, len(findings))
	for _, f := range findings {
		codes[f.Code] = f.Severity
	}
	return codes
}

// TestComplianceService_EvaluateDependant tests the per-dependant
// finding rules.
//
// WHY: Findings drive what a probate registrar reviews. A priority
// dependant below full dependency and a non-priority dependant without
// evidence are the two statutory red flags; an unverified calculation
// is advisory only.
func TestComplianceService_EvaluateDependant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestComplianceService(t, db)

	t.Run("priority dependant below full dependency is non-compliant", func(t *testing.T) {
		// Setup
		dependant := model.LegalDependant{
			ID:                   testutil.MakeID(),
			DependencyBasis:      model.BasisChild,
			DependencyPercentage: 60,
		}

		// Execute
		findings := svc.EvaluateDependant(dependant)

		// Assert
		codes := findingCodes(findings)
		if codes[model.FindingPriorityPartialDependency] != model.SeverityNonCompliant {
			t.Errorf("Expected a NON_COMPLIANT priority finding, got %v", findings)
		}
	})

	t.Run("priority dependant at full dependency is clean", func(t *testing.T) {
		// Setup
		dependant := model.LegalDependant{
			ID:                   testutil.MakeID(),
			DependencyBasis:      model.BasisSpouse,
			DependencyPercentage: 100,
		}

		// Execute
		findings := svc.EvaluateDependant(dependant)

		// Assert
		if len(findings) != 0 {
			t.Errorf("Expected no findings, got %v", findings)
		}
	})

	t.Run("non-priority dependant without evidence is non-compliant", func(t *testing.T) {
		// Setup: 40% dependency clears the threshold but has no evidence
		dependant := model.LegalDependant{
			ID:                   testutil.MakeID(),
			DependencyBasis:      model.BasisSibling,
			DependencyPercentage: 40,
		}

		// Execute
		findings := svc.EvaluateDependant(dependant)

		// Assert
		codes := findingCodes(findings)
		if codes[model.FindingMissingEvidence] != model.SeverityNonCompliant {
			t.Errorf("Expected a MISSING_EVIDENCE finding, got %v", findings)
		}
		if _, flagged := codes[model.FindingBelowThreshold]; flagged {
			t.Errorf("Expected no threshold finding at 40%%, got %v", findings)
		}
	})

	t.Run("non-priority dependant below 25% is flagged", func(t *testing.T) {
		// Setup
		dependant := model.LegalDependant{
			ID:                   testutil.MakeID(),
			DependencyBasis:      model.BasisParent,
			DependencyPercentage: 10,
			EvidenceDocuments:    []string{testutil.MakeID()},
		}

		// Execute
		findings := svc.EvaluateDependant(dependant)

		// Assert
		codes := findingCodes(findings)
		if codes[model.FindingBelowThreshold] != model.SeverityNonCompliant {
			t.Errorf("Expected a BELOW_THRESHOLD finding, got %v", findings)
		}
	})

	t.Run("unverified calculation is advisory", func(t *testing.T) {
		// Setup
		dependant := model.LegalDependant{
			ID:                   testutil.MakeID(),
			DependencyBasis:      model.BasisSpouse,
			DependencyPercentage: 100,
			Calculation:          &model.DependencyCalculation{},
		}

		// Execute
		findings := svc.EvaluateDependant(dependant)

		// Assert
		codes := findingCodes(findings)
		if codes[model.FindingUnverifiedCalculation] != model.SeverityAdvisory {
			t.Errorf("Expected an ADVISORY unverified-calculation finding, got %v", findings)
		}
	})
}

// TestComplianceService_EvaluateCase tests the aggregation into an
// overall status.
//
// WHY: One NON_COMPLIANT finding must dominate the case status; a case
// with only advisory findings reports FINDINGS, and no findings at all
// reports COMPLIANT.
func TestComplianceService_EvaluateCase(t *testing.T) {
	t.Run("empty case is compliant", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestComplianceService(t, db)

		// Execute
		status, err := svc.EvaluateCase(testutil.MakeID())

		// Assert
		if err != nil {
			t.Fatalf("EvaluateCase() returned unexpected error: %v", err)
		}
		if status.OverallStatus != model.CaseCompliant {
			t.Errorf("Expected COMPLIANT, got %s", status.OverallStatus)
		}
	})

	t.Run("one non-compliant dependant dominates", func(t *testing.T) {
		// Setup: a compliant spouse (court order forces full dependency)
		// and a sibling with no assessment or evidence
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestComplianceService(t, db)
		dependencySvc := testutil.NewTestDependencyService(t, db)
		deceasedID := testutil.MakeID()

		spouse, err := dependencySvc.DeclareDependant(deceasedID, testutil.MakeID(), model.BasisSpouse, service.DependantFlags{})
		if err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}
		if _, err := dependencySvc.RecordCourtProvision(spouse.ID, "HC/SUCC/9/2022", 100000, "LUMP_SUM"); err != nil {
			t.Fatalf("RecordCourtProvision() returned unexpected error: %v", err)
		}
		if _, err := dependencySvc.DeclareDependant(deceasedID, testutil.MakeID(), model.BasisSibling, service.DependantFlags{}); err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}

		// Execute
		status, err := svc.EvaluateCase(deceasedID)

		// Assert
		if err != nil {
			t.Fatalf("EvaluateCase() returned unexpected error: %v", err)
		}
		if status.OverallStatus != model.CaseNonCompliant {
			t.Errorf("Expected NON_COMPLIANT, got %s", status.OverallStatus)
		}
		if len(status.Findings) == 0 {
			t.Error("Expected findings on the unevidenced sibling")
		}
	})
}

// TestComplianceService_RunSweep tests the persisted sweep.
//
// WHY: The nightly sweep is how stored statuses come to exist; it must
// cover every case with dependants and the stored status must be
// retrievable afterwards.
func TestComplianceService_RunSweep(t *testing.T) {
	// Setup: two cases
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestComplianceService(t, db)
	dependencySvc := testutil.NewTestDependencyService(t, db)

	caseA := testutil.MakeID()
	caseB := testutil.MakeID()
	if _, err := dependencySvc.DeclareDependant(caseA, testutil.MakeID(), model.BasisSibling, service.DependantFlags{}); err != nil {
		t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
	}
	if _, err := dependencySvc.DeclareDependant(caseB, testutil.MakeID(), model.BasisSibling, service.DependantFlags{}); err != nil {
		t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
	}

	// Execute
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	evaluated, err := svc.RunSweep(ctx)

	// Assert
	if err != nil {
		t.Fatalf("RunSweep() returned unexpected error: %v", err)
	}
	if evaluated != 2 {
		t.Errorf("Expected 2 cases evaluated, got %d", evaluated)
	}
	testutil.AssertRowCount(t, db, "case_status", 2)

	stored, err := svc.GetCaseStatus(caseA)
	if err != nil {
		t.Fatalf("GetCaseStatus() returned unexpected error: %v", err)
	}
	if stored.OverallStatus != model.CaseNonCompliant {
		t.Errorf("Expected the stored status NON_COMPLIANT, got %s", stored.OverallStatus)
	}

	// Re-running overwrites rather than duplicates
	if _, err := svc.RunSweep(ctx); err != nil {
		t.Fatalf("RunSweep() returned unexpected error: %v", err)
	}
	testutil.AssertRowCount(t, db, "case_status", 2)
}

// TestComplianceService_GetCaseStatus_NotFound tests the missing-status
// path.
func TestComplianceService_GetCaseStatus_NotFound(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestComplianceService(t, db)

	// Execute
	_, err := svc.GetCaseStatus(testutil.MakeID())

	// Assert
	if !errors.Is(err, apperrors.ErrCaseStatusNotFound) {
		t.Errorf("Expected ErrCaseStatusNotFound, got %v", err)
	}
}
