package service_test

import (
	"testing"

	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/testutil"
)

// TestGuardianshipService_Disqualifications tests the terminal
// rejection rules.
//
// WHY: An ineligible guardian must be rejected outright, with the
// reason on record, before classification or bond rules ever apply.
func TestGuardianshipService_Disqualifications(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGuardianshipService(t, db)
	ward := model.Ward{ID: testutil.MakeID(), IsMinor: true}

	tests := []struct {
		name      string
		candidate model.GuardianCandidate
	}{
		{
			name:      "deceased candidate",
			candidate: model.GuardianCandidate{ID: testutil.MakeID(), IsDeceased: true},
		},
		{
			name:      "minor candidate",
			candidate: model.GuardianCandidate{ID: testutil.MakeID(), IsMinor: true},
		},
		{
			name:      "candidate lacking capacity",
			candidate: model.GuardianCandidate{ID: testutil.MakeID(), RequiresSupportedDecisionMaking: true},
		},
		{
			name:      "candidate is the ward",
			candidate: model.GuardianCandidate{ID: ward.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Execute
			result := svc.CheckEligibility(tt.candidate, ward, model.GuardianshipContext{AppointmentSource: model.SourceWill})

			// Assert
			if result.IsEligible {
				t.Error("Expected candidate to be ineligible")
			}
			if result.RejectionReason == "" {
				t.Error("Expected a rejection reason on record")
			}
		})
	}
}

// TestGuardianshipService_AppointmentClassification tests source
// mapping and the bond rules per appointment type.
//
// WHY: The appointment type determines the security requirement:
// court-appointed and de facto guardians always post a bond, while
// testamentary guardians and natural parents only do when bankrupt.
func TestGuardianshipService_AppointmentClassification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGuardianshipService(t, db)
	ward := model.Ward{ID: testutil.MakeID(), IsMinor: true}

	tests := []struct {
		name         string
		source       string
		bankrupt     bool
		expectedType string
		expectedBond bool
	}{
		{"will maps to testamentary without bond", model.SourceWill, false, model.AppointmentTestamentary, false},
		{"bankrupt testamentary guardian posts bond", model.SourceWill, true, model.AppointmentTestamentary, true},
		{"court appointment always posts bond", model.SourceCourt, false, model.AppointmentCourt, true},
		{"natural parent without bond", model.SourceNatural, false, model.AppointmentNaturalParent, false},
		{"bankrupt natural parent posts bond", model.SourceNatural, true, model.AppointmentNaturalParent, true},
		{"unknown source classifies de facto with bond", "", false, model.AppointmentDeFacto, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			candidate := model.GuardianCandidate{ID: testutil.MakeID(), IsBankrupt: tt.bankrupt}

			// Execute
			result := svc.CheckEligibility(candidate, ward, model.GuardianshipContext{AppointmentSource: tt.source})

			// Assert
			if !result.IsEligible {
				t.Fatalf("Expected candidate to be eligible, rejected: %s", result.RejectionReason)
			}
			if result.AppointmentType != tt.expectedType {
				t.Errorf("Expected appointment type %s, got %s", tt.expectedType, result.AppointmentType)
			}
			if result.RequiresBond != tt.expectedBond {
				t.Errorf("Expected requiresBond=%v, got %v", tt.expectedBond, result.RequiresBond)
			}
			if result.RequiresBond && result.BondReason == "" {
				t.Error("Expected a bond reason when a bond is required")
			}
		})
	}
}

// TestGuardianshipService_JointGuardianshipWarning tests the S.70(2)
// warning.
//
// WHY: A testamentary guardian does not displace a surviving natural
// parent; the result must carry the joint-guardianship warning without
// blocking eligibility.
func TestGuardianshipService_JointGuardianshipWarning(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGuardianshipService(t, db)
	candidate := model.GuardianCandidate{ID: testutil.MakeID()}
	ward := model.Ward{ID: testutil.MakeID(), IsMinor: true, HasSurvivingNaturalParent: true}

	// Execute
	result := svc.CheckEligibility(candidate, ward, model.GuardianshipContext{AppointmentSource: model.SourceWill})

	// Assert
	if !result.IsEligible {
		t.Fatalf("Expected candidate to be eligible, rejected: %s", result.RejectionReason)
	}
	if !hasWarningContaining(result.Warnings, "S.70(2)") {
		t.Errorf("Expected a S.70(2) joint-guardianship warning, got %v", result.Warnings)
	}

	// A court appointment does not carry the warning
	courtResult := svc.CheckEligibility(candidate, ward, model.GuardianshipContext{AppointmentSource: model.SourceCourt})
	if hasWarningContaining(courtResult.Warnings, "S.70(2)") {
		t.Errorf("Expected no joint-guardianship warning for a court appointment, got %v", courtResult.Warnings)
	}
}

// TestGuardianshipService_NeedsGuardian tests the ward-side gate.
func TestGuardianshipService_NeedsGuardian(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGuardianshipService(t, db)

	tests := []struct {
		name     string
		ward     model.Ward
		expected bool
	}{
		{"minor needs a guardian", model.Ward{ID: testutil.MakeID(), IsMinor: true}, true},
		{"supported decision making needs a guardian", model.Ward{ID: testutil.MakeID(), RequiresSupportedDecisionMaking: true}, true},
		{"capable adult does not", model.Ward{ID: testutil.MakeID()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.NeedsGuardian(tt.ward); got != tt.expected {
				t.Errorf("NeedsGuardian() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// TestGuardianshipService_RecordAssessment tests assessment
// persistence.
//
// WHY: Recorded assessments become part of the case record; the stored
// row must reproduce the eligibility outcome.
func TestGuardianshipService_RecordAssessment(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGuardianshipService(t, db)
	candidate := model.GuardianCandidate{ID: testutil.MakeID()}
	ward := model.Ward{ID: testutil.MakeID(), IsMinor: true, HasSurvivingNaturalParent: true}

	result := svc.CheckEligibility(candidate, ward, model.GuardianshipContext{AppointmentSource: model.SourceWill})

	// Execute
	assessmentID, err := svc.RecordAssessment(candidate.ID, ward.ID, result)

	// Assert
	if err != nil {
		t.Fatalf("RecordAssessment() returned unexpected error: %v", err)
	}
	if assessmentID == "" {
		t.Fatal("Expected a stored assessment ID")
	}
	testutil.AssertRowCount(t, db, "guardianship_assessment", 1)
}
