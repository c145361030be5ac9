package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ndewijer/Succession-Service-Backend/internal/repository"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
)

func NewTestDependencyService(t *testing.T, db *sql.DB) *service.DependencyService {
	t.Helper()

	dependantRepo := repository.NewDependantRepository(db)

	return service.NewDependencyService(dependantRepo)
}

func NewTestSuccessionService(t *testing.T, db *sql.DB) *service.SuccessionService {
	t.Helper()

	intestateService := service.NewIntestateService()
	polygamousService := service.NewPolygamousService(intestateService)
	distributionRepo := repository.NewDistributionRepository(db)

	return service.NewSuccessionService(
		intestateService,
		polygamousService,
		distributionRepo,
	)
}

func NewTestGuardianshipService(t *testing.T, db *sql.DB) *service.GuardianshipService {
	t.Helper()

	guardianshipRepo := repository.NewGuardianshipRepository(db)

	return service.NewGuardianshipService(guardianshipRepo)
}

func NewTestComplianceService(t *testing.T, db *sql.DB) *service.ComplianceService {
	t.Helper()

	dependantRepo := repository.NewDependantRepository(db)
	caseStatusRepo := repository.NewCaseStatusRepository(db)

	return service.NewComplianceService(dependantRepo, caseStatusRepo)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestEvidenceTokenService creates an EvidenceTokenService with an
// ephemeral key and a short TTL suitable for tests.
func NewTestEvidenceTokenService(t *testing.T) *service.EvidenceTokenService {
	t.Helper()

	tokenService, err := service.NewEvidenceTokenService("", time.Minute)
	if err != nil {
		t.Fatalf("Failed to create evidence token service: %v", err)
	}
	return tokenService
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// DateAt returns a UTC date for use as a support start or end date.
//
// Example usage:
//
//	start := testutil.DateAt(2020, 1, 15)
func DateAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
