package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/repository"
)

// Non-priority dependants must show at least this dependency percentage
// to be compliant without a court order.
const minimumNonPriorityPercentage = 25.0

// sweepConcurrency bounds the number of cases evaluated in parallel
// during a sweep.
const sweepConcurrency = 8

// ComplianceService aggregates per-dependant state into statutory
// compliance findings and an overall case status. Findings are
// informational results, collected and returned rather than raised as
// errors.
type ComplianceService struct {
	dependantRepo  *repository.DependantRepository
	caseStatusRepo *repository.CaseStatusRepository
}

// NewComplianceService creates a new ComplianceService with the provided repository dependencies.
func NewComplianceService(
	dependantRepo *repository.DependantRepository,
	caseStatusRepo *repository.CaseStatusRepository,
) *ComplianceService {
	return &ComplianceService{
		dependantRepo:  dependantRepo,
		caseStatusRepo: caseStatusRepo,
	}
}

// EvaluateDependant inspects one dependant for statutory compliance
// concerns.
func (s *ComplianceService) EvaluateDependant(d model.LegalDependant) []model.ComplianceFinding {
	var findings []model.ComplianceFinding

	if model.IsPriorityBasis(d.DependencyBasis) {
		if d.DependencyPercentage < 100 {
			findings = append(findings, model.ComplianceFinding{
				DependantID: d.ID,
				Code:        model.FindingPriorityPartialDependency,
				Severity:    model.SeverityNonCompliant,
				Message: fmt.Sprintf("Priority dependant (%s) assessed at %.2f%% rather than full dependency",
					d.DependencyBasis, d.DependencyPercentage),
			})
		}
	} else {
		if len(d.EvidenceDocuments) == 0 {
			findings = append(findings, model.ComplianceFinding{
				DependantID: d.ID,
				Code:        model.FindingMissingEvidence,
				Severity:    model.SeverityNonCompliant,
				Message:     fmt.Sprintf("Non-priority dependant (%s) has no evidence documents on record", d.DependencyBasis),
			})
		}
		if d.DependencyPercentage < minimumNonPriorityPercentage {
			findings = append(findings, model.ComplianceFinding{
				DependantID: d.ID,
				Code:        model.FindingBelowThreshold,
				Severity:    model.SeverityNonCompliant,
				Message: fmt.Sprintf("Non-priority dependant at %.2f%%, below the %.0f%% threshold",
					d.DependencyPercentage, minimumNonPriorityPercentage),
			})
		}
	}

	if d.Calculation != nil && !d.Calculation.IsVerified {
		findings = append(findings, model.ComplianceFinding{
			DependantID: d.ID,
			Code:        model.FindingUnverifiedCalculation,
			Severity:    model.SeverityAdvisory,
			Message:     "Dependency calculation has not been verified",
		})
	}

	return findings
}

// EvaluateCase evaluates every dependant of the deceased and aggregates
// the findings into an overall status.
func (s *ComplianceService) EvaluateCase(deceasedID string) (*model.CaseStatus, error) {
	dependants, err := s.dependantRepo.ListByDeceased(deceasedID)
	if err != nil {
		return nil, err
	}

	status := &model.CaseStatus{
		DeceasedID:    deceasedID,
		OverallStatus: model.CaseCompliant,
		Findings:      []model.ComplianceFinding{},
		CheckedAt:     time.Now().UTC(),
	}

	for _, dependant := range dependants {
		status.Findings = append(status.Findings, s.EvaluateDependant(dependant)...)
	}

	for _, finding := range status.Findings {
		if finding.Severity == model.SeverityNonCompliant {
			status.OverallStatus = model.CaseNonCompliant
			break
		}
		status.OverallStatus = model.CaseFindings
	}

	return status, nil
}

// GetCaseStatus returns the stored status from the last sweep.
func (s *ComplianceService) GetCaseStatus(deceasedID string) (*model.CaseStatus, error) {
	return s.caseStatusRepo.Get(deceasedID)
}

// RunSweep re-evaluates compliance for every case with declared
// dependants and persists the results. Cases are independent, so they
// are evaluated in parallel with bounded concurrency.
func (s *ComplianceService) RunSweep(ctx context.Context) (int, error) {
	deceasedIDs, err := s.dependantRepo.ListDeceasedIDs()
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for _, deceasedID := range deceasedIDs {
		deceasedID := deceasedID
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			status, err := s.EvaluateCase(deceasedID)
			if err != nil {
				return fmt.Errorf("%w: case %s: %v", apperrors.ErrFailedToEvaluateCase, deceasedID, err)
			}
			if err := s.caseStatusRepo.Save(*status); err != nil {
				return fmt.Errorf("%w: case %s: %v", apperrors.ErrFailedToEvaluateCase, deceasedID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	log.Printf("Compliance sweep evaluated %d cases", len(deceasedIDs))
	return len(deceasedIDs), nil
}
