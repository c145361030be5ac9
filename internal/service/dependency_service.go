package service

import (
	"fmt"
	"time"

	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/repository"
)

// DependencyService manages the lifecycle of legal dependants: the
// assessment, evidence, claim and court-order operations that feed the
// succession computation. Every write goes through the repository's
// optimistic-concurrency guard; a version conflict surfaces to the
// caller as retryable.
type DependencyService struct {
	dependantRepo *repository.DependantRepository
}

// NewDependencyService creates a new DependencyService with the provided repository dependencies.
func NewDependencyService(dependantRepo *repository.DependantRepository) *DependencyService {
	return &DependencyService{
		dependantRepo: dependantRepo,
	}
}

// DependantFlags carries the status flags supplied on declaration.
type DependantFlags struct {
	IsMinor       bool
	IsStudent     bool
	HasDisability bool
}

// DeclareDependant registers a new dependant of the deceased.
func (s *DependencyService) DeclareDependant(deceasedID, dependantID, basis string, flags DependantFlags) (*model.LegalDependant, error) {
	dependant, event, err := model.NewLegalDependant(deceasedID, dependantID, basis)
	if err != nil {
		return nil, err
	}

	dependant.IsMinor = flags.IsMinor
	dependant.IsStudent = flags.IsStudent
	dependant.HasDisability = flags.HasDisability

	if err := s.dependantRepo.Create(dependant, event); err != nil {
		return nil, err
	}

	return dependant, nil
}

// AssessFinancialDependency records an assessment outcome on the
// dependant. The calculation must already have passed value-object
// construction.
func (s *DependencyService) AssessFinancialDependency(dependantID string, calc model.DependencyCalculation, level string) (*model.LegalDependant, error) {
	dependant, err := s.dependantRepo.GetByID(dependantID)
	if err != nil {
		return nil, err
	}
	expectedVersion := dependant.Version

	event, err := dependant.AssessFinancialDependency(calc, level)
	if err != nil {
		return nil, err
	}

	if err := s.dependantRepo.Update(dependant, expectedVersion, []model.DependantEvent{event}); err != nil {
		return nil, err
	}
	return dependant, nil
}

// AddEvidence attaches an evidence document reference to the dependant.
// The operation is idempotent: re-attaching a known document changes
// nothing and writes nothing.
func (s *DependencyService) AddEvidence(dependantID, documentID string) (*model.LegalDependant, bool, error) {
	dependant, err := s.dependantRepo.GetByID(dependantID)
	if err != nil {
		return nil, false, err
	}
	expectedVersion := dependant.Version

	event, added := dependant.AddEvidence(documentID)
	if !added {
		return dependant, false, nil
	}

	if err := s.dependantRepo.Update(dependant, expectedVersion, []model.DependantEvent{event}); err != nil {
		return nil, false, err
	}
	return dependant, true, nil
}

// FileSection26Claim files a reasonable-provision claim under S.26.
func (s *DependencyService) FileSection26Claim(dependantID string, amount float64, currency string) (*model.LegalDependant, error) {
	dependant, err := s.dependantRepo.GetByID(dependantID)
	if err != nil {
		return nil, err
	}
	expectedVersion := dependant.Version

	event, err := dependant.FileSection26Claim(amount, currency)
	if err != nil {
		return nil, err
	}

	if err := s.dependantRepo.Update(dependant, expectedVersion, []model.DependantEvent{event}); err != nil {
		return nil, err
	}
	return dependant, nil
}

// RecordCourtProvision records the court's provision order. The court
// outcome overrides any earlier calculated level.
func (s *DependencyService) RecordCourtProvision(dependantID, orderNumber string, approvedAmount float64, orderType string) (*model.LegalDependant, error) {
	dependant, err := s.dependantRepo.GetByID(dependantID)
	if err != nil {
		return nil, err
	}
	expectedVersion := dependant.Version

	event, err := dependant.RecordCourtProvision(orderNumber, approvedAmount, orderType)
	if err != nil {
		return nil, err
	}

	if err := s.dependantRepo.Update(dependant, expectedVersion, []model.DependantEvent{event}); err != nil {
		return nil, err
	}
	return dependant, nil
}

// GetDependant loads one dependant by ID.
func (s *DependencyService) GetDependant(dependantID string) (*model.LegalDependant, error) {
	return s.dependantRepo.GetByID(dependantID)
}

// ListDependantsOfDeceased returns every dependant declared against one
// deceased person.
func (s *DependencyService) ListDependantsOfDeceased(deceasedID string) ([]model.LegalDependant, error) {
	return s.dependantRepo.ListByDeceased(deceasedID)
}

// GetAuditTrail returns the dependant's event history.
func (s *DependencyService) GetAuditTrail(dependantID string) ([]model.DependantEvent, error) {
	if _, err := s.dependantRepo.GetByID(dependantID); err != nil {
		return nil, err
	}
	return s.dependantRepo.ListEvents(dependantID)
}

// QualificationSummary reports the dependant's S.29 standing and the
// advisory provision derived from its calculation. Dependants without
// an assessed calculation do not qualify.
type QualificationSummary struct {
	QualifiesForS29       bool                           `json:"qualifiesForS29"`
	EnhancedProvision     bool                           `json:"enhancedProvision"`
	SupportCoverage       float64                        `json:"supportCoverage"`
	SupportDurationMonths int                            `json:"supportDurationMonths"`
	Recommendation        *model.ProvisionRecommendation `json:"recommendation,omitempty"`
}

// SummarizeQualification evaluates a dependant's statutory standing as
// of now. The recommendation is advisory output only; it never touches
// court-order fields.
func (s *DependencyService) SummarizeQualification(dependantID string) (*QualificationSummary, error) {
	dependant, err := s.dependantRepo.GetByID(dependantID)
	if err != nil {
		return nil, err
	}

	if dependant.Calculation == nil {
		return nil, fmt.Errorf("dependant %s has no assessed dependency calculation", dependantID)
	}

	now := time.Now().UTC()
	calc := *dependant.Calculation
	recommendation := calc.RecommendedProvision()

	return &QualificationSummary{
		QualifiesForS29:       calc.QualifiesForS29(dependant.DependencyBasis, now),
		EnhancedProvision:     calc.QualifiesForEnhancedProvision(dependant.DependencyBasis, now),
		SupportCoverage:       calc.SupportCoverage(),
		SupportDurationMonths: calc.SupportDurationMonths(now),
		Recommendation:        &recommendation,
	}, nil
}
