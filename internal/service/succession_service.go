package service

import (
	"log"

	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/repository"
)

// SuccessionService runs distribution calculations and records the
// outcomes. The policy engines themselves are pure; this service adds
// the persistence of calculation runs for the case record.
type SuccessionService struct {
	intestateService  *IntestateService
	polygamousService *PolygamousService
	distributionRepo  *repository.DistributionRepository
}

// NewSuccessionService creates a new SuccessionService with the provided dependencies.
func NewSuccessionService(
	intestateService *IntestateService,
	polygamousService *PolygamousService,
	distributionRepo *repository.DistributionRepository,
) *SuccessionService {
	return &SuccessionService{
		intestateService:  intestateService,
		polygamousService: polygamousService,
		distributionRepo:  distributionRepo,
	}
}

// CalculateIntestate distributes a single-house estate and stores the
// result. Returns the result together with the stored record's ID.
func (s *SuccessionService) CalculateIntestate(deceasedID string, netResidueValue float64, structure model.SuccessionStructure) (*model.IntestateDistributionResult, string, error) {
	result, err := s.intestateService.CalculateDistribution(netResidueValue, structure)
	if err != nil {
		return nil, "", err
	}

	resultID, err := s.distributionRepo.SaveResult(deceasedID, netResidueValue, result)
	if err != nil {
		return nil, "", err
	}

	log.Printf("Distribution %s for deceased %s: %s with %d shares",
		resultID, deceasedID, result.SectionApplied, len(result.ResidueDistribution))
	return result, resultID, nil
}

// CalculatePolygamous partitions a polygamous estate per S.40 and
// stores each house's distribution run.
func (s *SuccessionService) CalculatePolygamous(deceasedID string, totalEstateValue float64, houses []model.PolygamousHouse) (*model.PolygamousDistributionPlan, error) {
	plan, err := s.polygamousService.CalculateDistribution(totalEstateValue, houses)
	if err != nil {
		return nil, err
	}

	for _, house := range plan.Houses {
		if _, err := s.distributionRepo.SaveResult(deceasedID, house.AllocatedValue, &house.Result); err != nil {
			return nil, err
		}
	}

	log.Printf("Polygamous distribution for deceased %s: %d houses over %.2f",
		deceasedID, len(plan.Houses), totalEstateValue)
	return plan, nil
}

// GetDistribution loads a stored distribution run.
func (s *SuccessionService) GetDistribution(resultID string) (*model.IntestateDistributionResult, error) {
	return s.distributionRepo.GetResult(resultID)
}
