package service

import (
	"fmt"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
)

// PolygamousService partitions a polygamous estate across its houses
// under S.40 and delegates each house to the single-house intestacy
// rules.
type PolygamousService struct {
	intestateService *IntestateService
}

// NewPolygamousService creates a new PolygamousService with the provided intestate policy.
func NewPolygamousService(intestateService *IntestateService) *PolygamousService {
	return &PolygamousService{
		intestateService: intestateService,
	}
}

// CalculateDistribution allocates the total estate value across houses
// in proportion to their S.40(1) units (the children of each house plus
// the widow), then runs the single-house distribution per house over a
// house-scoped family structure. The last house with units absorbs the
// floor-rounding remainder so the allocations reconcile exactly to the
// total.
func (s *PolygamousService) CalculateDistribution(totalEstateValue float64, houses []model.PolygamousHouse) (*model.PolygamousDistributionPlan, error) {
	if totalEstateValue < 0 {
		return nil, fmt.Errorf("%w: %.2f", apperrors.ErrNegativeEstateValue, totalEstateValue)
	}
	if len(houses) == 0 {
		return nil, apperrors.ErrNoHouses
	}

	totalUnits := 0
	lastHouseWithUnits := -1
	for i, house := range houses {
		totalUnits += house.Units()
		if house.Units() > 0 {
			lastHouseWithUnits = i
		}
	}
	if totalUnits == 0 {
		return nil, fmt.Errorf("%w: no house has a widow or children", apperrors.ErrNoHouses)
	}

	plan := &model.PolygamousDistributionPlan{
		SectionApplied:   "S.40",
		Description:      "Polygamous estate divided among the houses according to the number of children in each house, the widow counting as an additional unit",
		TotalEstateValue: totalEstateValue,
		Houses:           make([]model.HouseDistribution, 0, len(houses)),
		Warnings:         []string{},
	}

	allocated := 0.0
	for i, house := range houses {
		units := house.Units()

		var houseValue float64
		switch {
		case units == 0:
			plan.Warnings = append(plan.Warnings, fmt.Sprintf(
				"House %s has neither widow nor children and receives no allocation", house.HouseID,
			))
		case i == lastHouseWithUnits:
			// Remainder absorption keeps the plan total exact.
			houseValue = totalEstateValue - allocated
		default:
			houseValue = floorCents(totalEstateValue * float64(units) / float64(totalUnits))
		}
		allocated += houseValue

		houseStructure := model.SuccessionStructure{
			LivingChildren: house.ChildrenIDs,
		}
		if house.SpouseID != "" {
			houseStructure.SurvivingSpouses = []string{house.SpouseID}
		}

		result, err := s.intestateService.CalculateDistribution(houseValue, houseStructure)
		if err != nil {
			return nil, fmt.Errorf("failed to distribute house %s: %w", house.HouseID, err)
		}

		plan.Houses = append(plan.Houses, model.HouseDistribution{
			HouseID:         house.HouseID,
			SpouseID:        house.SpouseID,
			AllocationUnits: units,
			AllocatedValue:  houseValue,
			Result:          *result,
		})
	}

	return plan, nil
}
