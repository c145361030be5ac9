package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
)

// IntestateService applies the intestacy rules of the Law of Succession
// Act to a single estate (one house). The four branches of S.35, S.36,
// S.38 and S.39 are mutually exclusive and exhaustive over any family
// structure.
type IntestateService struct{}

// NewIntestateService creates a new IntestateService.
func NewIntestateService() *IntestateService {
	return &IntestateService{}
}

// CalculateDistribution distributes the net residue of an intestate
// estate over the given family structure. The residue must already be
// net of debts and personal-effects deductions; only non-negativity is
// validated here.
//
// Branch selection, in order:
//  1. Spouse and issue survive: S.35 (life interest to the spouse)
//  2. Spouse survives without issue: S.36
//  3. Issue survive without a spouse: S.38, per stirpes under S.41
//  4. Neither: S.39 (parents, then wider kindred)
func (s *IntestateService) CalculateDistribution(netResidueValue float64, structure model.SuccessionStructure) (*model.IntestateDistributionResult, error) {
	if netResidueValue < 0 {
		return nil, fmt.Errorf("%w: %.2f", apperrors.ErrNegativeEstateValue, netResidueValue)
	}

	switch {
	case structure.HasSpouse() && structure.HasIssue():
		return s.distributeSection35(netResidueValue, structure), nil
	case structure.HasSpouse():
		return s.distributeSection36(netResidueValue, structure), nil
	case structure.HasIssue():
		return s.distributeSection38(netResidueValue, structure), nil
	default:
		return s.distributeSection39(netResidueValue, structure), nil
	}
}

// distributeSection35 handles a surviving spouse with issue: the spouse
// takes the personal effects absolutely and a life interest over the
// whole residue, held on trust with the children as remaindermen.
func (s *IntestateService) distributeSection35(netResidueValue float64, structure model.SuccessionStructure) *model.IntestateDistributionResult {
	spouseID := structure.SurvivingSpouses[0]

	share := model.BeneficiaryShare{
		BeneficiaryID:   spouseID,
		SharePercentage: 100,
		ShareValue:      floorCents(netResidueValue),
		InterestType:    model.InterestLifeInterest,
		Conditions:      "Held subject to the remainder interests of the children (S.35(1)(b))",
		IsTrust:         true,
		Description:     "Surviving spouse's life interest in the whole residue",
	}

	warnings := []string{
		"The life interest is not alienable without the consent of the court (S.35(1))",
		"The life interest terminates upon remarriage of a widow (S.35(1))",
	}
	if len(structure.SurvivingSpouses) > 1 {
		warnings = append(warnings, "Multiple surviving spouses supplied; a polygamous estate should be distributed per house under S.40")
	}

	return &model.IntestateDistributionResult{
		SectionApplied: "S.35",
		Description:    "Surviving spouse with children: life interest in the whole residue, children's rights deferred as remaindermen",
		PersonalEffects: model.PersonalEffects{
			BeneficiaryIDs: structure.SurvivingSpouses,
			Note:           "Personal and household effects pass to the surviving spouse absolutely (S.35(1)(a))",
		},
		ResidueDistribution: []model.BeneficiaryShare{share},
		Warnings:            warnings,
	}
}

// distributeSection36 handles a surviving spouse without issue. The
// mechanics match S.35 but no remaindermen exist yet, so the residue is
// not held on trust.
func (s *IntestateService) distributeSection36(netResidueValue float64, structure model.SuccessionStructure) *model.IntestateDistributionResult {
	spouseID := structure.SurvivingSpouses[0]

	share := model.BeneficiaryShare{
		BeneficiaryID:   spouseID,
		SharePercentage: 100,
		ShareValue:      floorCents(netResidueValue),
		InterestType:    model.InterestLifeInterest,
		IsTrust:         false,
		Description:     "Surviving spouse's life interest in the whole residue, no issue surviving",
	}

	warnings := []string{
		"The life interest is not alienable without the consent of the court (S.36(1))",
		"The life interest terminates upon remarriage of a widow (S.36(1))",
		"On termination of the life interest the estate devolves to the kindred listed in S.39",
	}
	if len(structure.SurvivingSpouses) > 1 {
		warnings = append(warnings, "Multiple surviving spouses supplied; a polygamous estate should be distributed per house under S.40")
	}

	return &model.IntestateDistributionResult{
		SectionApplied: "S.36",
		Description:    "Surviving spouse without issue: life interest in the whole residue",
		PersonalEffects: model.PersonalEffects{
			BeneficiaryIDs: structure.SurvivingSpouses,
			Note:           "Personal and household effects pass to the surviving spouse absolutely (S.36(1))",
		},
		ResidueDistribution: []model.BeneficiaryShare{share},
		Warnings:            warnings,
	}
}

// distributeSection38 handles issue without a surviving spouse: the
// residue divides equally per stirpes. Each living child takes one
// unit; the unit of a predeceased child subdivides equally among that
// child's own children under S.41.
func (s *IntestateService) distributeSection38(netResidueValue float64, structure model.SuccessionStructure) *model.IntestateDistributionResult {
	totalUnits := structure.TotalStirpes()

	unitFraction := 1.0 / float64(totalUnits)
	shares := make([]model.BeneficiaryShare, 0, totalUnits)
	effectsBeneficiaries := make([]string, 0, totalUnits)

	for _, childID := range structure.LivingChildren {
		shares = append(shares, model.BeneficiaryShare{
			BeneficiaryID:   childID,
			SharePercentage: roundPercentage(unitFraction * 100),
			ShareValue:      floorCents(netResidueValue * unitFraction),
			InterestType:    model.InterestAbsolute,
			Description:     "Child's equal share of the residue (S.38)",
		})
		effectsBeneficiaries = append(effectsBeneficiaries, childID)
	}

	// Map iteration order is not deterministic; sort deceased child IDs
	// so repeated runs produce identical share orderings.
	deceasedChildIDs := make([]string, 0, len(structure.DeceasedChildrenWithIssue))
	for deceasedChildID, grandchildren := range structure.DeceasedChildrenWithIssue {
		if len(grandchildren) > 0 {
			deceasedChildIDs = append(deceasedChildIDs, deceasedChildID)
		}
	}
	sort.Strings(deceasedChildIDs)

	for _, deceasedChildID := range deceasedChildIDs {
		grandchildren := structure.DeceasedChildrenWithIssue[deceasedChildID]
		grandchildFraction := unitFraction / float64(len(grandchildren))

		for _, grandchildID := range grandchildren {
			shares = append(shares, model.BeneficiaryShare{
				BeneficiaryID:   grandchildID,
				SharePercentage: roundPercentage(grandchildFraction * 100),
				ShareValue:      floorCents(netResidueValue * grandchildFraction),
				InterestType:    model.InterestAbsolute,
				Conditions:      "Per Stirpes (S.41)",
				Description:     fmt.Sprintf("Substituted share of predeceased child %s", deceasedChildID),
			})
			effectsBeneficiaries = append(effectsBeneficiaries, grandchildID)
		}
	}

	result := &model.IntestateDistributionResult{
		SectionApplied: "S.38",
		Description:    "No surviving spouse: residue divides equally among the issue per stirpes",
		PersonalEffects: model.PersonalEffects{
			BeneficiaryIDs: effectsBeneficiaries,
			Note:           "Personal and household effects follow the residue takers",
		},
		ResidueDistribution: shares,
		Warnings:            []string{},
	}

	appendRoundingWarning(result, netResidueValue)
	return result
}

// distributeSection39 handles no spouse and no issue: the residue
// passes to the living parents in equal absolute shares. With no
// parents either, this engine stops and directs the caller to the
// wider S.39 kindred order.
func (s *IntestateService) distributeSection39(netResidueValue float64, structure model.SuccessionStructure) *model.IntestateDistributionResult {
	if len(structure.LivingParents) == 0 {
		return &model.IntestateDistributionResult{
			SectionApplied:      "S.39",
			Description:         "No spouse, issue or parents surviving",
			PersonalEffects:     model.PersonalEffects{Note: "No beneficiaries identified within this engine's scope"},
			ResidueDistribution: []model.BeneficiaryShare{},
			Warnings: []string{
				"No heirs found in the immediate family: escalate along the S.39 kindred order (siblings, half-siblings) or to the state under S.46",
			},
		}
	}

	parentFraction := 1.0 / float64(len(structure.LivingParents))
	shares := make([]model.BeneficiaryShare, 0, len(structure.LivingParents))
	for _, parentID := range structure.LivingParents {
		shares = append(shares, model.BeneficiaryShare{
			BeneficiaryID:   parentID,
			SharePercentage: roundPercentage(parentFraction * 100),
			ShareValue:      floorCents(netResidueValue * parentFraction),
			InterestType:    model.InterestAbsolute,
			Description:     "Parent's equal share of the residue (S.39)",
		})
	}

	result := &model.IntestateDistributionResult{
		SectionApplied: "S.39",
		Description:    "No spouse or issue surviving: residue passes to the living parents equally",
		PersonalEffects: model.PersonalEffects{
			BeneficiaryIDs: structure.LivingParents,
			Note:           "Personal and household effects follow the residue takers",
		},
		ResidueDistribution: shares,
		Warnings:            []string{},
	}

	appendRoundingWarning(result, netResidueValue)
	return result
}

// appendRoundingWarning surfaces any floor-rounding remainder. The
// remainder stays in the estate rather than being reallocated to an
// heir; it is reported, never silently dropped.
func appendRoundingWarning(result *model.IntestateDistributionResult, netResidueValue float64) {
	remainder := netResidueValue - result.TotalValue()
	if remainder > 0.005 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Floor rounding retains %.2f in the estate; the remainder is not reallocated to any beneficiary", remainder,
		))
	}
}

// roundPercentage rounds a percentage to four decimal places.
func roundPercentage(pct float64) float64 {
	return math.Round(pct*10000) / 10000
}

// floorCents floors a monetary value to whole cents so allocated values
// never exceed the amount being divided.
func floorCents(value float64) float64 {
	return math.Floor(value*100) / 100
}
