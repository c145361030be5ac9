package model

// Interest types a beneficiary can hold over estate residue.
const (
	InterestAbsolute     = "ABSOLUTE"
	InterestLifeInterest = "LIFE_INTEREST"
	InterestTrustMinor   = "TRUST_FOR_MINOR"
)

// SuccessionStructure is the reconstructed family composition for one
// calculation run. It is produced by the family-tree service with IDs
// already resolved and deduplicated, and is treated as an immutable
// snapshot here.
type SuccessionStructure struct {
	SurvivingSpouses          []string            `json:"survivingSpouses"`
	LivingChildren            []string            `json:"livingChildren"`
	DeceasedChildrenWithIssue map[string][]string `json:"deceasedChildrenWithIssue"`
	LivingParents             []string            `json:"livingParents"`
}

// HasSpouse reports whether at least one spouse survived the deceased.
func (s SuccessionStructure) HasSpouse() bool {
	return len(s.SurvivingSpouses) > 0
}

// HasIssue reports whether the deceased left issue: living children, or
// predeceased children with surviving grandchildren.
func (s SuccessionStructure) HasIssue() bool {
	if len(s.LivingChildren) > 0 {
		return true
	}
	for _, grandchildren := range s.DeceasedChildrenWithIssue {
		if len(grandchildren) > 0 {
			return true
		}
	}
	return false
}

// TotalStirpes returns the number of equal division units under S.38:
// one per living child plus one per predeceased child with issue.
func (s SuccessionStructure) TotalStirpes() int {
	stirpes := len(s.LivingChildren)
	for _, grandchildren := range s.DeceasedChildrenWithIssue {
		if len(grandchildren) > 0 {
			stirpes++
		}
	}
	return stirpes
}

// BeneficiaryShare is one beneficiary's entitlement within a
// distribution result. SharePercentage is expressed to four decimal
// places; ShareValue is floor-rounded to whole cents so the sum of all
// share values never exceeds the input residue.
type BeneficiaryShare struct {
	BeneficiaryID   string  `json:"beneficiaryId"`
	SharePercentage float64 `json:"sharePercentage"`
	ShareValue      float64 `json:"shareValue"`
	InterestType    string  `json:"interestType"`
	Conditions      string  `json:"conditions,omitempty"`
	IsTrust         bool    `json:"isTrust"`
	Description     string  `json:"description"`
}

// PersonalEffects records who takes the deceased's personal and
// household effects, allocated separately from residue.
type PersonalEffects struct {
	BeneficiaryIDs []string `json:"beneficiaryIds"`
	Note           string   `json:"note"`
}

// IntestateDistributionResult is the outcome of one intestate
// distribution run. Warnings carry non-fatal advisories (rounding
// remainders, unresolved-heir escalations) and are always returned
// alongside the computed shares, never instead of them.
type IntestateDistributionResult struct {
	SectionApplied      string             `json:"sectionApplied"`
	Description         string             `json:"description"`
	PersonalEffects     PersonalEffects    `json:"personalEffects"`
	ResidueDistribution []BeneficiaryShare `json:"residueDistribution"`
	Warnings            []string           `json:"warnings"`
}

// TotalPercentage sums the share percentages of the residue distribution.
func (r IntestateDistributionResult) TotalPercentage() float64 {
	var total float64
	for _, share := range r.ResidueDistribution {
		total += share.SharePercentage
	}
	return total
}

// TotalValue sums the monetary values of the residue distribution.
func (r IntestateDistributionResult) TotalValue() float64 {
	var total float64
	for _, share := range r.ResidueDistribution {
		total += share.ShareValue
	}
	return total
}

// PolygamousHouse is one house of a polygamous estate: the widow and
// her children, per S.40.
type PolygamousHouse struct {
	HouseID     string   `json:"houseId"`
	SpouseID    string   `json:"spouseId"`
	ChildrenIDs []string `json:"childrenIds"`
}

// Units returns the S.40(1) unit count for the house: the children of
// the house plus one unit for the widow herself.
func (h PolygamousHouse) Units() int {
	units := len(h.ChildrenIDs)
	if h.SpouseID != "" {
		units++
	}
	return units
}

// HouseDistribution is the per-house slice of a polygamous plan.
type HouseDistribution struct {
	HouseID         string                      `json:"houseId"`
	SpouseID        string                      `json:"spouseId"`
	AllocationUnits int                         `json:"allocationUnits"`
	AllocatedValue  float64                     `json:"allocatedValue"`
	Result          IntestateDistributionResult `json:"result"`
}

// PolygamousDistributionPlan partitions a polygamous estate across its
// houses per S.40 before each house is distributed under the
// single-house rules. The per-house allocations always sum to the total
// estate value.
type PolygamousDistributionPlan struct {
	SectionApplied   string              `json:"sectionApplied"`
	Description      string              `json:"description"`
	TotalEstateValue float64             `json:"totalEstateValue"`
	Houses           []HouseDistribution `json:"houses"`
	Warnings         []string            `json:"warnings"`
}

// TotalAllocated sums the per-house allocations.
func (p PolygamousDistributionPlan) TotalAllocated() float64 {
	var total float64
	for _, house := range p.Houses {
		total += house.AllocatedValue
	}
	return total
}
