package request

// IntestateDistributionRequest represents the request body for a
// single-house intestate distribution calculation. The net residue must
// already be net of debts and personal-effects deductions.
type IntestateDistributionRequest struct {
	DeceasedID                string              `json:"deceasedId"`
	NetResidueValue           float64             `json:"netResidueValue"`
	SurvivingSpouses          []string            `json:"survivingSpouses"`
	LivingChildren            []string            `json:"livingChildren"`
	DeceasedChildrenWithIssue map[string][]string `json:"deceasedChildrenWithIssue"`
	LivingParents             []string            `json:"livingParents"`
}

// PolygamousHouseRequest is one house within a polygamous distribution
// request.
type PolygamousHouseRequest struct {
	HouseID     string   `json:"houseId"`
	SpouseID    string   `json:"spouseId"`
	ChildrenIDs []string `json:"childrenIds"`
}

// PolygamousDistributionRequest represents the request body for a S.40
// polygamous estate distribution.
type PolygamousDistributionRequest struct {
	DeceasedID       string                   `json:"deceasedId"`
	TotalEstateValue float64                  `json:"totalEstateValue"`
	Houses           []PolygamousHouseRequest `json:"houses"`
}
