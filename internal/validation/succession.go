package validation

import (
	"fmt"

	"github.com/ndewijer/Succession-Service-Backend/internal/api/request"
)

// ValidateIntestateDistribution validates a single-house distribution
// request.
//
// Required fields:
//   - deceasedId: Must be a valid UUID
//   - netResidueValue: Must be non-negative
//   - all member IDs: Must be valid UUIDs
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateIntestateDistribution(req request.IntestateDistributionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.DeceasedID); err != nil {
		errors["deceasedId"] = err.Error()
	}
	if req.NetResidueValue < 0 {
		errors["netResidueValue"] = "netResidueValue cannot be negative"
	}

	for i, id := range req.SurvivingSpouses {
		if err := ValidateUUID(id); err != nil {
			errors[fmt.Sprintf("survivingSpouses[%d]", i)] = err.Error()
		}
	}
	for i, id := range req.LivingChildren {
		if err := ValidateUUID(id); err != nil {
			errors[fmt.Sprintf("livingChildren[%d]", i)] = err.Error()
		}
	}
	for i, id := range req.LivingParents {
		if err := ValidateUUID(id); err != nil {
			errors[fmt.Sprintf("livingParents[%d]", i)] = err.Error()
		}
	}
	for deceasedChildID, grandchildren := range req.DeceasedChildrenWithIssue {
		if err := ValidateUUID(deceasedChildID); err != nil {
			errors["deceasedChildrenWithIssue"] = err.Error()
			continue
		}
		for i, id := range grandchildren {
			if err := ValidateUUID(id); err != nil {
				errors[fmt.Sprintf("deceasedChildrenWithIssue[%s][%d]", deceasedChildID, i)] = err.Error()
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidatePolygamousDistribution validates a S.40 distribution request.
func ValidatePolygamousDistribution(req request.PolygamousDistributionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.DeceasedID); err != nil {
		errors["deceasedId"] = err.Error()
	}
	if req.TotalEstateValue < 0 {
		errors["totalEstateValue"] = "totalEstateValue cannot be negative"
	}
	if len(req.Houses) == 0 {
		errors["houses"] = "at least one house is required"
	}

	for i, house := range req.Houses {
		if house.HouseID == "" {
			errors[fmt.Sprintf("houses[%d].houseId", i)] = "houseId is required"
		}
		if house.SpouseID != "" {
			if err := ValidateUUID(house.SpouseID); err != nil {
				errors[fmt.Sprintf("houses[%d].spouseId", i)] = err.Error()
			}
		}
		for j, childID := range house.ChildrenIDs {
			if err := ValidateUUID(childID); err != nil {
				errors[fmt.Sprintf("houses[%d].childrenIds[%d]", i, j)] = err.Error()
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
