package model

import (
	"fmt"
	"math"
	"time"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
)

// Support payment frequencies accepted in a dependency calculation.
const (
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
	FrequencyAnnual  = "ANNUAL"
)

// Qualification thresholds under S.29 of the Law of Succession Act.
// A dependant qualifies with at least six months of support covering at
// least 30% of their needs; enhanced provision requires two years at 90%.
const (
	s29MinimumDurationMonths      = 6
	s29MinimumCoverage            = 0.30
	enhancedMinimumDurationMonths = 24
	enhancedMinimumCoverage       = 0.90

	// Support beyond 150% of the deceased's income fails the sanity bound.
	maxSupportToIncomeRatio = 1.5

	// Recommended provision caps at 60% of the dependant's monthly needs.
	recommendedNeedsFraction = 0.6

	// Lump sum recommendation covers 24 months of provision.
	recommendedLumpSumMonths = 24
)

// DependencyCalculation captures the financial relationship between the
// deceased and a dependant. It is an immutable value object: methods
// that "change" it return a new instance. All classification inputs are
// part of the JSON projection so a stored calculation reproduces the
// same S.29 qualification when reloaded.
type DependencyCalculation struct {
	DeceasedMonthlyIncome float64    `json:"deceasedMonthlyIncome"`
	DependantMonthlyNeeds float64    `json:"dependantMonthlyNeeds"`
	SupportAmount         float64    `json:"supportAmount"`
	SupportFrequency      string     `json:"supportFrequency"`
	SupportStartDate      time.Time  `json:"supportStartDate"`
	SupportEndDate        *time.Time `json:"supportEndDate,omitempty"`
	DependencyPercentage  float64    `json:"dependencyPercentage"`
	EvidenceRefs          []string   `json:"evidenceRefs,omitempty"`
	IsVerified            bool       `json:"isVerified"`
	VerifiedAt            *time.Time `json:"verifiedAt,omitempty"`
	CourtOrderReference   string     `json:"courtOrderReference,omitempty"`
	CourtOrderDate        *time.Time `json:"courtOrderDate,omitempty"`
}

// NewDependencyCalculation validates and constructs a calculation.
// Construction fails on the first violated invariant; a calculation
// that exists is always internally consistent.
func NewDependencyCalculation(calc DependencyCalculation) (DependencyCalculation, error) {
	now := time.Now().UTC()

	if calc.DeceasedMonthlyIncome < 0 {
		return DependencyCalculation{}, fmt.Errorf("deceasedMonthlyIncome: %w", apperrors.ErrNegativeAmount)
	}
	if calc.DependantMonthlyNeeds < 0 {
		return DependencyCalculation{}, fmt.Errorf("dependantMonthlyNeeds: %w", apperrors.ErrNegativeAmount)
	}
	if calc.SupportAmount < 0 {
		return DependencyCalculation{}, fmt.Errorf("supportAmount: %w", apperrors.ErrNegativeAmount)
	}
	if calc.DependencyPercentage < 0 {
		return DependencyCalculation{}, fmt.Errorf("dependencyPercentage: %w", apperrors.ErrNegativeAmount)
	}
	if calc.DependencyPercentage > 100 {
		return DependencyCalculation{}, fmt.Errorf("dependencyPercentage cannot exceed 100, got %.4f", calc.DependencyPercentage)
	}

	switch calc.SupportFrequency {
	case FrequencyWeekly, FrequencyMonthly, FrequencyAnnual:
	default:
		return DependencyCalculation{}, fmt.Errorf("supportFrequency must be WEEKLY, MONTHLY or ANNUAL, got %q", calc.SupportFrequency)
	}

	// Sanity bound: claimed support cannot exceed 150% of what the
	// deceased earned.
	if calc.MonthlyEquivalent() > maxSupportToIncomeRatio*calc.DeceasedMonthlyIncome {
		return DependencyCalculation{}, fmt.Errorf(
			"monthly support %.2f exceeds %.0f%% of deceased income %.2f",
			calc.MonthlyEquivalent(), maxSupportToIncomeRatio*100, calc.DeceasedMonthlyIncome,
		)
	}

	if calc.SupportStartDate.IsZero() {
		return DependencyCalculation{}, fmt.Errorf("supportStartDate: %w", apperrors.ErrMissingRequiredField)
	}
	if calc.SupportStartDate.After(now) {
		return DependencyCalculation{}, fmt.Errorf("supportStartDate cannot be in the future")
	}
	if calc.SupportEndDate != nil {
		if calc.SupportEndDate.After(now) {
			return DependencyCalculation{}, fmt.Errorf("supportEndDate cannot be in the future")
		}
		if calc.SupportEndDate.Before(calc.SupportStartDate) {
			return DependencyCalculation{}, fmt.Errorf("supportEndDate cannot precede supportStartDate")
		}
	}

	// Court order reference and date travel together.
	if calc.CourtOrderReference != "" && calc.CourtOrderDate == nil {
		return DependencyCalculation{}, fmt.Errorf("courtOrderReference requires courtOrderDate")
	}
	if calc.CourtOrderDate != nil && calc.CourtOrderReference == "" {
		return DependencyCalculation{}, fmt.Errorf("courtOrderDate requires courtOrderReference")
	}
	if calc.CourtOrderDate != nil && calc.CourtOrderDate.After(now) {
		return DependencyCalculation{}, fmt.Errorf("courtOrderDate cannot be in the future")
	}

	if calc.IsVerified && calc.VerifiedAt == nil {
		return DependencyCalculation{}, fmt.Errorf("verified calculation requires verifiedAt")
	}
	if calc.VerifiedAt != nil && calc.VerifiedAt.After(now) {
		return DependencyCalculation{}, fmt.Errorf("verifiedAt cannot be in the future")
	}

	calc.EvidenceRefs = append([]string(nil), calc.EvidenceRefs...)
	return calc, nil
}

// MonthlyEquivalent normalizes the support amount to a monthly figure.
func (c DependencyCalculation) MonthlyEquivalent() float64 {
	switch c.SupportFrequency {
	case FrequencyWeekly:
		return c.SupportAmount * 52.0 / 12.0
	case FrequencyAnnual:
		return c.SupportAmount / 12.0
	default:
		return c.SupportAmount
	}
}

// SupportCoverage returns the fraction of the dependant's monthly needs
// covered by the support, e.g. 0.45 for 45%. Zero needs yields zero
// coverage rather than a division by zero.
func (c DependencyCalculation) SupportCoverage() float64 {
	if c.DependantMonthlyNeeds <= 0 {
		return 0
	}
	return c.MonthlyEquivalent() / c.DependantMonthlyNeeds
}

// SupportDurationMonths returns whole months of support as of the given
// date. An open-ended support period runs until asOf.
func (c DependencyCalculation) SupportDurationMonths(asOf time.Time) int {
	end := asOf
	if c.SupportEndDate != nil {
		end = *c.SupportEndDate
	}
	if end.Before(c.SupportStartDate) {
		return 0
	}

	months := (end.Year()-c.SupportStartDate.Year())*12 + int(end.Month()-c.SupportStartDate.Month())
	if end.Day() < c.SupportStartDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// QualifiesForS29 reports whether the calculation establishes a
// dependant under S.29: at least six months of support covering at
// least 30% of needs, with a recognised relationship basis. Priority
// bases (spouse, child) qualify automatically.
func (c DependencyCalculation) QualifiesForS29(basis string, asOf time.Time) bool {
	if !IsRecognizedBasis(basis) {
		return false
	}
	if IsPriorityBasis(basis) {
		return true
	}
	return c.SupportDurationMonths(asOf) >= s29MinimumDurationMonths &&
		c.SupportCoverage() >= s29MinimumCoverage
}

// QualifiesForEnhancedProvision reports whether the dependant was near
// wholly maintained by the deceased: two years of support at 90%
// coverage on top of base qualification.
func (c DependencyCalculation) QualifiesForEnhancedProvision(basis string, asOf time.Time) bool {
	if !c.QualifiesForS29(basis, asOf) {
		return false
	}
	return c.SupportDurationMonths(asOf) >= enhancedMinimumDurationMonths &&
		c.SupportCoverage() >= enhancedMinimumCoverage
}

// ProvisionRecommendation is the advisory provision derived from a
// calculation. It is never applied to court-order fields automatically.
type ProvisionRecommendation struct {
	MonthlyProvision float64 `json:"monthlyProvision"`
	LumpSum          float64 `json:"lumpSum"`
}

// RecommendedProvision suggests a monthly provision of the previous
// support level capped at 60% of the dependant's needs, and a lump sum
// covering 24 months.
func (c DependencyCalculation) RecommendedProvision() ProvisionRecommendation {
	monthly := math.Min(c.MonthlyEquivalent(), recommendedNeedsFraction*c.DependantMonthlyNeeds)
	return ProvisionRecommendation{
		MonthlyProvision: monthly,
		LumpSum:          monthly * recommendedLumpSumMonths,
	}
}

// Verified returns a copy of the calculation marked as verified.
func (c DependencyCalculation) Verified(at time.Time) DependencyCalculation {
	out := c
	out.EvidenceRefs = append([]string(nil), c.EvidenceRefs...)
	out.IsVerified = true
	out.VerifiedAt = &at
	return out
}

// WithCourtOrder returns a copy cross-referencing a court order.
func (c DependencyCalculation) WithCourtOrder(reference string, date time.Time) DependencyCalculation {
	out := c
	out.EvidenceRefs = append([]string(nil), c.EvidenceRefs...)
	out.CourtOrderReference = reference
	out.CourtOrderDate = &date
	return out
}

// WithEvidence returns a copy with an additional evidence reference.
// Adding a reference already present returns an unchanged copy.
func (c DependencyCalculation) WithEvidence(ref string) DependencyCalculation {
	out := c
	out.EvidenceRefs = append([]string(nil), c.EvidenceRefs...)
	for _, existing := range out.EvidenceRefs {
		if existing == ref {
			return out
		}
	}
	out.EvidenceRefs = append(out.EvidenceRefs, ref)
	return out
}
