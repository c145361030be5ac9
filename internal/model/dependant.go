package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
)

// Dependency bases: the relationship categories recognised by S.29.
// OTHER is accepted on declaration but never qualifies.
const (
	BasisSpouse    = "SPOUSE"
	BasisChild     = "CHILD"
	BasisParent    = "PARENT"
	BasisSibling   = "SIBLING"
	BasisCohabitor = "COHABITOR"
	BasisOther     = "OTHER"
)

// Dependency levels assigned by assessment or court order.
const (
	DependencyNone    = "NONE"
	DependencyPartial = "PARTIAL"
	DependencyFull    = "FULL"
)

// Dependant event types recorded on the audit trail.
const (
	EventDependantDeclared   = "DEPENDANT_DECLARED"
	EventDependencyAssessed  = "DEPENDENCY_ASSESSED"
	EventEvidenceAdded       = "EVIDENCE_ADDED"
	EventClaimFiled          = "SECTION_26_CLAIM_FILED"
	EventCourtProvisionMade  = "COURT_PROVISION_RECORDED"
)

// ValidDependencyBasis contains the allowed dependency basis values.
var ValidDependencyBasis = map[string]bool{
	BasisSpouse: true, BasisChild: true, BasisParent: true,
	BasisSibling: true, BasisCohabitor: true, BasisOther: true,
}

// ValidDependencyLevel contains the allowed dependency level values.
var ValidDependencyLevel = map[string]bool{
	DependencyNone: true, DependencyPartial: true, DependencyFull: true,
}

// IsRecognizedBasis reports whether the basis is one of the fixed
// relationship categories (anything but OTHER).
func IsRecognizedBasis(basis string) bool {
	return ValidDependencyBasis[basis] && basis != BasisOther
}

// IsPriorityBasis reports whether the basis qualifies automatically
// under S.29 (spouses and children).
func IsPriorityBasis(basis string) bool {
	return basis == BasisSpouse || basis == BasisChild
}

// DependantEvent is an audit record produced by a dependant mutation.
// The caller persists it in the same transaction as the entity write.
type DependantEvent struct {
	ID          string    `json:"id"`
	DependantID string    `json:"dependantId"`
	Type        string    `json:"type"`
	Detail      string    `json:"detail"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// LegalDependant is a person the deceased was obligated to provide for.
// It is a legal record: mutations bump the version counter and produce
// audit events, and records are never physically deleted.
type LegalDependant struct {
	ID                   string                 `json:"id"`
	DeceasedID           string                 `json:"deceasedId"`
	DependantID          string                 `json:"dependantId"`
	BasisSection         string                 `json:"basisSection"`
	DependencyBasis      string                 `json:"dependencyBasis"`
	DependencyLevel      string                 `json:"dependencyLevel"`
	DependencyPercentage float64                `json:"dependencyPercentage"`
	MonthlySupport       float64                `json:"monthlySupport"`
	Calculation          *DependencyCalculation `json:"dependencyCalculation,omitempty"`
	IsMinor              bool                   `json:"isMinor"`
	IsStudent            bool                   `json:"isStudent"`
	HasDisability        bool                   `json:"hasDisability"`
	IsClaimant           bool                   `json:"isClaimant"`
	ClaimAmount          float64                `json:"claimAmount,omitempty"`
	ClaimCurrency        string                 `json:"claimCurrency,omitempty"`
	ProvisionOrderIssued bool                   `json:"provisionOrderIssued"`
	CourtOrderNumber     string                 `json:"courtOrderNumber,omitempty"`
	CourtApprovedAmount  float64                `json:"courtApprovedAmount,omitempty"`
	EvidenceDocuments    []string               `json:"evidenceDocuments"`
	Version              int64                  `json:"version"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

// NewLegalDependant declares a dependant of the deceased. The dependant
// cannot be the deceased, and the basis must be one of the fixed
// categories.
func NewLegalDependant(deceasedID, dependantID, basis string) (*LegalDependant, DependantEvent, error) {
	if dependantID == deceasedID {
		return nil, DependantEvent{}, apperrors.ErrDependantIsDeceased
	}
	if !ValidDependencyBasis[basis] {
		return nil, DependantEvent{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownDependencyBasis, basis)
	}

	now := time.Now().UTC()
	d := &LegalDependant{
		ID:              uuid.New().String(),
		DeceasedID:      deceasedID,
		DependantID:     dependantID,
		BasisSection:    basisSection(basis),
		DependencyBasis: basis,
		DependencyLevel: DependencyNone,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	event := d.newEvent(EventDependantDeclared, fmt.Sprintf("declared under %s as %s", d.BasisSection, basis))
	return d, event, nil
}

// basisSection maps a relationship category to the statute limb it
// claims under.
func basisSection(basis string) string {
	switch basis {
	case BasisSpouse, BasisChild:
		return "LSA S.29(a)"
	case BasisParent:
		return "LSA S.29(b)"
	default:
		return "LSA S.29(c)"
	}
}

// AssessFinancialDependency records the outcome of a financial
// dependency assessment, replacing any prior calculation.
func (d *LegalDependant) AssessFinancialDependency(calc DependencyCalculation, level string) (DependantEvent, error) {
	if !ValidDependencyLevel[level] {
		return DependantEvent{}, fmt.Errorf("unknown dependency level: %s", level)
	}

	d.Calculation = &calc
	d.DependencyLevel = level
	d.DependencyPercentage = calc.DependencyPercentage
	d.MonthlySupport = calc.MonthlyEquivalent()
	d.touch()

	detail := fmt.Sprintf("assessed %s at %.2f%%", level, calc.DependencyPercentage)
	return d.newEvent(EventDependencyAssessed, detail), nil
}

// AddEvidence attaches an evidence document reference. Attaching a
// document already present is a no-op: no version bump, no event.
func (d *LegalDependant) AddEvidence(documentID string) (DependantEvent, bool) {
	for _, existing := range d.EvidenceDocuments {
		if existing == documentID {
			return DependantEvent{}, false
		}
	}

	d.EvidenceDocuments = append(d.EvidenceDocuments, documentID)
	d.touch()
	return d.newEvent(EventEvidenceAdded, fmt.Sprintf("evidence document %s attached", documentID)), true
}

// FileSection26Claim files a claim for reasonable provision under S.26.
func (d *LegalDependant) FileSection26Claim(amount float64, currency string) (DependantEvent, error) {
	if amount <= 0 {
		return DependantEvent{}, apperrors.ErrInvalidClaimAmount
	}

	d.IsClaimant = true
	d.ClaimAmount = amount
	d.ClaimCurrency = currency
	d.touch()

	return d.newEvent(EventClaimFiled, fmt.Sprintf("claim filed for %.2f %s", amount, currency)), nil
}

// RecordCourtProvision records a provision order made by the court.
// The court's determination is authoritative: a positive approved
// amount forces the dependency level to FULL regardless of any earlier
// assessment.
func (d *LegalDependant) RecordCourtProvision(orderNumber string, approvedAmount float64, orderType string) (DependantEvent, error) {
	if orderNumber == "" {
		return DependantEvent{}, fmt.Errorf("court order number: %w", apperrors.ErrMissingRequiredField)
	}
	if approvedAmount < 0 {
		return DependantEvent{}, fmt.Errorf("approved amount: %w", apperrors.ErrNegativeAmount)
	}

	d.ProvisionOrderIssued = true
	d.CourtOrderNumber = orderNumber
	d.CourtApprovedAmount = approvedAmount
	if approvedAmount > 0 {
		d.DependencyLevel = DependencyFull
		d.DependencyPercentage = 100
	}
	d.touch()

	detail := fmt.Sprintf("%s order %s for %.2f", orderType, orderNumber, approvedAmount)
	return d.newEvent(EventCourtProvisionMade, detail), nil
}

// touch bumps the version counter and update timestamp.
func (d *LegalDependant) touch() {
	d.Version++
	d.UpdatedAt = time.Now().UTC()
}

func (d *LegalDependant) newEvent(eventType, detail string) DependantEvent {
	return DependantEvent{
		ID:          uuid.New().String(),
		DependantID: d.ID,
		Type:        eventType,
		Detail:      detail,
		OccurredAt:  time.Now().UTC(),
	}
}
