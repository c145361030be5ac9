package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrDependantNotFound indicates that a legal dependant with the given ID does not exist.
	ErrDependantNotFound = errors.New("legal dependant not found")

	// ErrDuplicateDependant indicates a dependant record already exists for
	// the same deceased/dependant pair.
	ErrDuplicateDependant = errors.New("dependant already declared for this deceased")

	// ErrDistributionNotFound indicates that a stored distribution result does not exist.
	ErrDistributionNotFound = errors.New("distribution result not found")

	// ErrGuardianshipAssessmentNotFound indicates that a stored guardianship assessment does not exist.
	ErrGuardianshipAssessmentNotFound = errors.New("guardianship assessment not found")

	// ErrCaseStatusNotFound indicates no compliance status has been computed for the deceased.
	ErrCaseStatusNotFound = errors.New("case status not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrNegativeEstateValue indicates a distribution was requested over a
	// negative net residue. The caller is responsible for deducting debts and
	// personal effects before invoking the engine.
	ErrNegativeEstateValue = errors.New("net estate value cannot be negative")

	// ErrNoHouses indicates a polygamous distribution was requested without any houses.
	ErrNoHouses = errors.New("polygamous distribution requires at least one house")

	// ErrDependantIsDeceased indicates an attempt to declare the deceased as
	// their own dependant.
	ErrDependantIsDeceased = errors.New("dependant cannot be the deceased")

	// ErrUnknownDependencyBasis indicates a dependency basis outside the
	// recognised relationship categories.
	ErrUnknownDependencyBasis = errors.New("unknown dependency basis")

	// ErrInvalidClaimAmount indicates a S.26 claim filed with a non-positive amount.
	ErrInvalidClaimAmount = errors.New("claim amount must be positive")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidEvidenceToken indicates a sealed evidence reference token
	// that failed verification or expired.
	ErrInvalidEvidenceToken = errors.New("invalid or expired evidence token")
)

// Concurrency errors represent write conflicts between competing callers.
var (
	// ErrVersionConflict indicates that a dependant write carried a stale
	// version. The conflict is retryable: reload the record and reapply the
	// mutation. It is never auto-merged.
	ErrVersionConflict = errors.New("dependant version conflict")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Dependant operation errors
	ErrFailedToRetrieveDependants = errors.New("failed to retrieve dependants")
	ErrFailedToSaveDependant      = errors.New("failed to save dependant")

	// Distribution operation errors
	ErrFailedToSaveDistribution = errors.New("failed to save distribution result")

	// Compliance operation errors
	ErrFailedToEvaluateCase = errors.New("failed to evaluate case compliance")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a beneficiary share row without its distribution result).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
