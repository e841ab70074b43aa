package domain

import "errors"

// Error kinds. Engine and store errors wrap exactly one of these so callers
// can classify failures with errors.Is without parsing messages.
var (
	// ErrValidation marks malformed or out-of-range input. The operation is
	// aborted with no state change.
	ErrValidation = errors.New("invalid input")

	// ErrConflict marks a uniqueness or cardinality violation, such as a
	// duplicate email or a second active loan.
	ErrConflict = errors.New("conflict")

	// ErrLoanOverdue marks the policy gate: an account with an overdue active
	// loan cannot record transactions of any kind.
	ErrLoanOverdue = errors.New("overdue loan blocks transactions")

	// ErrPersistence marks a failed store write. In-memory state is left
	// unchanged when it is returned.
	ErrPersistence = errors.New("persistence failure")

	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")
)
