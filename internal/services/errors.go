package services

import "errors"

// Error taxonomy shared by all engine services. Handlers map these to HTTP
// codes with errors.Is; services wrap them with fmt.Errorf("%w: ...") to
// carry the offending entity.
var (
	// ErrInsufficientStock means a reservation could not be satisfied. The
	// batch and order are left exactly as they were; the caller can retry
	// with a smaller quantity or another batch.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvariantViolation means a caller attempted a stock operation
	// inconsistent with the current counters (e.g. releasing more than is
	// reserved). It indicates a programming error and is never silently
	// corrected.
	ErrInvariantViolation = errors.New("stock invariant violation")

	// ErrInvalidTransition means a state-machine operation was requested
	// from a state that does not permit it.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrNotFound means a referenced entity is absent or soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the request itself is malformed (bad stop role,
	// empty lines, semos payment on a batch that refuses it).
	ErrValidation = errors.New("validation failed")
)
