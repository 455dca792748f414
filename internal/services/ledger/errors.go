package services

import "errors"

// Typed failures of the ledger operations. Validation errors are returned
// before any store mutation is attempted; not-found errors propagate to the
// caller, no silent no-ops; conflicts are never retried here, retry policy
// belongs to the caller.
var (
	// ErrPackageNotFound means the referenced package does not exist.
	ErrPackageNotFound = errors.New("package not found")
	// ErrSessionNotFound means the referenced session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionClosed means the session is already completed or cancelled;
	// terminal statuses cannot be changed.
	ErrSessionClosed = errors.New("session already completed or cancelled")
	// ErrInvalidAmount means the payment amount is not positive.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrInvalidTimestamp means the session timestamp is not valid RFC 3339.
	ErrInvalidTimestamp = errors.New("scheduled_at must be a valid RFC 3339 timestamp")
	// ErrInvalidDuration means the session duration is not positive.
	ErrInvalidDuration = errors.New("session duration must be positive")
	// ErrHoursIncomplete means the package cannot be closed before all
	// contracted hours are delivered.
	ErrHoursIncomplete = errors.New("contracted hours not yet delivered")
)
