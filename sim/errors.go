package sim

import "errors"

// Sentinel errors returned by construction and registration.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidConfig is returned for a thread count below 1 or a negative starvation threshold.
	ErrInvalidConfig = errors.New("invalid scheduler config")
	// ErrInvalidRequest is returned for an empty ID, negative arrival or non-positive page count.
	ErrInvalidRequest = errors.New("invalid request declaration")
	// ErrDuplicateRequest is returned when an ID is registered twice.
	ErrDuplicateRequest = errors.New("duplicate request id")
)
