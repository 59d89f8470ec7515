package scheduling

import "errors"

// Validation failures returned to callers. None of them leaves the
// appointment store mutated, and none is retried here; a caller that loses a
// slot race is expected to re-query availability and re-prompt.
var (
	ErrInvalidDuration     = errors.New("scheduling: requested duration must be positive")
	ErrSlotUnavailable     = errors.New("scheduling: requested start time is not available")
	ErrInvalidTransition   = errors.New("scheduling: status transition not permitted")
	ErrUnknownService      = errors.New("scheduling: unknown or inactive service")
	ErrUnknownProfessional = errors.New("scheduling: unknown professional")
	ErrUnknownAppointment  = errors.New("scheduling: unknown appointment")
)
