package timer

import "errors"

// Sentinel errors
var (
	// ErrInvalidDuration rejects a start whose total duration is not positive
	ErrInvalidDuration = errors.New("duration must be greater than zero")

	// ErrNotIdle rejects a start while a run is in progress or completed
	ErrNotIdle = errors.New("timer is not idle")
)
