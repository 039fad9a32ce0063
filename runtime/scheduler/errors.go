package scheduler

import "errors"

// Configuration errors detected before the simulation starts. Callers can
// match them with errors.Is.
var (
	// ErrNotReady is returned when an initial process is not in the Ready state.
	ErrNotReady = errors.New("scheduler: all processes must be in the ready state at the beginning")

	// ErrDuplicatePID is returned when two initial processes share a pid.
	ErrDuplicatePID = errors.New("scheduler: duplicate pid")

	// ErrInvalidRecord is returned for records that violate the data model
	// ranges or could never finish.
	ErrInvalidRecord = errors.New("scheduler: invalid process record")
)
