package policy

import (
	"errors"
	"fmt"

	"github.com/viant/schedsim/model/pcb"
)

// TimeSlice is the default quantum in ticks.
const TimeSlice = 2

// Policy represents scheduling knobs for a single run.
//
//   - TimeSlice is the number of ticks a process may run before it is
//     preempted for quantum exhaustion.
//   - MinPriority, MaxPriority clamp the aging transformation.
type Policy struct {
	TimeSlice   int `json:"timeSlice,omitempty" yaml:"timeSlice,omitempty"`
	MinPriority int `json:"minPriority,omitempty" yaml:"minPriority,omitempty"`
	MaxPriority int `json:"maxPriority,omitempty" yaml:"maxPriority,omitempty"`
}

// Default returns the classic policy
func Default() *Policy {
	return &Policy{
		TimeSlice:   TimeSlice,
		MinPriority: pcb.MinPriority,
		MaxPriority: pcb.MaxPriority,
	}
}

// Init fills unset fields with defaults
func (p *Policy) Init() {
	if p.TimeSlice == 0 {
		p.TimeSlice = TimeSlice
	}
	if p.MinPriority == 0 && p.MaxPriority == 0 {
		p.MinPriority = pcb.MinPriority
		p.MaxPriority = pcb.MaxPriority
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (p *Policy) Validate() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.TimeSlice <= 0 {
		errs = append(errs, fmt.Errorf("policy.timeSlice must be > 0, got %d", p.TimeSlice))
	}
	if p.MinPriority < pcb.MinPriority {
		errs = append(errs, fmt.Errorf("policy.minPriority must be >= %d, got %d", pcb.MinPriority, p.MinPriority))
	}
	if p.MaxPriority > pcb.MaxPriority {
		errs = append(errs, fmt.Errorf("policy.maxPriority must be <= %d, got %d", pcb.MaxPriority, p.MaxPriority))
	}
	if p.MinPriority > p.MaxPriority {
		errs = append(errs, fmt.Errorf("policy.minPriority (%d) must not exceed policy.maxPriority (%d)", p.MinPriority, p.MaxPriority))
	}
	return errors.Join(errs...)
}

// InRange reports whether priority lies within the policy bounds
func (p *Policy) InRange(priority int) bool {
	return priority >= p.MinPriority && priority <= p.MaxPriority
}

// AgeRunning lowers the precedence of the incumbent by one step, capped at MaxPriority.
func (p *Policy) AgeRunning(priority int) int {
	return min(priority+1, p.MaxPriority)
}

// AgeReady raises the precedence of a waiting candidate by one step, floored at MinPriority.
func (p *Policy) AgeReady(priority int) int {
	return max(priority-1, p.MinPriority)
}

// QuantumExpired reports whether a process used up its time slice
func (p *Policy) QuantumExpired(runningTimeInSlice int) bool {
	return runningTimeInSlice >= p.TimeSlice
}
