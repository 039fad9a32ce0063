package pcb

import (
	"fmt"
	"strings"
)

// State represents the scheduling state of a process
type State string

// Process state constants
const (
	StateRunning  State = "Running"
	StateReady    State = "Ready"
	StateWaiting  State = "Waiting"
	StateFinished State = "Finished"
)

// Rank orders states for display: running first, finished last.
func (s State) Rank() int {
	switch s {
	case StateRunning:
		return 0
	case StateReady:
		return 1
	case StateWaiting:
		return 2
	case StateFinished:
		return 3
	}
	return 4
}

// IsValid reports whether s is one of the known states.
func (s State) IsValid() bool {
	return s.Rank() < 4
}

// ParseState converts a textual state (case-insensitive) into State.
func ParseState(value string) (State, error) {
	for _, candidate := range []State{StateRunning, StateReady, StateWaiting, StateFinished} {
		if strings.EqualFold(value, string(candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown process state %q", value)
}

// Type is informational only, it has no scheduling effect.
type Type string

const (
	TypeSystem Type = "System"
	TypeUser   Type = "User"
)

// ParseType converts a textual process type (case-insensitive) into Type.
func ParseType(value string) (Type, error) {
	for _, candidate := range []Type{TypeSystem, TypeUser} {
		if strings.EqualFold(value, string(candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown process type %q", value)
}

// Priority bounds; lower value means higher scheduling precedence.
const (
	MaxPriority = 19
	MinPriority = -20
)

// PCB is a process control block
type PCB struct {
	PID   int    `json:"pid" yaml:"pid"`
	Name  string `json:"name" yaml:"name"`
	State State  `json:"state" yaml:"state"`
	// Priority from MinPriority to MaxPriority, lower number means higher priority
	Priority int  `json:"priority" yaml:"priority"`
	Type     Type `json:"process_type" yaml:"process_type"`
	// RunningTime is the number of ticks the process executed so far
	RunningTime int `json:"running_time" yaml:"running_time"`
	// RunningTimeInSlice is the number of ticks executed since the last dispatch
	RunningTimeInSlice int `json:"running_time_in_slice" yaml:"running_time_in_slice"`
	// TotalTime is the declared budget, the process finishes when RunningTime reaches it
	TotalTime int `json:"total_time" yaml:"total_time"`
	// ResourceRequestTime is the RunningTime at which the process needs the shared resource
	ResourceRequestTime int `json:"resource_request_time" yaml:"resource_request_time"`
}

// New creates a process control block in the Ready state
func New(pid int, name string, priority int, processType Type, totalTime, resourceRequestTime int) *PCB {
	return &PCB{
		PID:                 pid,
		Name:                name,
		State:               StateReady,
		Priority:            priority,
		Type:                processType,
		TotalTime:           totalTime,
		ResourceRequestTime: resourceRequestTime,
	}
}

// IsFinished returns true once the process consumed its whole budget
func (p *PCB) IsFinished() bool {
	return p.RunningTime == p.TotalTime
}

// Clone returns a copy of the record
func (p *PCB) Clone() *PCB {
	if p == nil {
		return nil
	}
	ret := *p
	return &ret
}

// String returns a short identity label
func (p *PCB) String() string {
	return fmt.Sprintf("%d(%s)", p.PID, p.Name)
}
