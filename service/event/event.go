package event

import (
	"fmt"
	"time"

	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/model/pcb"
)

// Type identifies a discrete scheduling decision
type Type string

const (
	TypeDispatch Type = "dispatch"
	TypePreempt  Type = "preempt"
	TypeBlock    Type = "block"
	TypeWake     Type = "wake"
	TypeAcquire  Type = "acquire"
	TypeRelease  Type = "release"
	TypeFinish   Type = "finish"
	TypeRun      Type = "run"
)

// Preemption reasons
const (
	ReasonQuantum  = "quantum"
	ReasonPriority = "priority"
)

const reasonKey = "reason"

type Context struct {
	RunID     string `json:"runId,omitempty"`
	Tick      int    `json:"tick"`
	PID       int    `json:"pid"`
	EventType Type   `json:"eventType"`
}

type Event struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	// Data is a copy of the process record taken when the event fired
	Data *pcb.PCB `json:"data"`
}

func NewEvent(context *Context, data *pcb.PCB) *Event {
	return &Event{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

// WithReason records why the event happened (preemption only)
func (e *Event) WithReason(reason string) *Event {
	e.Metadata[reasonKey] = reason
	return e
}

// Reason returns recorded reason or empty string
func (e *Event) Reason() string {
	if e.Metadata == nil {
		return ""
	}
	reason, _ := e.Metadata[reasonKey].(string)
	return reason
}

// String returns human readable description
func (e *Event) String() string {
	pid := e.Context.PID
	switch e.Context.EventType {
	case TypeDispatch:
		return fmt.Sprintf("PID: %d is dispatched", pid)
	case TypePreempt:
		if e.Reason() == ReasonQuantum {
			return fmt.Sprintf("PID: %d has been preempted, time slice used up", pid)
		}
		return fmt.Sprintf("PID: %d has been preempted", pid)
	case TypeBlock:
		return fmt.Sprintf("PID: %d is waiting for the resource", pid)
	case TypeWake:
		return fmt.Sprintf("PID: %d is woken up to the ready state", pid)
	case TypeAcquire:
		return fmt.Sprintf("Resource occupied by PID: %d", pid)
	case TypeRelease:
		return fmt.Sprintf("Resource released by PID: %d", pid)
	case TypeFinish:
		return fmt.Sprintf("PID: %d has finished", pid)
	case TypeRun:
		return fmt.Sprintf("PID: %d runs for 1 tick", pid)
	}
	return fmt.Sprintf("PID: %d %s", pid, e.Context.EventType)
}
