package event

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/model/pcb"
)

func TestEvent_String(t *testing.T) {
	testCases := []struct {
		name      string
		eventType Type
		reason    string
		expect    string
	}{
		{name: "dispatch", eventType: TypeDispatch, expect: "PID: 3 is dispatched"},
		{name: "quantum preemption", eventType: TypePreempt, reason: ReasonQuantum, expect: "PID: 3 has been preempted, time slice used up"},
		{name: "priority preemption", eventType: TypePreempt, reason: ReasonPriority, expect: "PID: 3 has been preempted"},
		{name: "block", eventType: TypeBlock, expect: "PID: 3 is waiting for the resource"},
		{name: "wake", eventType: TypeWake, expect: "PID: 3 is woken up to the ready state"},
		{name: "acquire", eventType: TypeAcquire, expect: "Resource occupied by PID: 3"},
		{name: "release", eventType: TypeRelease, expect: "Resource released by PID: 3"},
		{name: "finish", eventType: TypeFinish, expect: "PID: 3 has finished"},
		{name: "run", eventType: TypeRun, expect: "PID: 3 runs for 1 tick"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvent(&Context{PID: 3, EventType: tc.eventType}, pcb.New(3, "p3", 0, pcb.TypeUser, 1, 0))
			if tc.reason != "" {
				e.WithReason(tc.reason)
			}
			assert.Equal(t, tc.expect, e.String())
			assert.Equal(t, tc.reason, e.Reason())
		})
	}
}

func TestListeners(t *testing.T) {
	assert.Nil(t, Listeners(nil, nil))

	var order []string
	fanOut := Listeners(
		func(e *Event) { order = append(order, "a") },
		nil,
		func(e *Event) { order = append(order, "b") },
	)
	fanOut(NewEvent(&Context{PID: 1, EventType: TypeRun}, nil))
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestStdoutListener(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	StdoutListener(NewEvent(&Context{Tick: 4, PID: 2, EventType: TypeFinish}, nil))
	StdoutListener(nil)
	assert.Contains(t, buf.String(), "[tick 4] PID: 2 has finished")
}
