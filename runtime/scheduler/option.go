package scheduler

import (
	"time"

	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/service/event"
)

// Option configures the scheduler
type Option func(*Scheduler)

// Sink consumes a snapshot after every loop iteration
type Sink interface {
	OnTick(snapshot *trace.Snapshot)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(snapshot *trace.Snapshot)

// OnTick calls f(snapshot)
func (f SinkFunc) OnTick(snapshot *trace.Snapshot) { f(snapshot) }

// WithPolicy sets the scheduling policy
func WithPolicy(p *policy.Policy) Option {
	return func(s *Scheduler) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithListeners registers event listeners, invoked synchronously in order
func WithListeners(listeners ...event.Listener) Option {
	return func(s *Scheduler) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// WithSinks registers snapshot sinks, invoked after every loop iteration
func WithSinks(sinks ...Sink) Option {
	return func(s *Scheduler) {
		for _, sink := range sinks {
			if sink != nil {
				s.sinks = append(s.sinks, sink)
			}
		}
	}
}

// WithPace sets the cosmetic delay between loop iterations; zero means fast mode
func WithPace(pace time.Duration) Option {
	return func(s *Scheduler) {
		s.pace = pace
	}
}

// WithRunID sets the run identifier recorded in the trace and events
func WithRunID(id string) Option {
	return func(s *Scheduler) {
		s.runID = id
	}
}

// WithSource records where the process list came from
func WithSource(source string) Option {
	return func(s *Scheduler) {
		s.source = source
	}
}
