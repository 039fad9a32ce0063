package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/internal/idgen"
	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/tracing"
)

// Scheduler simulates a single processor. It owns the running slot, the ready
// and waiting queues, the finished list and the shared resource; every process
// record lives in exactly one of those containers.
//
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	policy   *policy.Policy
	running  *pcb.PCB
	ready    *Queue
	waiting  *Queue
	finished []*pcb.PCB
	resource pcb.Resource

	tick      int
	iteration int
	pace      time.Duration
	runID     string
	source    string
	listeners []event.Listener
	sinks     []Sink
	trace     *trace.Trace
}

// New creates a scheduler with every supplied process queued as ready, in the
// supplied order. Records are copied; the caller keeps ownership of the input.
func New(list []*pcb.PCB, options ...Option) (*Scheduler, error) {
	s := &Scheduler{
		policy:   policy.Default(),
		waiting:  NewQueue(),
		resource: pcb.NewResource(),
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.policy.Validate(); err != nil {
		return nil, err
	}
	if err := s.validate(list); err != nil {
		return nil, err
	}
	if s.runID == "" {
		s.runID = idgen.New()
	}
	s.trace = trace.New(s.runID, s.source, clock.Now(), list)
	s.ready = NewQueue()
	for _, item := range list {
		s.ready.PushBack(item.Clone())
	}
	return s, nil
}

func (s *Scheduler) validate(list []*pcb.PCB) error {
	seen := make(map[int]bool, len(list))
	for i, item := range list {
		if item == nil {
			return fmt.Errorf("%w: record %d is nil", ErrInvalidRecord, i)
		}
		if item.State != pcb.StateReady {
			return fmt.Errorf("%w: pid %d is %q", ErrNotReady, item.PID, item.State)
		}
		if seen[item.PID] {
			return fmt.Errorf("%w: %d", ErrDuplicatePID, item.PID)
		}
		seen[item.PID] = true
		switch {
		case item.TotalTime <= 0:
			return fmt.Errorf("%w: pid %d total_time must be > 0, got %d", ErrInvalidRecord, item.PID, item.TotalTime)
		case item.RunningTime < 0 || item.RunningTime >= item.TotalTime:
			return fmt.Errorf("%w: pid %d running_time must be in [0,%d), got %d", ErrInvalidRecord, item.PID, item.TotalTime, item.RunningTime)
		case item.ResourceRequestTime < 0:
			return fmt.Errorf("%w: pid %d resource_request_time must be >= 0, got %d", ErrInvalidRecord, item.PID, item.ResourceRequestTime)
		case !s.policy.InRange(item.Priority):
			return fmt.Errorf("%w: pid %d priority %d outside [%d,%d]", ErrInvalidRecord, item.PID, item.Priority, s.policy.MinPriority, s.policy.MaxPriority)
		}
	}
	return nil
}

// Tick returns the number of productive ticks so far
func (s *Scheduler) Tick() int { return s.tick }

// Running returns a copy of the running process or nil
func (s *Scheduler) Running() *pcb.PCB { return s.running.Clone() }

// Resource returns a copy of the resource state
func (s *Scheduler) Resource() pcb.Resource {
	if pid, ok := s.resource.Holder(); ok {
		ret := pcb.NewResource()
		ret.Occupy(pid)
		return ret
	}
	return pcb.NewResource()
}

// Trace returns the trace recorded so far
func (s *Scheduler) Trace() *trace.Trace { return s.trace }

// Run performs the resource handshake for the running process and then
// advances it by one tick. It returns whether any process executed.
func (s *Scheduler) Run() bool {
	s.requestResource()
	running := s.running
	if running == nil {
		return false
	}
	s.tick++
	s.emit(event.TypeRun, running)
	running.RunningTime++
	running.RunningTimeInSlice++
	if running.IsFinished() {
		s.finishRunning()
	}
	return true
}

// requestResource fires only when the running time equals the request time.
func (s *Scheduler) requestResource() {
	running := s.running
	if running == nil || running.RunningTime != running.ResourceRequestTime {
		return
	}
	switch {
	case s.resource.IsFree():
		s.occupyResource()
	case !s.resource.IsHeldBy(running.PID):
		s.blockRunning()
	}
}

// Dispatch applies priority aging, moves the best ready candidate to the
// front, decides on preemption and dispatches when the CPU is idle.
func (s *Scheduler) Dispatch() {
	s.updatePriority()
	s.ready.MoveMinPriorityToFront()
	if running := s.running; running != nil {
		if s.policy.QuantumExpired(running.RunningTimeInSlice) {
			s.preemptRunning(event.ReasonQuantum)
		} else if front := s.ready.Front(); front != nil && front.Priority < running.Priority {
			s.preemptRunning(event.ReasonPriority)
		}
	}
	if s.running == nil {
		s.dispatchReady()
	}
}

// Step runs one loop iteration (Run then Dispatch), records and publishes the
// resulting snapshot.
func (s *Scheduler) Step() *trace.Snapshot {
	executed := s.Run()
	s.Dispatch()
	snapshot := s.Snapshot()
	snapshot.Executed = executed
	s.iteration++
	s.trace.OnTick(snapshot)
	for _, sink := range s.sinks {
		sink.OnTick(snapshot)
	}
	return snapshot
}

// RunAll repeats Step until the running slot stays empty after a dispatch
// attempt, which means every process finished. In paced mode it sleeps
// between iterations; a cancelled ctx interrupts that sleep and the error is
// returned together with the partial trace.
func (s *Scheduler) RunAll(ctx context.Context) (aTrace *trace.Trace, err error) {
	ctx, span := tracing.StartRun(ctx, s.runID, s.source)
	defer func() { tracing.EndSpan(span, err) }()

	for {
		_, stepSpan := tracing.StartIteration(ctx, s.iteration)
		snapshot := s.Step()
		stepSpan.WithInt("tick", snapshot.Tick).
			WithAttributes(map[string]string{"running": runningLabel(snapshot.Running)})
		tracing.EndSpan(stepSpan, nil)
		progress.ObserveCtx(ctx, snapshot)

		if snapshot.Idle() {
			break
		}
		if s.pace > 0 {
			if err = clock.Sleep(ctx, s.pace); err != nil {
				return s.trace, err
			}
		}
	}
	s.trace.Finish(clock.Now())
	return s.trace, nil
}

// Snapshot copies the current state of every container
func (s *Scheduler) Snapshot() *trace.Snapshot {
	ret := &trace.Snapshot{
		Tick:      s.tick,
		Iteration: s.iteration,
		Running:   s.running.Clone(),
		Ready:     s.ready.Clone(),
		Waiting:   s.waiting.Clone(),
		Finished:  make([]*pcb.PCB, 0, len(s.finished)),
		Resource:  s.Resource(),
	}
	for _, item := range s.finished {
		ret.Finished = append(ret.Finished, item.Clone())
	}
	return ret
}

func (s *Scheduler) updatePriority() {
	if s.running != nil {
		s.running.Priority = s.policy.AgeRunning(s.running.Priority)
	}
	s.ready.Each(func(p *pcb.PCB) {
		p.Priority = s.policy.AgeReady(p.Priority)
	})
}

func (s *Scheduler) occupyResource() {
	if !s.resource.IsFree() {
		panic(fmt.Sprintf("scheduler: resource must be free, held by pid %d", *s.resource.PID))
	}
	s.resource.Occupy(s.running.PID)
	s.emit(event.TypeAcquire, s.running)
}

func (s *Scheduler) releaseResource() {
	if s.running == nil || !s.resource.IsHeldBy(s.running.PID) {
		return
	}
	s.resource.Release()
	s.emit(event.TypeRelease, s.running)
	s.wakeupWaiting()
}

func (s *Scheduler) wakeupWaiting() {
	p, ok := s.waiting.PopFront()
	if !ok {
		return
	}
	p.State = pcb.StateReady
	s.ready.PushBack(p)
	s.emit(event.TypeWake, p)
}

func (s *Scheduler) finishRunning() {
	s.releaseResource()
	running := s.running
	s.running = nil
	running.State = pcb.StateFinished
	s.finished = append(s.finished, running)
	s.emit(event.TypeFinish, running)
}

func (s *Scheduler) blockRunning() {
	running := s.running
	s.running = nil
	running.State = pcb.StateWaiting
	s.waiting.PushBack(running)
	s.emit(event.TypeBlock, running)
}

func (s *Scheduler) preemptRunning(reason string) {
	running := s.running
	s.running = nil
	running.State = pcb.StateReady
	s.ready.PushBack(running)
	s.emit(event.TypePreempt, running, reason)
}

func (s *Scheduler) dispatchReady() {
	if s.running != nil {
		panic(fmt.Sprintf("scheduler: the running process %d must be detached first", s.running.PID))
	}
	p, ok := s.ready.PopFront()
	if !ok {
		return
	}
	p.State = pcb.StateRunning
	p.RunningTimeInSlice = 0
	s.running = p
	s.emit(event.TypeDispatch, p)
}

func (s *Scheduler) emit(eventType event.Type, p *pcb.PCB, reason ...string) {
	e := event.NewEvent(&event.Context{
		RunID:     s.runID,
		Tick:      s.tick,
		PID:       p.PID,
		EventType: eventType,
	}, p.Clone())
	if len(reason) > 0 {
		e.WithReason(reason[0])
	}
	s.trace.OnEvent(e)
	for _, listener := range s.listeners {
		if listener != nil {
			listener(e)
		}
	}
}

func runningLabel(p *pcb.PCB) string {
	if p == nil {
		return tracing.RunningLabel(0, true)
	}
	return tracing.RunningLabel(p.PID, false)
}
