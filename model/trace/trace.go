package trace

import (
	"sort"
	"time"

	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/service/event"
)

// Trace represents a complete simulation run
type Trace struct {
	ID         string         `json:"id"`
	Source     string         `json:"source,omitempty"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
	Ticks      int            `json:"ticks"`
	Initial    []*pcb.PCB     `json:"initial"`
	Snapshots  []*Snapshot    `json:"snapshots"`
	Events     []*event.Event `json:"events,omitempty"`
}

// New creates a trace for the supplied initial process list
func New(id, source string, startedAt time.Time, initial []*pcb.PCB) *Trace {
	ret := &Trace{ID: id, Source: source, StartedAt: startedAt}
	for _, item := range initial {
		ret.Initial = append(ret.Initial, item.Clone())
	}
	return ret
}

// OnTick appends a snapshot
func (t *Trace) OnTick(snapshot *Snapshot) {
	t.Snapshots = append(t.Snapshots, snapshot)
	t.Ticks = snapshot.Tick
}

// OnEvent appends an event
func (t *Trace) OnEvent(e *event.Event) {
	t.Events = append(t.Events, e)
}

// Finish marks the trace as complete
func (t *Trace) Finish(at time.Time) {
	t.FinishedAt = &at
}

// Last returns the final snapshot or nil
func (t *Trace) Last() *Snapshot {
	if len(t.Snapshots) == 0 {
		return nil
	}
	return t.Snapshots[len(t.Snapshots)-1]
}

// EventsOf returns events of the given type, optionally restricted to pids
func (t *Trace) EventsOf(eventType event.Type, pids ...int) []*event.Event {
	var ret []*event.Event
	for _, e := range t.Events {
		if e.Context.EventType != eventType {
			continue
		}
		if len(pids) > 0 && !containsPID(pids, e.Context.PID) {
			continue
		}
		ret = append(ret, e)
	}
	return ret
}

// Stats summarises per process behaviour over the run
type Stats struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`
	// CompletedAt is the productive tick at which the process finished, -1 if it never did
	CompletedAt int `json:"completedAt"`
	// ReadyTicks counts productive ticks at whose end the process sat in the ready queue
	ReadyTicks int `json:"readyTicks"`
	// WaitingTicks counts productive ticks at whose end the process was blocked on the resource
	WaitingTicks int  `json:"waitingTicks"`
	Dispatches   int  `json:"dispatches"`
	Preemptions  int  `json:"preemptions"`
	Blocks       int  `json:"blocks"`
	Acquired     bool `json:"acquired"`
}

// Stats computes per process statistics ordered by pid
func (t *Trace) Stats() []*Stats {
	index := map[int]*Stats{}
	for _, item := range t.Initial {
		index[item.PID] = &Stats{PID: item.PID, Name: item.Name, CompletedAt: -1}
	}
	for _, snapshot := range t.Snapshots {
		if !snapshot.Executed {
			continue
		}
		for _, item := range snapshot.Ready {
			if s, ok := index[item.PID]; ok {
				s.ReadyTicks++
			}
		}
		for _, item := range snapshot.Waiting {
			if s, ok := index[item.PID]; ok {
				s.WaitingTicks++
			}
		}
	}
	for _, e := range t.Events {
		s, ok := index[e.Context.PID]
		if !ok {
			continue
		}
		switch e.Context.EventType {
		case event.TypeDispatch:
			s.Dispatches++
		case event.TypePreempt:
			s.Preemptions++
		case event.TypeBlock:
			s.Blocks++
		case event.TypeAcquire:
			s.Acquired = true
		case event.TypeFinish:
			s.CompletedAt = e.Context.Tick
		}
	}
	ret := make([]*Stats, 0, len(index))
	for _, s := range index {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].PID < ret[j].PID })
	return ret
}

func containsPID(pids []int, pid int) bool {
	for _, candidate := range pids {
		if candidate == pid {
			return true
		}
	}
	return false
}
