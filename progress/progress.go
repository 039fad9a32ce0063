// Package progress provides a lightweight tracker that keeps aggregated
// counters (ticks, per-state population) for a single simulation run. The
// tracker instance lives in the run context; the scheduler feeds it a
// snapshot after every loop iteration via ObserveCtx without requiring a
// global registry.

package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/schedsim/model/trace"
)

// Progress keeps aggregated counters for one run. It is safe for concurrent
// use so that a callback may read it from another goroutine.
type Progress struct {
	// Identification – informative only, filled when the run starts.
	RunID     string
	Source    string
	StartedAt time.Time

	// Counters – modified via Observe().
	Ticks      int
	Iterations int
	Idle       int
	Running    int
	Ready      int
	Waiting    int
	Finished   int

	sync.Mutex
	onChange func(Progress)
}

// Observe updates counters from snapshot. If an onChange callback has been
// registered it is invoked with a copy of the tracker outside the critical
// section.
func (p *Progress) Observe(snapshot *trace.Snapshot) {
	if p == nil || snapshot == nil {
		return
	}

	p.Lock()

	p.Ticks = snapshot.Tick
	p.Iterations++
	if !snapshot.Executed {
		p.Idle++
	}
	p.Running = 0
	if snapshot.Running != nil {
		p.Running = 1
	}
	p.Ready = len(snapshot.Ready)
	p.Waiting = len(snapshot.Waiting)
	p.Finished = len(snapshot.Finished)

	snapshotCopy := p.copyLocked()
	cb := p.onChange

	p.Unlock()

	if cb != nil {
		cb(snapshotCopy)
	}
}

// Total returns the number of tracked processes
func (p *Progress) Total() int {
	return p.Running + p.Ready + p.Waiting + p.Finished
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copyLocked()
}

func (p *Progress) copyLocked() Progress {
	return Progress{
		RunID:      p.RunID,
		Source:     p.Source,
		StartedAt:  p.StartedAt,
		Ticks:      p.Ticks,
		Iterations: p.Iterations,
		Idle:       p.Idle,
		Running:    p.Running,
		Ready:      p.Ready,
		Waiting:    p.Waiting,
		Finished:   p.Finished,
	}
}

// OnChange registers a callback that is invoked after every Observe. Passing
// nil disables the callback.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both.
func WithNewTracker(ctx context.Context, runID, source string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Source:    source,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// ObserveCtx looks up the tracker in ctx (if any) and feeds it snapshot.
func ObserveCtx(ctx context.Context, snapshot *trace.Snapshot) {
	if tr, ok := FromContext(ctx); ok {
		tr.Observe(snapshot)
	}
}
