package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/model/trace"
)

func TestProgress_ObserveCtx(t *testing.T) {
	var changes []Progress
	ctx, tracker := WithNewTracker(context.Background(), "run-1", "mem://input.json", func(p Progress) {
		changes = append(changes, p)
	})

	running := pcb.New(1, "a", 0, pcb.TypeUser, 3, 0)
	running.State = pcb.StateRunning
	ObserveCtx(ctx, &trace.Snapshot{Tick: 0, Running: running, Ready: []*pcb.PCB{pcb.New(2, "b", 0, pcb.TypeUser, 1, 0)}})
	ObserveCtx(ctx, &trace.Snapshot{Tick: 1, Executed: true, Finished: []*pcb.PCB{running}, Ready: []*pcb.PCB{pcb.New(2, "b", 0, pcb.TypeUser, 1, 0)}})

	snapshot := tracker.Snapshot()
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Equal(t, 1, snapshot.Ticks)
	assert.Equal(t, 2, snapshot.Iterations)
	assert.Equal(t, 1, snapshot.Idle)
	assert.Equal(t, 0, snapshot.Running)
	assert.Equal(t, 1, snapshot.Ready)
	assert.Equal(t, 1, snapshot.Finished)
	assert.Equal(t, 2, snapshot.Total())
	assert.Len(t, changes, 2)
	assert.Equal(t, 1, changes[0].Running)
}

func TestProgress_NoTracker(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	ObserveCtx(context.Background(), &trace.Snapshot{})

	var p *Progress
	p.Observe(&trace.Snapshot{})
	assert.Equal(t, 0, p.Snapshot().Ticks)
}
