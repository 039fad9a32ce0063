package trace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/service/event"
)

func withState(pid int, state pcb.State) *pcb.PCB {
	ret := pcb.New(pid, "p", 0, pcb.TypeUser, 3, 0)
	ret.State = state
	return ret
}

func TestSnapshot_Sorted(t *testing.T) {
	snapshot := &Snapshot{
		Running:  withState(4, pcb.StateRunning),
		Ready:    []*pcb.PCB{withState(3, pcb.StateReady), withState(1, pcb.StateReady)},
		Waiting:  []*pcb.PCB{withState(2, pcb.StateWaiting)},
		Finished: []*pcb.PCB{withState(6, pcb.StateFinished), withState(5, pcb.StateFinished)},
	}
	var pids []int
	for _, item := range snapshot.Sorted() {
		pids = append(pids, item.PID)
	}
	assert.Equal(t, []int{4, 3, 1, 2, 6, 5}, pids)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, snapshot.PIDs())
	assert.Equal(t, pcb.StateWaiting, snapshot.Lookup(2).State)
	assert.Nil(t, snapshot.Lookup(9))
	assert.False(t, snapshot.Idle())
	assert.True(t, (&Snapshot{}).Idle())
}

func TestTrace_Stats(t *testing.T) {
	initial := []*pcb.PCB{pcb.New(1, "a", 0, pcb.TypeUser, 2, 0), pcb.New(2, "b", 0, pcb.TypeUser, 1, 0)}
	aTrace := New("run", "mem://list.json", time.Unix(0, 0), initial)
	initial[0].Name = "mutated"
	assert.Equal(t, "a", aTrace.Initial[0].Name)

	emit := func(tick, pid int, eventType event.Type) {
		aTrace.OnEvent(event.NewEvent(&event.Context{RunID: "run", Tick: tick, PID: pid, EventType: eventType}, nil))
	}
	emit(0, 1, event.TypeDispatch)
	aTrace.OnTick(&Snapshot{Tick: 0, Running: withState(1, pcb.StateRunning), Ready: []*pcb.PCB{withState(2, pcb.StateReady)}})
	emit(0, 1, event.TypeAcquire)
	emit(1, 1, event.TypeRun)
	emit(1, 2, event.TypeBlock)
	aTrace.OnTick(&Snapshot{Tick: 1, Executed: true, Running: withState(1, pcb.StateRunning), Waiting: []*pcb.PCB{withState(2, pcb.StateWaiting)}})
	emit(2, 1, event.TypeFinish)
	aTrace.OnTick(&Snapshot{Tick: 2, Executed: true, Ready: []*pcb.PCB{withState(2, pcb.StateReady)}, Finished: []*pcb.PCB{withState(1, pcb.StateFinished)}})
	aTrace.Finish(time.Unix(10, 0))

	assert.Equal(t, 2, aTrace.Ticks)
	assert.Equal(t, 2, aTrace.Last().Tick)
	assert.NotNil(t, aTrace.FinishedAt)
	assert.Len(t, aTrace.EventsOf(event.TypeRun), 1)
	assert.Len(t, aTrace.EventsOf(event.TypeBlock, 1), 0)

	stats := aTrace.Stats()
	assert.Equal(t, []*Stats{
		{PID: 1, Name: "a", CompletedAt: 2, Dispatches: 1, Acquired: true},
		{PID: 2, Name: "b", CompletedAt: -1, ReadyTicks: 1, WaitingTicks: 1, Blocks: 1},
	}, stats)
}
