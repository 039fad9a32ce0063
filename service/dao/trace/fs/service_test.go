package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
	"github.com/viant/schedsim/service/event"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	base := filepath.Join(t.TempDir(), "traces")
	srv, err := New(base)
	require.NoError(t, err)

	first := trace.New("r1", "a.json", time.Unix(20, 0).UTC(), []*pcb.PCB{pcb.New(1, "a", 0, pcb.TypeUser, 1, 0)})
	first.OnEvent(event.NewEvent(&event.Context{RunID: "r1", Tick: 1, PID: 1, EventType: event.TypeFinish}, nil))
	first.OnTick(&trace.Snapshot{Tick: 1, Executed: true, Finished: []*pcb.PCB{first.Initial[0].Clone()}})
	second := trace.New("r2", "b.json", time.Unix(10, 0).UTC(), nil)

	require.NoError(t, srv.Save(ctx, first))
	require.NoError(t, srv.Save(ctx, second))
	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"r1.json", "r2.json"}, names)
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &trace.Trace{}), dao.ErrInvalidID)

	loaded, err := srv.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Ticks)
	assert.Equal(t, []int{1}, loaded.Last().PIDs())
	assert.Equal(t, event.TypeFinish, loaded.Events[0].Context.EventType)

	all, err := srv.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "r2", all[0].ID)
	assert.Equal(t, "r1", all[1].ID)

	filtered, err := srv.List(ctx, dao.NewParameter(criteria.SourceParameter, "a.json"))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "r1", filtered[0].ID)

	require.NoError(t, srv.Delete(ctx, "r1"))
	_, err = srv.Load(ctx, "r1")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, "r1"), dao.ErrNotFound)
}
