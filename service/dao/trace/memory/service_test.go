package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := New()
	require.NoError(t, srv.Save(ctx, trace.New("r1", "a.json", time.Unix(1, 0), nil)))
	require.NoError(t, srv.Save(ctx, trace.New("r2", "b.json", time.Unix(2, 0), nil)))

	loaded, err := srv.Load(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "b.json", loaded.Source)

	listed, err := srv.List(ctx, dao.NewParameter(criteria.SourceParameter, "a.json"))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "r1", listed[0].ID)

	_, err = srv.Load(ctx, "r3")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}
