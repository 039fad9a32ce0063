package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/service/dao"
)

type record struct {
	ID  string
	Tag string
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string, record](func(r *record) string { return r.ID }).
		WithMatcher(func(r *record, parameters []*dao.Parameter) bool {
			return len(parameters) == 0 || parameters[0].Value == r.Tag
		})

	assert.ErrorIs(t, s.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, s.Save(ctx, &record{}), dao.ErrInvalidID)

	require.NoError(t, s.Save(ctx, &record{ID: "b", Tag: "x"}))
	require.NoError(t, s.Save(ctx, &record{ID: "a", Tag: "y"}))
	require.NoError(t, s.Save(ctx, &record{ID: "b", Tag: "y"}))

	loaded, err := s.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "y", loaded.Tag)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*record{{ID: "b", Tag: "y"}, {ID: "a", Tag: "y"}}, all)

	filtered, err := s.List(ctx, dao.NewParameter("Tag", "x"))
	require.NoError(t, err)
	assert.Empty(t, filtered)

	require.NoError(t, s.Delete(ctx, "b"))
	assert.ErrorIs(t, s.Delete(ctx, "b"), dao.ErrNotFound)
	_, err = s.Load(ctx, "b")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}
