package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("schedsim", "0.0.1", fname))

	ctx, run := StartRun(context.Background(), "r1", "mock_pcb.json")
	current, ok := SpanFromContext(ctx)
	assert.True(t, ok)
	assert.NotNil(t, current)

	_, step := StartIteration(ctx, 3)
	step.WithAttributes(map[string]string{"running": RunningLabel(2, false)})
	step.AddEvent("dispatch", map[string]string{"pid": "2"})
	EndSpan(step, nil)
	EndSpan(run, errors.New("cancelled"))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "scheduler.RunAll")
	assert.Contains(t, text, "scheduler.Step")
	assert.Contains(t, text, "cancelled")

	// only the first install opens its output
	other := filepath.Join(t.TempDir(), "other.txt")
	require.NoError(t, Init("schedsim", "0.0.1", other))
	assert.NoFileExists(t, other)
}

func TestSpan_NilSafe(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	assert.Nil(t, span.WithInt("k", 1))
	span.AddEvent("x", nil)
	span.SetStatus(nil)
	EndSpan(nil, nil)

	_, ok := SpanFromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "idle", RunningLabel(0, true))
}
