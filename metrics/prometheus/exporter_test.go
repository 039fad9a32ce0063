package prometheus

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/service/event"
)

func newEvent(eventType event.Type, p *pcb.PCB) *event.Event {
	return event.NewEvent(&event.Context{Tick: 1, PID: p.PID, EventType: eventType}, p)
}

func TestExporter_OnEvent(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewExporter("schedsim", reg, ExporterOptions{})
	require.NoError(t, err)

	p := pcb.New(1, "a", -3, pcb.TypeUser, 2, 0)
	exporter.OnEvent(newEvent(event.TypeDispatch, p))
	exporter.OnEvent(newEvent(event.TypeRun, p))
	exporter.OnEvent(newEvent(event.TypeRun, p))
	exporter.OnEvent(newEvent(event.TypePreempt, p).WithReason(event.ReasonQuantum))
	exporter.OnEvent(newEvent(event.TypePreempt, p).WithReason(event.ReasonPriority))
	exporter.OnEvent(newEvent(event.TypePreempt, p))
	exporter.OnEvent(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(exporter.ticksTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(exporter.eventsTotal.WithLabelValues("preempt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.preemptionsTotal.WithLabelValues("quantum")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.preemptionsTotal.WithLabelValues("unknown")))

	metric := &dto.Metric{}
	require.NoError(t, exporter.dispatchPriority.Write(metric))
	assert.Equal(t, uint64(1), metric.GetHistogram().GetSampleCount())
	assert.Equal(t, -3.0, metric.GetHistogram().GetSampleSum())
}

func TestExporter_OnTick(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewExporter("", reg, ExporterOptions{})
	require.NoError(t, err)

	exporter.OnTick(&trace.Snapshot{
		Running: pcb.New(1, "a", 0, pcb.TypeUser, 2, 0),
		Ready:   []*pcb.PCB{pcb.New(2, "b", 0, pcb.TypeUser, 2, 0), pcb.New(3, "c", 0, pcb.TypeUser, 2, 0)},
	})
	exporter.OnTick(&trace.Snapshot{Ready: []*pcb.PCB{pcb.New(2, "b", 0, pcb.TypeUser, 2, 0)}})

	assert.Equal(t, 2.0, testutil.ToFloat64(exporter.iterationsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(exporter.queueDepth.WithLabelValues("running")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.queueDepth.WithLabelValues("ready")))

	lines, err := Summarize(reg, "schedsim_")
	require.NoError(t, err)
	assert.Contains(t, lines, `schedsim_iterations_total 2`)
	assert.Contains(t, lines, `schedsim_queue_depth{queue="ready"} 1`)
}

func TestExporter_AlreadyRegisteredReuse(t *testing.T) {
	reg := prom.NewRegistry()
	first, err := NewExporter("schedsim", reg, ExporterOptions{})
	require.NoError(t, err)
	second, err := NewExporter("schedsim", reg, ExporterOptions{})
	require.NoError(t, err)

	p := pcb.New(1, "a", 0, pcb.TypeUser, 2, 0)
	first.OnEvent(newEvent(event.TypeFinish, p))
	second.OnEvent(newEvent(event.TypeFinish, p))
	assert.Equal(t, 2.0, testutil.ToFloat64(first.eventsTotal.WithLabelValues("finish")))
}
