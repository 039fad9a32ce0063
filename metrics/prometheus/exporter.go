package prometheus

import (
	"errors"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/service/event"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	PriorityBuckets []float64
}

// Exporter turns scheduling events and snapshots into Prometheus collectors.
// OnEvent is an event.Listener, OnTick a scheduler sink.
type Exporter struct {
	eventsTotal      *prom.CounterVec
	preemptionsTotal *prom.CounterVec
	ticksTotal       prom.Counter
	iterationsTotal  prom.Counter
	queueDepth       *prom.GaugeVec
	dispatchPriority prom.Histogram
}

// NewExporter creates and registers the scheduler collectors.
func NewExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*Exporter, error) {
	if namespace == "" {
		namespace = "schedsim"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.PriorityBuckets
	if len(buckets) == 0 {
		buckets = prom.LinearBuckets(-20, 5, 8)
	}

	eventsVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "Total number of scheduling events by type.",
	}, []string{"event"})
	preemptionsVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "preemptions_total",
		Help:      "Total number of preemptions by reason.",
	}, []string{"reason"})
	ticks := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "ticks_total",
		Help:      "Total number of productive ticks.",
	})
	iterations := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "iterations_total",
		Help:      "Total number of scheduler loop iterations.",
	})
	depthVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Number of processes per container after the last iteration.",
	}, []string{"queue"})
	priority := prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "dispatch_priority",
		Help:      "Priority of processes at dispatch time.",
		Buckets:   buckets,
	})

	var err error
	if eventsVec, err = registerCollector(reg, eventsVec); err != nil {
		return nil, err
	}
	if preemptionsVec, err = registerCollector(reg, preemptionsVec); err != nil {
		return nil, err
	}
	if ticks, err = registerCollector(reg, ticks); err != nil {
		return nil, err
	}
	if iterations, err = registerCollector(reg, iterations); err != nil {
		return nil, err
	}
	if depthVec, err = registerCollector(reg, depthVec); err != nil {
		return nil, err
	}
	if priority, err = registerCollector(reg, priority); err != nil {
		return nil, err
	}
	return &Exporter{
		eventsTotal:      eventsVec,
		preemptionsTotal: preemptionsVec,
		ticksTotal:       ticks,
		iterationsTotal:  iterations,
		queueDepth:       depthVec,
		dispatchPriority: priority,
	}, nil
}

// OnEvent records a scheduling event.
func (m *Exporter) OnEvent(e *event.Event) {
	if m == nil || e == nil || e.Context == nil {
		return
	}
	m.eventsTotal.WithLabelValues(string(e.Context.EventType)).Inc()
	switch e.Context.EventType {
	case event.TypeRun:
		m.ticksTotal.Inc()
	case event.TypePreempt:
		m.preemptionsTotal.WithLabelValues(normalizeLabel(e.Reason(), "unknown")).Inc()
	case event.TypeDispatch:
		if e.Data != nil {
			m.dispatchPriority.Observe(float64(e.Data.Priority))
		}
	}
}

// OnTick records container sizes after a loop iteration.
func (m *Exporter) OnTick(snapshot *trace.Snapshot) {
	if m == nil || snapshot == nil {
		return
	}
	m.iterationsTotal.Inc()
	running := 0
	if snapshot.Running != nil {
		running = 1
	}
	m.queueDepth.WithLabelValues("running").Set(float64(running))
	m.queueDepth.WithLabelValues("ready").Set(float64(len(snapshot.Ready)))
	m.queueDepth.WithLabelValues("waiting").Set(float64(len(snapshot.Waiting)))
	m.queueDepth.WithLabelValues("finished").Set(float64(len(snapshot.Finished)))
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}
	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}
	return collector, err
}
