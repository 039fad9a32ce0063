package schedsim

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/internal/idgen"
	"github.com/viant/schedsim/metrics/prometheus"
	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/runtime/scheduler"
	"github.com/viant/schedsim/service/dao"
	pcbdao "github.com/viant/schedsim/service/dao/pcb"
	tfs "github.com/viant/schedsim/service/dao/trace/fs"
	tmemory "github.com/viant/schedsim/service/dao/trace/memory"
	"github.com/viant/schedsim/service/event"
)

// Service runs simulations and archives their traces
type Service struct {
	fs         afs.Service
	fsOptions  []storage.Option
	loader     *pcbdao.Service
	traces     dao.Service[string, trace.Trace]
	policy     *policy.Policy
	pace       time.Duration
	listeners  []event.Listener
	sinks      []scheduler.Sink
	metrics    *prometheus.Exporter
	onProgress func(progress.Progress)
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	s.loader = pcbdao.New(s.fs, s.fsOptions...)
	if s.traces == nil {
		s.traces = tmemory.New()
	}
	if s.policy == nil {
		s.policy = policy.Default()
	}
}

// Load reads a process list document
func (s *Service) Load(ctx context.Context, URL string) ([]*pcb.PCB, error) {
	return s.loader.Load(ctx, URL)
}

// Run simulates list to completion and archives the trace
func (s *Service) Run(ctx context.Context, list []*pcb.PCB) (*trace.Trace, error) {
	return s.RunSource(ctx, "", list)
}

// RunURL loads the process list at URL and simulates it
func (s *Service) RunURL(ctx context.Context, URL string) (*trace.Trace, error) {
	list, err := s.loader.Load(ctx, URL)
	if err != nil {
		return nil, err
	}
	return s.RunSource(ctx, URL, list)
}

// Traces returns the run trace archive
func (s *Service) Traces() dao.Service[string, trace.Trace] {
	return s.traces
}

// RunSource simulates list, recording source as its origin in the trace
func (s *Service) RunSource(ctx context.Context, source string, list []*pcb.PCB) (*trace.Trace, error) {
	runID := idgen.New()
	listeners := append([]event.Listener{}, s.listeners...)
	sinks := append([]scheduler.Sink{}, s.sinks...)
	if s.metrics != nil {
		listeners = append(listeners, s.metrics.OnEvent)
		sinks = append(sinks, s.metrics)
	}
	engine, err := scheduler.New(list,
		scheduler.WithRunID(runID),
		scheduler.WithSource(source),
		scheduler.WithPolicy(s.policy),
		scheduler.WithPace(s.pace),
		scheduler.WithListeners(listeners...),
		scheduler.WithSinks(sinks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	if s.onProgress != nil {
		ctx, _ = progress.WithNewTracker(ctx, runID, source, s.onProgress)
	}
	aTrace, runErr := engine.RunAll(ctx)
	if aTrace != nil {
		if err = s.traces.Save(ctx, aTrace); err != nil {
			log.Printf("failed to archive trace %v: %v", aTrace.ID, err)
		}
	}
	return aTrace, runErr
}

// New creates a simulation service
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}

// NewFromConfig creates a service from cfg; options are applied after the config
func NewFromConfig(cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pace, err := cfg.PaceDuration()
	if err != nil {
		return nil, err
	}
	base := []Option{WithPace(pace), WithPolicy(cfg.Policy)}
	if cfg.TraceDir != "" {
		traces, err := tfs.New(cfg.TraceDir)
		if err != nil {
			return nil, err
		}
		base = append(base, WithTraceDAO(traces))
	}
	if cfg.Tracing != nil {
		base = append(base, WithTracing(cfg.Tracing.Service, cfg.Tracing.Version, cfg.Tracing.OutputFile))
	}
	return New(append(base, options...)...), nil
}
