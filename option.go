package schedsim

import (
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/metrics/prometheus"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/runtime/scheduler"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures Service
type Option func(s *Service)

// WithListeners registers event listeners
func WithListeners(listeners ...event.Listener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// WithSinks registers per iteration snapshot sinks
func WithSinks(sinks ...scheduler.Sink) Option {
	return func(s *Service) {
		s.sinks = append(s.sinks, sinks...)
	}
}

// WithPolicy sets the scheduling policy
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithPace sets the delay between iterations
func WithPace(pace time.Duration) Option {
	return func(s *Service) {
		s.pace = pace
	}
}

// WithFast disables pacing
func WithFast() Option {
	return WithPace(0)
}

// WithMetrics feeds every run into the supplied exporter
func WithMetrics(exporter *prometheus.Exporter) Option {
	return func(s *Service) {
		s.metrics = exporter
	}
}

// WithProgress registers a callback invoked with run progress after every iteration
func WithProgress(onChange func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = onChange
	}
}

// WithTraceDAO sets the run trace archive
func WithTraceDAO(traces dao.Service[string, trace.Trace]) Option {
	return func(s *Service) {
		s.traces = traces
	}
}

// WithFs sets the file system used to read process lists
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithFsOptions sets storage options used when reading process lists
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times, the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
