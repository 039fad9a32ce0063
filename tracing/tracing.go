package tracing

import (
	"context"
	"io"
	"os"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/viant/schedsim"

var (
	installOnce sync.Once
	installErr  error
)

// Init installs the stdout exporter writing to outputFile, or to os.Stdout
// when outputFile is empty. Only the first call takes effect; later calls
// leave outputFile untouched.
func Init(serviceName, serviceVersion, outputFile string) error {
	return install(serviceName, serviceVersion, func() (sdktrace.SpanExporter, error) {
		var w io.Writer = os.Stdout
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return nil, err
			}
			exporter, err := stdouttrace.New(stdouttrace.WithWriter(f), stdouttrace.WithPrettyPrint())
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			return exporter, nil
		}
		return stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	})
}

// InitWithExporter installs a custom exporter (OTLP, Jaeger, in-memory for
// tests). A nil exporter is ignored. Only the first call takes effect.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}
	return install(serviceName, serviceVersion, func() (sdktrace.SpanExporter, error) {
		return exporter, nil
	})
}

func install(serviceName, serviceVersion string, newExporter func() (sdktrace.SpanExporter, error)) error {
	installOnce.Do(func() {
		res, err := resource.New(context.Background(), resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		))
		if err != nil {
			installErr = err
			return
		}
		exporter, err := newExporter()
		if err != nil {
			installErr = err
			return
		}
		otel.SetTracerProvider(sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		))
	})
	return installErr
}

// Span wraps an OpenTelemetry span; a nil *Span is a valid no-op.
type Span struct {
	span trace.Span
}

// WithAttributes sets string attributes
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kvs = append(kvs, attribute.String(k, v))
	}
	s.span.SetAttributes(kvs...)
	return s
}

// WithInt sets an integer attribute
func (s *Span) WithInt(key string, value int) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Int(key, value))
	return s
}

// AddEvent records a named point in time on the span
func (s *Span) AddEvent(name string, attrs map[string]string) {
	if s == nil {
		return
	}
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kvs = append(kvs, attribute.String(k, v))
	}
	s.span.AddEvent(name, trace.WithAttributes(kvs...))
}

// SetStatus marks the span failed when err is not nil, ok otherwise
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err == nil {
		s.span.SetStatus(codes.Ok, "")
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// StartSpan starts an internal child span of whatever span ctx carries
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// StartRun starts the span covering one simulation run
func StartRun(ctx context.Context, runID, source string) (context.Context, *Span) {
	ctx, span := StartSpan(ctx, "scheduler.RunAll")
	span.WithAttributes(map[string]string{"run.id": runID, "run.source": source})
	return ctx, span
}

// StartIteration starts the span covering one loop iteration
func StartIteration(ctx context.Context, iteration int) (context.Context, *Span) {
	ctx, span := StartSpan(ctx, "scheduler.Step")
	span.WithInt("iteration", iteration)
	return ctx, span
}

// EndSpan records status and ends the span
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}

// SpanFromContext returns the active span of ctx, if it carries a valid one
func SpanFromContext(ctx context.Context) (*Span, bool) {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil, false
	}
	return &Span{span: span}, true
}

// RunningLabel formats the running pid attribute, "idle" for an empty CPU
func RunningLabel(pid int, idle bool) string {
	if idle {
		return "idle"
	}
	return strconv.Itoa(pid)
}
