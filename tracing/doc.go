// Package tracing integrates OpenTelemetry with the simulator so that every
// run and every loop iteration can be observed as a span. All instrumentation
// is kept in a separate package; when no provider is installed spans are
// no-op.
package tracing
