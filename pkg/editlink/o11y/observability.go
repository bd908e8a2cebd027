// Package o11y defines the narrow metrics and tracing interfaces editlink
// instruments against. Implementations live elsewhere (see the otel
// subpackage); keeping the interfaces here lets the client package stay free
// of any particular telemetry SDK.
package o11y

import "context"

// MetricsProvider hands out metric instruments by name.
type MetricsProvider interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
	Gauge(name string) Gauge
}

// TracingProvider starts spans for message dispatch.
type TracingProvider interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Counter is a monotonically increasing metric.
type Counter interface {
	Add(ctx context.Context, value int64, labels ...Label)
}

// Histogram records a distribution of values.
type Histogram interface {
	Record(ctx context.Context, value float64, labels ...Label)
}

// Gauge tracks a value that can move in both directions.
type Gauge interface {
	Set(ctx context.Context, value float64, labels ...Label)
}

// Span is one unit of traced work.
type Span interface {
	SetAttributes(labels ...Label)
	SetStatus(code SpanStatusCode, description string)
	End()
}

// Label is a key-value pair attached to metrics and spans.
type Label struct {
	Key   string
	Value string
}

// SpanStatusCode mirrors the usual ok/error span outcome.
type SpanStatusCode int

const (
	SpanStatusUnset SpanStatusCode = iota
	SpanStatusOK
	SpanStatusError
)
