// Package otel implements the editlink o11y interfaces on top of
// OpenTelemetry, using the globally registered meter and tracer providers.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/scenekit/editlink/pkg/editlink/o11y"
)

// Provider implements both o11y.MetricsProvider and o11y.TracingProvider.
type Provider struct {
	meter  metric.Meter
	tracer trace.Tracer
}

// NewProvider creates a Provider scoped to the given instrumentation name
// and version, typically the editor application's.
func NewProvider(name, version string) *Provider {
	return &Provider{
		meter:  otel.Meter(name, metric.WithInstrumentationVersion(version)),
		tracer: otel.Tracer(name, trace.WithInstrumentationVersion(version)),
	}
}

func (p *Provider) Counter(name string) o11y.Counter {
	c, _ := p.meter.Int64Counter(name)
	return counter{c}
}

func (p *Provider) Histogram(name string) o11y.Histogram {
	h, _ := p.meter.Float64Histogram(name)
	return histogram{h}
}

func (p *Provider) Gauge(name string) o11y.Gauge {
	g, _ := p.meter.Float64UpDownCounter(name)
	return &gauge{gauge: g}
}

func (p *Provider) StartSpan(ctx context.Context, name string) (context.Context, o11y.Span) {
	ctx, s := p.tracer.Start(ctx, name)
	return ctx, span{s}
}

func toAttributes(labels []o11y.Label) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(labels))
	for i, label := range labels {
		attrs[i] = attribute.String(label.Key, label.Value)
	}
	return attrs
}

type counter struct {
	counter metric.Int64Counter
}

func (c counter) Add(ctx context.Context, value int64, labels ...o11y.Label) {
	c.counter.Add(ctx, value, metric.WithAttributes(toAttributes(labels)...))
}

type histogram struct {
	histogram metric.Float64Histogram
}

func (h histogram) Record(ctx context.Context, value float64, labels ...o11y.Label) {
	h.histogram.Record(ctx, value, metric.WithAttributes(toAttributes(labels)...))
}

// gauge tracks the last value set so that Set stays absolute on top of the
// additive Float64UpDownCounter: each call adds only the difference from
// the previous value.
type gauge struct {
	gauge metric.Float64UpDownCounter
	mu    sync.Mutex
	last  float64
}

func (g *gauge) Set(ctx context.Context, value float64, labels ...o11y.Label) {
	g.mu.Lock()
	delta := value - g.last
	g.last = value
	g.mu.Unlock()

	if delta != 0 {
		g.gauge.Add(ctx, delta, metric.WithAttributes(toAttributes(labels)...))
	}
}

type span struct {
	span trace.Span
}

func (s span) SetAttributes(labels ...o11y.Label) {
	s.span.SetAttributes(toAttributes(labels)...)
}

func (s span) SetStatus(code o11y.SpanStatusCode, description string) {
	var otelCode codes.Code
	switch code {
	case o11y.SpanStatusOK:
		otelCode = codes.Ok
	case o11y.SpanStatusError:
		otelCode = codes.Error
	default:
		otelCode = codes.Unset
	}
	s.span.SetStatus(otelCode, description)
}

func (s span) End() {
	s.span.End()
}
