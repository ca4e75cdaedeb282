// Package telemetry implements the Telemetry Port: scoped spans plus
// counter/histogram/gauge instruments with a guaranteed-safe no-op fallback
// when no exporter is configured. Span/metric names must come from
// internal/semconv; this package never invents one.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Attr is a single telemetry attribute. A thin wrapper over attribute.KeyValue
// so callers outside this package never need to import the otel attribute
// package directly.
type Attr = attribute.KeyValue

// String builds a string-valued attribute.
func String(key, value string) Attr { return attribute.String(key, value) }

// Bool builds a bool-valued attribute.
func Bool(key string, value bool) Attr { return attribute.Bool(key, value) }

// Float64 builds a float64-valued attribute.
func Float64(key string, value float64) Attr { return attribute.Float64(key, value) }

// Span is a scoped handle over one operation's tracing span. End must be
// called on every exit path, including panics; callers typically `defer
// span.End()` immediately after acquisition.
type Span interface {
	SetAttribute(attrs ...Attr)
	AddEvent(name string, attrs ...Attr)
	SetStatusError(msg string)
	RecordException(err error, escaped bool)
	End()
}

// Counter is a monotonically increasing instrument.
type Counter interface {
	Add(ctx context.Context, value float64, attrs ...Attr)
}

// Histogram records a distribution of values (e.g. durations in seconds).
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attr)
}

// Gauge records the latest value of a quantity.
type Gauge interface {
	Set(ctx context.Context, value float64, attrs ...Attr)
}

// Port is the Telemetry Port the evaluation engine, materializer, and
// pipeline generator are built against. All methods are safe to call on a
// zero-value-constructed no-op Port; telemetry failures never propagate to
// callers.
type Port interface {
	StartSpan(ctx context.Context, name string, attrs ...Attr) (context.Context, Span)
	Counter(name string) Counter
	Histogram(name string) Histogram
	Gauge(name string) Gauge
}

// otelPort is the real Port backed by an OTel TracerProvider/MeterProvider.
// When exporters is empty the SDK providers still construct real spans and
// metrics, but with no exporter registered nothing leaves the process — this
// matches the "no-op when unconfigured" contract without a separate code path.
type otelPort struct {
	tracer trace.Tracer
	meter  metric.Meter
}

// New constructs a Port from caller-supplied SDK options. Passing no options
// produces an in-process provider that records but never exports.
func New(serviceName string, traceOpts []sdktrace.TracerProviderOption, meterOpts []sdkmetric.Option) Port {
	tp := sdktrace.NewTracerProvider(traceOpts...)
	mp := sdkmetric.NewMeterProvider(meterOpts...)
	return &otelPort{
		tracer: tp.Tracer(serviceName),
		meter:  mp.Meter(serviceName),
	}
}

func (p *otelPort) StartSpan(ctx context.Context, name string, attrs ...Attr) (context.Context, Span) {
	ctx, sp := p.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &otelSpan{span: sp}
}

func (p *otelPort) Counter(name string) Counter {
	inst, err := p.meter.Float64Counter(name)
	if err != nil {
		return NoOp().Counter(name)
	}
	return &otelCounter{c: inst}
}

func (p *otelPort) Histogram(name string) Histogram {
	inst, err := p.meter.Float64Histogram(name)
	if err != nil {
		return NoOp().Histogram(name)
	}
	return &otelHistogram{h: inst}
}

func (p *otelPort) Gauge(name string) Gauge {
	inst, err := p.meter.Float64Gauge(name)
	if err != nil {
		return NoOp().Gauge(name)
	}
	return &otelGauge{g: inst}
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) SetAttribute(attrs ...Attr) { s.span.SetAttributes(attrs...) }

func (s *otelSpan) AddEvent(name string, attrs ...Attr) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

func (s *otelSpan) SetStatusError(msg string) { s.span.SetStatus(codes.Error, msg) }

func (s *otelSpan) RecordException(err error, escaped bool) {
	if err == nil {
		return
	}
	s.span.RecordError(err, trace.WithAttributes(attribute.Bool("exception.escaped", escaped)))
}

func (s *otelSpan) End() { s.span.End() }

type otelCounter struct{ c metric.Float64Counter }

func (c *otelCounter) Add(ctx context.Context, value float64, attrs ...Attr) {
	c.c.Add(ctx, value, metric.WithAttributes(attrs...))
}

type otelHistogram struct{ h metric.Float64Histogram }

func (h *otelHistogram) Record(ctx context.Context, value float64, attrs ...Attr) {
	h.h.Record(ctx, value, metric.WithAttributes(attrs...))
}

type otelGauge struct{ g metric.Float64Gauge }

func (g *otelGauge) Set(ctx context.Context, value float64, attrs ...Attr) {
	g.g.Record(ctx, value, metric.WithAttributes(attrs...))
}
