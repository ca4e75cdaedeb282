package telemetry

import "context"

// NoOp returns a Port whose every operation is a zero-cost no-op. Used when
// no exporter is configured and as the safe fallback if instrument creation
// ever fails against a real provider.
func NoOp() Port { return noopPort{} }

type noopPort struct{}

func (noopPort) StartSpan(ctx context.Context, name string, attrs ...Attr) (context.Context, Span) {
	return ctx, noopSpan{}
}
func (noopPort) Counter(name string) Counter     { return noopCounter{} }
func (noopPort) Histogram(name string) Histogram { return noopHistogram{} }
func (noopPort) Gauge(name string) Gauge         { return noopGauge{} }

type noopSpan struct{}

func (noopSpan) SetAttribute(attrs ...Attr)              {}
func (noopSpan) AddEvent(name string, attrs ...Attr)     {}
func (noopSpan) SetStatusError(msg string)               {}
func (noopSpan) RecordException(err error, escaped bool) {}
func (noopSpan) End()                                    {}

type noopCounter struct{}

func (noopCounter) Add(ctx context.Context, value float64, attrs ...Attr) {}

type noopHistogram struct{}

func (noopHistogram) Record(ctx context.Context, value float64, attrs ...Attr) {}

type noopGauge struct{}

func (noopGauge) Set(ctx context.Context, value float64, attrs ...Attr) {}
