package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpPortIsSafe(t *testing.T) {
	port := NoOp()

	ctx, span := port.StartSpan(context.Background(), "dod.validate.testing", String("criterion.id", "testing"))
	assert.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		span.SetAttribute(Bool("criterion.passed", true))
		span.AddEvent("started")
		span.SetStatusError("boom")
		span.RecordException(errors.New("boom"), false)
		span.End()
	})

	assert.NotPanics(t, func() {
		port.Counter("dod.criterion.results").Add(ctx, 1, String("outcome", "ok"))
		port.Histogram("dod.criterion.duration").Record(ctx, 1.5)
		port.Gauge("dod.score.overall").Set(ctx, 82.0)
	})
}

func TestNewPortRecordsWithoutExporter(t *testing.T) {
	port := New("dod-test", nil, nil)
	ctx, span := port.StartSpan(context.Background(), "dod.automate.complete", String("dod.run_id", "run-1"))
	span.SetAttribute(Float64("criterion.score", 90.5))
	span.End()

	assert.NotPanics(t, func() {
		port.Counter("dod.automations.total").Add(ctx, 1, Bool("success", true))
	})
}
