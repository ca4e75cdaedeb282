// Package validator defines the Validator interface and the Runner that
// invokes one validator against a ProjectContext under a deadline, converting
// any panic/error/timeout into a CriterionResult rather than propagating it.
package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/project"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/semconv"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/telemetry"
)

// Outcome is the terminal state of a single criterion's evaluation.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeValidatorError Outcome = "validator_error"
	OutcomeTimeout        Outcome = "timeout"
	OutcomeCancelled      Outcome = "cancelled"
	OutcomeSkipped        Outcome = "skipped"
)

// Options controls how a validator should behave for one invocation.
type Options struct {
	AutoFix            bool
	IncludeDetails     bool
	EmitFixSuggestions bool
	Deadline           time.Time
	// CancellationGrace bounds how long invoke waits for a validator to
	// terminate cooperatively once its context is done, before the run is
	// recorded cancelled/timed out outright.
	CancellationGrace time.Duration
}

// Result is the outcome of one criterion's validation. Invariant R1: if
// Outcome != OutcomeOK then Passed is false and Score is 0.
type Result struct {
	ID             criteria.ID
	Score          float64
	Passed         bool
	Duration       time.Duration
	Details        string
	FixSuggestions []string
	Outcome        Outcome
}

// Validator is the external-tool adapter the runner invokes. MutatesProject
// reports whether Validate may write to the project (only true under
// auto_fix); the engine serializes mutating validators within a phase.
type Validator interface {
	Validate(ctx context.Context, pc *project.Context, opts Options) (Result, error)
	MutatesProject() bool
}

// Runner invokes a single validator under the Telemetry Port, enforcing the
// per-criterion deadline and converting panics/errors into Results so the
// outer evaluation is never aborted by one criterion.
type Runner struct {
	Telemetry telemetry.Port
}

// NewRunner constructs a Runner. A nil Telemetry falls back to telemetry.NoOp().
func NewRunner(tel telemetry.Port) *Runner {
	if tel == nil {
		tel = telemetry.NoOp()
	}
	return &Runner{Telemetry: tel}
}

// Run invokes v against pc, enforcing opts.Deadline, and returns a Result
// that always satisfies invariant R1.
func (r *Runner) Run(ctx context.Context, spec criteria.Spec, v Validator, pc *project.Context, opts Options) Result {
	ctx, span := r.Telemetry.StartSpan(ctx, semconv.CriterionSpanName(string(spec.ID)),
		telemetry.String(semconv.AttrCriterionID, string(spec.ID)),
		telemetry.Float64(semconv.AttrCriterionWeight, spec.Weight),
		telemetry.String(semconv.AttrCriterionPriority, spec.Priority.String()),
	)
	defer span.End()

	start := time.Now()

	deadline := opts.Deadline
	if deadline.IsZero() {
		deadline = start.Add(spec.DefaultTimeout)
	}
	runCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	result := r.invoke(runCtx, span, spec, v, pc, opts)
	result.Duration = time.Since(start)

	span.SetAttribute(
		telemetry.String(semconv.AttrCriterionOutcome, string(result.Outcome)),
		telemetry.Bool(semconv.AttrCriterionPassed, result.Passed),
		telemetry.Float64(semconv.AttrCriterionScore, result.Score),
	)
	if result.Outcome != OutcomeOK {
		span.SetStatusError(string(result.Outcome))
	}

	r.Telemetry.Histogram(semconv.MetricCriterionDuration).Record(ctx, result.Duration.Seconds(),
		telemetry.String("criterion_id", string(spec.ID)))
	r.Telemetry.Counter(semconv.MetricCriterionResults).Add(ctx, 1,
		telemetry.String("criterion_id", string(spec.ID)),
		telemetry.String(semconv.AttrOutcome, string(result.Outcome)),
		telemetry.Bool(semconv.AttrPassed, result.Passed))

	return result
}

// invoke runs the validator, recovering from panics and mapping timeouts,
// so the returned Result always satisfies R1 when Outcome != OutcomeOK.
func (r *Runner) invoke(ctx context.Context, span telemetry.Span, spec criteria.Spec, v Validator, pc *project.Context, opts Options) (result Result) {
	done := make(chan Result, 1)
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				errCh <- fmt.Errorf("validator %s panicked: %v", spec.ID, rec)
			}
		}()
		res, err := v.Validate(ctx, pc, opts)
		if err != nil {
			errCh <- err
			return
		}
		done <- res
	}()

	select {
	case <-ctx.Done():
		return r.awaitGrace(ctx, span, done, errCh, spec, opts.CancellationGrace)
	case err := <-errCh:
		span.RecordException(err, false)
		return Result{ID: spec.ID, Outcome: OutcomeValidatorError, Details: err.Error()}
	case res := <-done:
		res.ID = spec.ID
		return res
	}
}

// awaitGrace is reached once ctx is done. The validator's own goroutine
// keeps running against the same ctx, so a cooperative implementation (one
// that itself watches ctx.Done, as the Runner expects) finishes promptly;
// awaitGrace gives it up to grace to do so before declaring the criterion
// cancelled (external cancellation) or timed out (deadline exceeded).
func (r *Runner) awaitGrace(ctx context.Context, span telemetry.Span, done chan Result, errCh chan error, spec criteria.Spec, grace time.Duration) Result {
	if grace <= 0 {
		if errors.Is(ctx.Err(), context.Canceled) {
			return Result{ID: spec.ID, Outcome: OutcomeCancelled}
		}
		return Result{ID: spec.ID, Outcome: OutcomeTimeout}
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case res := <-done:
		res.ID = spec.ID
		return res
	case err := <-errCh:
		span.RecordException(err, false)
		return Result{ID: spec.ID, Outcome: OutcomeValidatorError, Details: err.Error()}
	case <-timer.C:
		if errors.Is(ctx.Err(), context.Canceled) {
			return Result{ID: spec.ID, Outcome: OutcomeCancelled}
		}
		return Result{ID: spec.ID, Outcome: OutcomeTimeout}
	}
}
