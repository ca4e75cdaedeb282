// Package engine implements the Evaluation Engine: it drives an
// ExecutionPlan phase by phase, runs criteria through the Validator Runner
// under a bounded worker pool, aggregates weighted scores, and assembles the
// AutomationReport.
package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/planner"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/project"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/semconv"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/telemetry"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/validator"
)

// Options configures one evaluation run.
type Options struct {
	AutoFix               bool
	IncludeDetails        bool
	EmitFixSuggestions    bool
	Parallel              bool
	MaxParallelCriteria   int // default 8
	RunDeadline           time.Time
	CancellationGrace     time.Duration // default 5s
	EarlyTermination      bool
	EarlySuccessThreshold float64 // default 0.80
	EarlyWeightThreshold  float64 // default 0.70
	ScoreDisabledAsZero   bool
}

func (o Options) withDefaults() Options {
	if o.MaxParallelCriteria <= 0 {
		o.MaxParallelCriteria = 8
	}
	if o.CancellationGrace <= 0 {
		o.CancellationGrace = 5 * time.Second
	}
	if o.EarlySuccessThreshold <= 0 {
		o.EarlySuccessThreshold = 0.80
	}
	if o.EarlyWeightThreshold <= 0 {
		o.EarlyWeightThreshold = 0.70
	}
	return o
}

// CriterionResult pairs a criterion's spec with its terminal validator.Result.
type CriterionResult struct {
	Spec   criteria.Spec
	Result validator.Result
}

// AutomationReport is the terminal output of one evaluation run.
type AutomationReport struct {
	RunID        string
	Success      bool
	NoCriteria   bool
	OverallScore float64
	TierScores   map[string]float64
	Results      []CriterionResult
}

// VendorSet maps a criterion id to the Validator that evaluates it. The
// engine treats an id present in the plan but absent here as a
// validator_error (a registry/wiring bug, not a user error).
type VendorSet map[criteria.ID]validator.Validator

// Engine drives plans to completion.
type Engine struct {
	Registry  *criteria.Registry
	Validators VendorSet
	Runner    *validator.Runner
	Telemetry telemetry.Port
}

// New constructs an Engine. A nil Telemetry falls back to telemetry.NoOp().
func New(reg *criteria.Registry, vendors VendorSet, tel telemetry.Port) *Engine {
	if tel == nil {
		tel = telemetry.NoOp()
	}
	return &Engine{
		Registry:   reg,
		Validators: vendors,
		Runner:     validator.NewRunner(tel),
		Telemetry:  tel,
	}
}

// Run evaluates requested against pc and returns the assembled report. It
// has no error return: per-criterion failures, timeouts and cancellations
// are captured in the report's CriterionResults.
func (e *Engine) Run(ctx context.Context, pc *project.Context, requested []criteria.ID, opts Options) AutomationReport {
	opts = opts.withDefaults()

	ctx, runSpan := e.Telemetry.StartSpan(ctx, semconv.SpanAutomateComplete,
		telemetry.String(semconv.AttrRunID, pc.RunID),
		telemetry.Bool(semconv.AttrParallel, opts.Parallel),
		telemetry.Bool(semconv.AttrAutoFix, opts.AutoFix),
	)
	defer runSpan.End()

	start := time.Now()

	if !opts.RunDeadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, opts.RunDeadline)
		defer cancel()
	}

	plan := planner.Plan(ctx, e.Registry, requested, opts.Parallel, opts.RunDeadline, e.Telemetry)

	report := AutomationReport{
		RunID:      pc.RunID,
		TierScores: map[string]float64{},
	}

	var cancelled, skipOptional bool
	for _, phase := range plan.Phases {
		if phase.Tier == criteria.PriorityOptional && skipOptional {
			// Early termination only ever skips optional-tier phases: no
			// span, no CriterionResult entry for them.
			continue
		}

		if cancelled {
			for _, spec := range phase.Criteria {
				report.Results = append(report.Results, CriterionResult{Spec: spec, Result: validator.Result{ID: spec.ID, Outcome: validator.OutcomeCancelled}})
			}
			continue
		}

		results := e.runPhase(ctx, pc, phase, opts)
		report.Results = append(report.Results, results...)

		if ctx.Err() != nil {
			cancelled = true
		}

		if opts.EarlyTermination && phase.Tier != criteria.PriorityOptional && shouldStop(report.Results, opts) {
			skipOptional = true
		}
	}

	aggregate(&report, opts)
	report.Success = evaluateSuccess(report.Results)

	e.Telemetry.Histogram(semconv.MetricRunDuration).Record(ctx, time.Since(start).Seconds())
	e.Telemetry.Counter(semconv.MetricAutomationsTotal).Add(ctx, 1, telemetry.Bool(semconv.AttrSuccess, report.Success))
	e.Telemetry.Gauge(semconv.MetricScoreOverall).Set(ctx, report.OverallScore)

	return report
}

func (e *Engine) runPhase(ctx context.Context, pc *project.Context, phase planner.Phase, opts Options) []CriterionResult {
	ctx, phaseSpan := e.Telemetry.StartSpan(ctx, semconv.PhaseSpanName(phase.Tier.String()))
	defer phaseSpan.End()

	if !phase.Parallel {
		var out []CriterionResult
		for _, spec := range phase.Criteria {
			// Stop dispatching new validations once the run is cancelled;
			// the remainder are recorded cancelled without being invoked.
			if ctx.Err() != nil {
				out = append(out, CriterionResult{Spec: spec, Result: validator.Result{ID: spec.ID, Outcome: validator.OutcomeCancelled}})
				continue
			}
			out = append(out, e.runOne(ctx, pc, spec, opts))
		}
		return out
	}

	mutating, nonMutating := splitByMutation(phase.Criteria, e.Validators, opts.AutoFix)

	results := make([]CriterionResult, 0, len(phase.Criteria))

	if len(nonMutating) > 0 {
		results = append(results, e.runParallel(ctx, pc, nonMutating, opts)...)
	}

	for _, spec := range mutating {
		if ctx.Err() != nil {
			results = append(results, CriterionResult{Spec: spec, Result: validator.Result{ID: spec.ID, Outcome: validator.OutcomeCancelled}})
			continue
		}
		results = append(results, e.runOne(ctx, pc, spec, opts))
	}

	return results
}

// runParallel fans specs out across a bounded errgroup. Once ctx is
// cancelled, validators that haven't started yet are skipped (recorded
// cancelled) rather than dispatched; validators already running are given
// up to opts.CancellationGrace to finish cooperatively by the Runner itself
// (validator.Runner.invoke), so g.Wait() below always returns within that
// bound and no worker outlives runParallel.
func (e *Engine) runParallel(ctx context.Context, pc *project.Context, specs []criteria.Spec, opts Options) []CriterionResult {
	out := make([]CriterionResult, len(specs))
	for i, spec := range specs {
		out[i] = CriterionResult{Spec: spec, Result: validator.Result{ID: spec.ID, Outcome: validator.OutcomeCancelled}}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxParallelCriteria)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			out[i] = e.runOne(gctx, pc, spec, opts)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *Engine) runOne(ctx context.Context, pc *project.Context, spec criteria.Spec, opts Options) CriterionResult {
	v, ok := e.Validators[spec.ID]
	if !ok {
		return CriterionResult{Spec: spec, Result: validator.Result{ID: spec.ID, Outcome: validator.OutcomeValidatorError, Details: "no validator registered for criterion"}}
	}

	vOpts := validator.Options{
		AutoFix:            opts.AutoFix && v.MutatesProject(),
		IncludeDetails:     opts.IncludeDetails,
		EmitFixSuggestions: opts.EmitFixSuggestions,
		CancellationGrace:  opts.CancellationGrace,
	}
	res := e.Runner.Run(ctx, spec, v, pc, vOpts)
	return CriterionResult{Spec: spec, Result: res}
}

func splitByMutation(specs []criteria.Spec, vendors VendorSet, autoFix bool) (mutating, rest []criteria.Spec) {
	if !autoFix {
		return nil, specs
	}
	for _, s := range specs {
		if v, ok := vendors[s.ID]; ok && v.MutatesProject() {
			mutating = append(mutating, s)
		} else {
			rest = append(rest, s)
		}
	}
	return mutating, rest
}

func aggregate(report *AutomationReport, opts Options) {
	var overallWeighted, overallWeight float64
	tierWeighted := map[string]float64{}
	tierWeight := map[string]float64{}

	for _, cr := range report.Results {
		score := 0.0
		if cr.Result.Outcome == validator.OutcomeOK {
			score = cr.Result.Score
		}
		w := cr.Spec.Weight
		overallWeighted += (score / 100) * w
		overallWeight += w

		tier := cr.Spec.Priority.String()
		tierWeighted[tier] += (score / 100) * w
		tierWeight[tier] += w
	}

	if overallWeight == 0 {
		report.NoCriteria = true
		report.OverallScore = 0
	} else {
		report.OverallScore = 100 * overallWeighted / overallWeight
	}

	for _, tier := range []string{criteria.PriorityCritical.String(), criteria.PriorityImportant.String(), criteria.PriorityOptional.String()} {
		if tierWeight[tier] == 0 {
			report.TierScores[tier] = 0
			continue
		}
		report.TierScores[tier] = 100 * tierWeighted[tier] / tierWeight[tier]
	}
}

func evaluateSuccess(results []CriterionResult) bool {
	sawCritical := false
	for _, cr := range results {
		if cr.Spec.Priority != criteria.PriorityCritical {
			continue
		}
		sawCritical = true
		if cr.Result.Outcome != validator.OutcomeOK || !cr.Result.Passed {
			return false
		}
	}
	return sawCritical
}

func shouldStop(results []CriterionResult, opts Options) bool {
	var weighted, weight float64
	for _, cr := range results {
		if cr.Result.Outcome != validator.OutcomeOK {
			continue
		}
		weighted += (cr.Result.Score / 100) * cr.Spec.Weight
		weight += cr.Spec.Weight
	}
	if weight == 0 {
		return false
	}
	score := weighted / weight
	return score >= opts.EarlySuccessThreshold && weight >= opts.EarlyWeightThreshold
}
