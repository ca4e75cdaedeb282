// Package semconv freezes the span, metric, and attribute names the
// evaluation engine, exoskeleton materializer, and pipeline generator emit.
// Downstream dashboards and alerts key off these strings byte-for-byte.
// Every span and metric name is defined here. Three attribute keys are not:
// "criterion_id" on the criterion metrics (internal/validator) and
// "exoskeleton.template_id"/"exoskeleton.mode" on the materializer span
// (internal/exoskeleton) are written as literals at their call sites.
package semconv

// Span names.
const (
	SpanAutomateComplete  = "dod.automate.complete"
	SpanValidate          = "dod.validate"
	SpanExoskeletonInit   = "dod.exoskeleton.init"
	SpanPipelineGenerate  = "dod.pipeline.generate"
	SpanPhasePrefix       = "dod.phase."
	SpanValidateCriterion = "dod.validate."
)

// PhaseSpanName returns the span name for a tier's phase, e.g. "dod.phase.critical".
func PhaseSpanName(tier string) string {
	return SpanPhasePrefix + tier
}

// CriterionSpanName returns the span name for a single criterion's validator
// invocation, e.g. "dod.validate.testing".
func CriterionSpanName(criterionID string) string {
	return SpanValidateCriterion + criterionID
}

// Metric names.
const (
	MetricAutomationsTotal   = "dod.automations.total"
	MetricRunDuration        = "dod.run.duration"
	MetricCriterionResults   = "dod.criterion.results"
	MetricCriterionDuration  = "dod.criterion.duration"
	MetricScoreOverall       = "dod.score.overall"
	MetricInputErrors        = "dod.input_errors"
	MetricPlannerUnknownCrit = "dod.planner.unknown_criterion"
)

// Attribute keys.
const (
	AttrRunID             = "dod.run_id"
	AttrEnvironment       = "dod.environment"
	AttrAutoFix           = "dod.auto_fix"
	AttrParallel          = "dod.parallel"
	AttrCriteriaRequested = "dod.criteria.requested"

	AttrCriterionID       = "criterion.id"
	AttrCriterionWeight   = "criterion.weight"
	AttrCriterionPriority = "criterion.priority"
	AttrCriterionOutcome  = "criterion.outcome"
	AttrCriterionPassed   = "criterion.passed"
	AttrCriterionScore    = "criterion.score"

	AttrOutcome = "outcome"
	AttrPassed  = "passed"
	AttrSuccess = "success"
)
