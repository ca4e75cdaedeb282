// Package planner implements the Execution Planner: it turns a requested
// criterion subset into an ExecutionPlan of phases honoring invariant P1
// (critical before important before optional; within a tier, higher weight
// first, then id).
package planner

import (
	"context"
	"sort"
	"time"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/semconv"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/telemetry"
)

// Phase is one group of criteria the engine runs together: serially, in
// order, if Parallel is false, or concurrently up to the engine's worker
// limit if Parallel is true.
type Phase struct {
	Tier     criteria.Priority
	Parallel bool
	Criteria []criteria.Spec
	Deadline time.Time
}

// ExecutionPlan is the planner's sole output, ready for the Evaluation
// Engine to drive phase by phase.
type ExecutionPlan struct {
	Phases  []Phase
	Unknown []criteria.ID
}

// Plan builds an ExecutionPlan for the requested ids against reg, per spec
// rules 1-5. runDeadline bounds every per-criterion deadline; a zero value
// means "no global deadline" and each criterion gets its own default_timeout.
func Plan(ctx context.Context, reg *criteria.Registry, requested []criteria.ID, parallel bool, runDeadline time.Time, tel telemetry.Port) ExecutionPlan {
	if tel == nil {
		tel = telemetry.NoOp()
	}

	kept, unknown := reg.Filter(requested)
	if len(unknown) > 0 {
		tel.Counter(semconv.MetricPlannerUnknownCrit).Add(ctx, float64(len(unknown)))
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.ID < b.ID
	})

	if !parallel {
		return ExecutionPlan{
			Phases:  serialPhase(kept, runDeadline),
			Unknown: unknown,
		}
	}

	return ExecutionPlan{
		Phases:  parallelPhases(kept, runDeadline),
		Unknown: unknown,
	}
}

func serialPhase(specs []criteria.Spec, runDeadline time.Time) []Phase {
	if len(specs) == 0 {
		return nil
	}
	return []Phase{{
		Tier:     specs[0].Priority,
		Parallel: false,
		Criteria: specs,
		Deadline: phaseDeadline(specs, runDeadline),
	}}
}

func parallelPhases(specs []criteria.Spec, runDeadline time.Time) []Phase {
	byTier := map[criteria.Priority][]criteria.Spec{}
	for _, s := range specs {
		byTier[s.Priority] = append(byTier[s.Priority], s)
	}

	var phases []Phase
	for _, tier := range []criteria.Priority{criteria.PriorityCritical, criteria.PriorityImportant, criteria.PriorityOptional} {
		group := byTier[tier]
		if len(group) == 0 {
			continue
		}
		phases = append(phases, Phase{
			Tier:     tier,
			Parallel: true,
			Criteria: group,
			Deadline: phaseDeadline(group, runDeadline),
		})
	}
	return phases
}

// phaseDeadline returns the earliest per-criterion deadline within the
// phase. The engine does not read Phase.Deadline; each criterion's deadline
// comes from the run context and its own default_timeout in validator.Runner.
func phaseDeadline(specs []criteria.Spec, runDeadline time.Time) time.Time {
	if runDeadline.IsZero() {
		return time.Time{}
	}
	earliest := runDeadline
	for _, s := range specs {
		candidate := time.Now().Add(s.DefaultTimeout)
		if candidate.Before(earliest) {
			earliest = candidate
		}
	}
	return earliest
}
