package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/config"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	dodErrors "github.com/seanchatmangpt/uvmgr-sub002/internal/errors"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/engine"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/project"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/telemetry"
)

// ErrReportFailed signals "report.success == false" to ExitCode's mapping,
// distinct from an internal/errors.DoDError (which carries its own exit
// code, typically 2 for internal errors).
var ErrReportFailed = errors.New("automation report did not succeed")

var errExit1 = ErrReportFailed

func newAutomateCompleteCmd() *cobra.Command {
	var (
		criteriaFlag []string
		autoFix      bool
		parallel     bool
		environment  string
	)

	cmd := &cobra.Command{
		Use:   "automate-complete",
		Short: "Run the full Definition-of-Done evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runEvaluation(cmd.Context(), cfgRoot, environment, criteriaFlag, engineOptions{
				autoFix:        autoFix,
				parallel:       parallel,
				includeDetails: false,
			})
			if err != nil {
				return err
			}
			RenderReport(cmd.OutOrStdout(), report)
			if !report.Success {
				cmd.SilenceErrors = true
				return errExit1
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&criteriaFlag, "criteria", nil, "criterion ids to evaluate (default: all registered)")
	cmd.Flags().BoolVar(&autoFix, "auto-fix", false, "allow mutating validators to apply fixes")
	cmd.Flags().BoolVar(&parallel, "parallel", true, "run phases with criteria in parallel")
	cmd.Flags().StringVar(&environment, "environment", string(project.EnvironmentDevelopment), "development, staging, or production")

	return cmd
}

type engineOptions struct {
	autoFix            bool
	parallel           bool
	includeDetails     bool
	emitFixSuggestions bool
}

// runEvaluation assembles the ProjectContext, RuntimeConfig, and Engine, and
// drives one evaluation run. Shared by automate-complete and validate per
// the Open Question decision that both use the same engine.Run core.
func runEvaluation(ctx context.Context, root, environment string, requestedIDs []string, opts engineOptions) (engine.AutomationReport, error) {
	pc, err := project.New(ctx, root, project.Environment(environment))
	if err != nil {
		return engine.AutomationReport{}, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return engine.AutomationReport{}, err
	}

	reg, err := config.ApplyToRegistry(cfg)
	if err != nil {
		return engine.AutomationReport{}, err
	}

	ids, err := resolveCriteriaIDs(reg, requestedIDs)
	if err != nil {
		return engine.AutomationReport{}, err
	}

	tel := telemetry.NoOp()
	e := engine.New(reg, builtinVendorSet(), tel)

	runDeadline := time.Time{}
	report := e.Run(ctx, pc, ids, engine.Options{
		AutoFix:               opts.autoFix,
		IncludeDetails:        opts.includeDetails,
		EmitFixSuggestions:    opts.emitFixSuggestions,
		Parallel:              opts.parallel,
		MaxParallelCriteria:   cfg.MaxParallelCriteria,
		RunDeadline:           runDeadline,
		CancellationGrace:     time.Duration(cfg.CancellationGrace) * time.Second,
		EarlyTermination:      cfg.EarlyTermination,
		EarlySuccessThreshold: cfg.EarlySuccessThreshold,
		EarlyWeightThreshold:  cfg.EarlyWeightThreshold,
		ScoreDisabledAsZero:   cfg.ScoreDisabledAsZero,
	})

	return report, nil
}

// resolveCriteriaIDs validates explicitly requested criterion ids against
// reg: per the CLI contract, an unrecognized id requested by the caller is
// a pre-validation error (exit 2), not silently dropped the way the
// planner drops ids it discovers mid-run.
func resolveCriteriaIDs(reg *criteria.Registry, requested []string) ([]criteria.ID, error) {
	if len(requested) == 0 {
		all := reg.All()
		ids := make([]criteria.ID, len(all))
		for i, s := range all {
			ids[i] = s.ID
		}
		return ids, nil
	}

	ids := make([]criteria.ID, len(requested))
	for i, r := range requested {
		id := criteria.ID(r)
		if _, ok := reg.Get(id); !ok {
			return nil, dodErrors.ErrUnknownCriterion(r)
		}
		ids[i] = id
	}
	return ids, nil
}
