package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/config"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/project"
)

func newStatusCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print a health summary of the project's DoD configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			pc, err := project.New(cmd.Context(), cfgRoot, project.EnvironmentDevelopment)
			if err != nil {
				return err
			}

			cfg, err := config.Load(cfgRoot)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "root: %s\n", pc.Root)
			fmt.Fprintf(out, "run_id: %s\n", pc.RunID)
			fmt.Fprintf(out, "template: %s\n", cfg.Template)
			fmt.Fprintf(out, "detected: %v\n", pc.DetectedLanguageHints)

			if detailed {
				fmt.Fprintf(out, "git_head: %s\n", pc.Git.HeadRef)
				fmt.Fprintf(out, "git_dirty: %t\n", pc.Git.Dirty)
				fmt.Fprintf(out, "max_parallel_criteria: %d\n", cfg.MaxParallelCriteria)
				fmt.Fprintf(out, "early_termination: %t\n", cfg.EarlyTermination)
			}

			// status is always informational; exit 0 regardless of project health.
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "include git and engine configuration detail")

	return cmd
}
