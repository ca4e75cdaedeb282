package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/exoskeleton"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/telemetry"
)

func newExoskeletonInitCmd() *cobra.Command {
	var (
		templateID string
		mode       string
	)

	cmd := &cobra.Command{
		Use:   "exoskeleton-init",
		Short: "Materialize the DoD exoskeleton (config, workflows, templates) into the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := criteria.Default()
			if err != nil {
				return err
			}

			m := exoskeleton.New(reg, telemetry.NoOp())
			res, err := m.Materialize(cmd.Context(), cfgRoot, exoskeleton.TemplateID(templateID), exoskeleton.Mode(mode))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "files_created: %v\n", res.FilesCreated)
			fmt.Fprintf(out, "files_overwritten: %v\n", res.FilesOverwritten)
			fmt.Fprintf(out, "files_skipped: %v\n", res.FilesSkipped)
			fmt.Fprintf(out, "workflows_created: %v\n", res.WorkflowsCreated)
			fmt.Fprintf(out, "ai_integrations_enabled: %t\n", res.AIIntegrationsEnabled)
			return nil
		},
	}

	cmd.Flags().StringVar(&templateID, "template", "standard", "standard, enterprise, or ai-native")
	cmd.Flags().StringVar(&mode, "mode", "create", "create, force, or preview")

	return cmd
}
