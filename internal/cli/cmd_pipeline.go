package cli

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	dodErrors "github.com/seanchatmangpt/uvmgr-sub002/internal/errors"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/exoskeleton"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/hosting"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/pipeline"
)

func newPipelineGenerateCmd() *cobra.Command {
	var (
		providerFlag     string
		environmentsFlag []string
		featuresFlag     []string
		templateFlag     string
		outputRoot       string
		modeFlag         string
	)

	cmd := &cobra.Command{
		Use:   "pipeline-generate",
		Short: "Generate a CI manifest that invokes the DoD evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := resolveProvider(cfgRoot, providerFlag)
			if err != nil {
				return err
			}

			features := make([]pipeline.Feature, len(featuresFlag))
			for i, f := range featuresFlag {
				features[i] = pipeline.Feature(f)
			}

			root := outputRoot
			if root == "" {
				root = cfgRoot
			}

			templateID := exoskeleton.TemplateID(templateFlag)
			files, err := pipeline.Generate(pipeline.Request{
				Root:         cfgRoot,
				Provider:     provider,
				Environments: environmentsFlag,
				Features:     features,
				TemplateID:   templateID,
				OutputRoot:   root,
			})
			if err != nil {
				return err
			}

			// Output respects the Exoskeleton Materializer's overwrite
			// semantics: create fails atomically on any conflict, force
			// overwrites per-file, preview touches nothing. Both share the
			// same advisory lock as exoskeleton-init.
			wr, err := exoskeleton.WriteFileSet(cmd.Context(), root, files, exoskeleton.Mode(modeFlag))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "files_created: %v\n", wr.FilesCreated)
			fmt.Fprintf(out, "files_overwritten: %v\n", wr.FilesOverwritten)
			fmt.Fprintf(out, "files_skipped: %v\n", wr.FilesSkipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&providerFlag, "provider", "", "github, gitlab, or azure (default: auto-detect from git remote)")
	cmd.Flags().StringSliceVar(&environmentsFlag, "environments", []string{"development"}, "environments the pipeline should run against")
	cmd.Flags().StringSliceVar(&featuresFlag, "features", nil, "auto_fix, matrix_build, caching, status_checks")
	cmd.Flags().StringVar(&templateFlag, "template", "standard", "exoskeleton template id; influences the rendered manifest's invoked command")
	cmd.Flags().StringVar(&outputRoot, "output-root", "", "defaults to --root")
	cmd.Flags().StringVar(&modeFlag, "mode", "create", "create, force, or preview")

	return cmd
}

// resolveProvider auto-detects the hosting provider from the project's git
// remote when providerFlag is empty, grounded on internal/hosting.DetectProvider.
func resolveProvider(root, providerFlag string) (hosting.ProviderType, error) {
	if providerFlag != "" {
		return hosting.ProviderType(providerFlag), nil
	}

	remote, err := gitRemoteURL(root)
	if err != nil {
		return "", dodErrors.ErrUnsupportedProvider("(undetected)")
	}
	detected := hosting.DetectProvider(remote)
	if detected == hosting.ProviderUnknown {
		return "", dodErrors.ErrUnsupportedProvider("(undetected)")
	}
	return detected, nil
}

// gitRemoteURL reads the origin remote URL, mirroring
// internal/hosting's own getRemoteURL helper.
func gitRemoteURL(root string) (string, error) {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
