package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/config"
)

var (
	cfgRoot string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:          "dod",
	Short:        "Definition-of-Done automation engine",
	Long:         `dod evaluates a project's testing, security, devops, code quality, documentation, performance, and compliance criteria and scaffolds the CI scaffolding to enforce them.`,
	SilenceUsage: true,
}

// Execute runs the root command; the caller (cmd/dod/main.go) maps the
// returned error to an exit code via internal/errors.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().StringVar(&cfgRoot, "root", ".", "project root to evaluate")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newAutomateCompleteCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newExoskeletonInitCmd())
	rootCmd.AddCommand(newPipelineGenerateCmd())
	rootCmd.AddCommand(newStatusCmd())
}

// initViper wires DOD_*-prefixed environment variables, matching the
// teacher's initConfig precedence (file < env < flag).
func initViper() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
}
