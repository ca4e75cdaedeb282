// Package config builds the RuntimeConfig the CLI passes down to the
// evaluation engine, layering built-in defaults, an on-disk config.yaml,
// and environment variables, in that precedence order.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	dodErrors "github.com/seanchatmangpt/uvmgr-sub002/internal/errors"
)

// ConfigFileName is the on-disk config file name under .uvmgr/exoskeleton/.
const ConfigFileName = "config.yaml"

// EnvPrefix is the prefix viper requires on every DOD_* environment
// variable it auto-binds.
const EnvPrefix = "DOD"

// CriterionOverride is the on-disk view of one criterion's tunable fields,
// per §6.2's informal config.yaml schema.
type CriterionOverride struct {
	Weight    float64 `yaml:"weight"`
	Priority  string  `yaml:"priority"`
	Threshold int     `yaml:"threshold"`
}

// fileConfig is the raw shape of .uvmgr/exoskeleton/config.yaml.
type fileConfig struct {
	Version  string                            `yaml:"version"`
	Template string                             `yaml:"template"`
	Criteria map[string]CriterionOverride `yaml:"criteria"`
}

// RuntimeConfig is the fully resolved configuration for one CLI invocation.
// It is constructed once at the CLI boundary and passed down; there is no
// ambient package-level singleton.
type RuntimeConfig struct {
	Template              string
	MaxParallelCriteria   int
	CancellationGrace     int // seconds
	EarlyTermination      bool
	EarlySuccessThreshold float64
	EarlyWeightThreshold  float64
	ScoreDisabledAsZero   bool
	CriteriaWeights       map[criteria.ID]float64 // empty unless config.yaml overrides weights
}

// Defaults returns the built-in configuration, matching the teacher's
// config_defaults.go of hardcoded fallback values.
func Defaults() RuntimeConfig {
	return RuntimeConfig{
		Template:              "standard",
		MaxParallelCriteria:   8,
		CancellationGrace:     5,
		EarlyTermination:      false,
		EarlySuccessThreshold: 0.80,
		EarlyWeightThreshold:  0.70,
		ScoreDisabledAsZero:   false,
	}
}

// Load resolves a RuntimeConfig for projectRoot: defaults, then
// .uvmgr/exoskeleton/config.yaml if present, then DOD_*-prefixed
// environment variables. No CLI flag overrides a RuntimeConfig field; the
// CLI's flags feed engine.Options directly.
func Load(projectRoot string) (RuntimeConfig, error) {
	cfg := Defaults()

	path := filepath.Join(projectRoot, ".uvmgr", "exoskeleton", ConfigFileName)
	if data, err := os.ReadFile(path); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return RuntimeConfig{}, dodErrors.ErrConfigInvalid(ConfigFileName, err.Error())
		}
		if fc.Template != "" {
			cfg.Template = fc.Template
		}
		if len(fc.Criteria) > 0 {
			weights := make(map[criteria.ID]float64, len(fc.Criteria))
			for id, override := range fc.Criteria {
				weights[criteria.ID(id)] = override.Weight
			}
			if err := validateWeights(weights); err != nil {
				return RuntimeConfig{}, err
			}
			cfg.CriteriaWeights = weights
		}
	} else if !os.IsNotExist(err) {
		return RuntimeConfig{}, dodErrors.ErrConfigInvalid(ConfigFileName, err.Error())
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	bindEnv(v, "MAX_PARALLEL_CRITERIA", &cfg.MaxParallelCriteria)
	bindEnvBool(v, "EARLY_TERMINATION", &cfg.EarlyTermination)
	bindEnvBool(v, "SCORE_DISABLED_AS_ZERO", &cfg.ScoreDisabledAsZero)

	return cfg, nil
}

func bindEnv(v *viper.Viper, key string, dst *int) {
	_ = v.BindEnv(key)
	if val := v.GetInt(key); val != 0 {
		*dst = val
	}
}

func bindEnvBool(v *viper.Viper, key string, dst *bool) {
	_ = v.BindEnv(key)
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}

// validateWeights re-checks invariant W1 against an on-disk override,
// since a malformed config.yaml is a hard error per §6.2.
func validateWeights(weights map[criteria.ID]float64) error {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	const epsilon = 1e-9
	if diff := sum - 1.0; diff < -epsilon || diff > epsilon {
		return dodErrors.ErrWeightsInvalid(sum)
	}
	return nil
}

// ApplyToRegistry builds a criteria.Registry honoring any on-disk weight
// overrides, falling back to the built-in reference registry otherwise.
func ApplyToRegistry(cfg RuntimeConfig) (*criteria.Registry, error) {
	if len(cfg.CriteriaWeights) == 0 {
		return criteria.Default()
	}

	base, err := criteria.Default()
	if err != nil {
		return nil, err
	}

	specs := make([]criteria.Spec, 0, len(base.All()))
	for _, s := range base.All() {
		if w, ok := cfg.CriteriaWeights[s.ID]; ok {
			s.Weight = w
		}
		specs = append(specs, s)
	}
	return criteria.Load(specs)
}
