package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "standard", cfg.Template)
	assert.Equal(t, 8, cfg.MaxParallelCriteria)
}

func TestLoad_ReadsOnDiskConfig(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".uvmgr", "exoskeleton")
	require.NoError(t, os.MkdirAll(dir, 0755))

	content := `
version: "1"
template: enterprise
criteria:
  testing:
    weight: 0.25
    priority: critical
    threshold: 60
  security:
    weight: 0.25
    priority: critical
    threshold: 60
  devops:
    weight: 0.20
    priority: critical
    threshold: 60
  code_quality:
    weight: 0.10
    priority: important
    threshold: 60
  documentation:
    weight: 0.10
    priority: important
    threshold: 60
  performance:
    weight: 0.05
    priority: optional
    threshold: 60
  compliance:
    weight: 0.05
    priority: optional
    threshold: 60
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "enterprise", cfg.Template)
	assert.Len(t, cfg.CriteriaWeights, 7)
}

func TestLoad_RejectsInvalidWeightSum(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".uvmgr", "exoskeleton")
	require.NoError(t, os.MkdirAll(dir, 0755))

	content := "version: \"1\"\ntemplate: standard\ncriteria:\n  testing:\n    weight: 0.9\n    priority: critical\n    threshold: 60\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	_, err := Load(root)
	require.Error(t, err)
}

func TestApplyToRegistry_NoOverridesUsesDefault(t *testing.T) {
	cfg := Defaults()
	reg, err := ApplyToRegistry(cfg)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 7)
}
