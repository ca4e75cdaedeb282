package exoskeleton

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/telemetry"
)

func newMaterializer(t *testing.T) *Materializer {
	t.Helper()
	reg, err := criteria.Default()
	require.NoError(t, err)
	return New(reg, telemetry.NoOp())
}

func TestMaterialize_CreateIsIdempotent(t *testing.T) {
	m := newMaterializer(t)
	root := t.TempDir()

	res, err := m.Materialize(context.Background(), root, TemplateStandard, ModeCreate)
	require.NoError(t, err)
	assert.NotEmpty(t, res.FilesCreated)
	assert.Empty(t, res.FilesSkipped)

	res2, err := m.Materialize(context.Background(), root, TemplateStandard, ModeCreate)
	require.NoError(t, err)
	assert.Empty(t, res2.FilesCreated)
	assert.NotEmpty(t, res2.FilesSkipped)
}

func TestMaterialize_CreateConflictIsAtomic(t *testing.T) {
	m := newMaterializer(t)
	root := t.TempDir()

	confPath := filepath.Join(root, ".uvmgr", "exoskeleton", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(confPath), 0755))
	require.NoError(t, os.WriteFile(confPath, []byte("conflicting content"), 0644))

	_, err := m.Materialize(context.Background(), root, TemplateStandard, ModeCreate)
	require.Error(t, err)

	workflowPath := filepath.Join(root, ".uvmgr", "automation", "workflows", "definition-of-done.yaml")
	_, statErr := os.Stat(workflowPath)
	assert.True(t, os.IsNotExist(statErr), "no files should be written when a conflict is detected")
}

func TestMaterialize_ForceOverwrites(t *testing.T) {
	m := newMaterializer(t)
	root := t.TempDir()

	confPath := filepath.Join(root, ".uvmgr", "exoskeleton", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(confPath), 0755))
	require.NoError(t, os.WriteFile(confPath, []byte("stale content"), 0644))

	res, err := m.Materialize(context.Background(), root, TemplateStandard, ModeForce)
	require.NoError(t, err)
	assert.Contains(t, res.FilesOverwritten, ".uvmgr/exoskeleton/config.yaml")
}

func TestMaterialize_PreviewDoesNotWrite(t *testing.T) {
	m := newMaterializer(t)
	root := t.TempDir()

	res, err := m.Materialize(context.Background(), root, TemplateStandard, ModePreview)
	require.NoError(t, err)
	assert.NotEmpty(t, res.FilesCreated)

	_, statErr := os.Stat(filepath.Join(root, ".uvmgr"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMaterialize_UnknownTemplate(t *testing.T) {
	m := newMaterializer(t)
	_, err := m.Materialize(context.Background(), t.TempDir(), TemplateID("bogus"), ModeCreate)
	require.Error(t, err)
}

func TestMaterialize_AINativeEnablesAIIntegration(t *testing.T) {
	m := newMaterializer(t)
	root := t.TempDir()

	res, err := m.Materialize(context.Background(), root, TemplateAINative, ModeCreate)
	require.NoError(t, err)
	assert.True(t, res.AIIntegrationsEnabled)
	assert.FileExists(t, filepath.Join(root, ".uvmgr", "ai", "integration.yaml"))
}
