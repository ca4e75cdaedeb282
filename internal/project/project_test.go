package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n\ngo 1.22\n"), 0644))

	ctx, err := New(context.Background(), dir, EnvironmentDevelopment)
	require.NoError(t, err)

	assert.Equal(t, EnvironmentDevelopment, ctx.Environment)
	assert.NotEmpty(t, ctx.RunID)
	assert.Contains(t, ctx.DetectedLanguageHints, "lang:go")
	assert.True(t, ctx.HasHint("lang:go"))
	assert.False(t, ctx.HasHint("lang:rust"))
	assert.Equal(t, filepath.Join(ctx.Root, ".uvmgr"), ctx.UvmgrDir())
}

func TestNew_DistinctRunIDs(t *testing.T) {
	dir := t.TempDir()

	a, err := New(context.Background(), dir, EnvironmentDevelopment)
	require.NoError(t, err)
	b, err := New(context.Background(), dir, EnvironmentDevelopment)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
}
