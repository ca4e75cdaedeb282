package gitinfo

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, dir string) {
	t.Helper()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run())
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
}

func TestCollect_NonRepo(t *testing.T) {
	dir := t.TempDir()
	info, err := Collect(context.Background(), dir)
	require.NoError(t, err)
	require.Empty(t, info.HeadCommit)
	require.False(t, info.Dirty)
}

func TestCollect_Repo(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)

	require.NoError(t, writeFile(filepath.Join(dir, "a.txt"), "one"))
	cmd := exec.Command("git", "add", "a.txt")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
	cmd = exec.Command("git", "commit", "-q", "-m", "init")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	info, err := Collect(context.Background(), dir)
	require.NoError(t, err)
	require.NotEmpty(t, info.HeadCommit)
	require.False(t, info.Dirty)

	require.NoError(t, writeFile(filepath.Join(dir, "a.txt"), "two"))
	info, err = Collect(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, info.Dirty)
}

func writeFile(path, content string) error {
	return exec.Command("sh", "-c", "printf '%s' '"+content+"' > '"+path+"'").Run()
}
