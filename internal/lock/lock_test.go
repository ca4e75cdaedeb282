package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_AcquireRelease(t *testing.T) {
	uvmgrDir := filepath.Join(t.TempDir(), ".uvmgr")

	l := New(uvmgrDir)

	require.NoError(t, l.Check())
	require.NoError(t, l.Acquire())

	lockPath := filepath.Join(uvmgrDir, FileName)
	_, err := os.Stat(lockPath)
	assert.NoError(t, err, "lock file should exist")

	data, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	pid, err := strconv.Atoi(string(data))
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	l.Release()
	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err), "lock file should be removed")
}

func TestLock_CheckNoLockFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), ".uvmgr"))
	assert.NoError(t, l.Check())
}

func TestLock_CheckHeldByRunningProcess(t *testing.T) {
	uvmgrDir := t.TempDir()
	require.NoError(t, os.MkdirAll(uvmgrDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uvmgrDir, FileName), []byte(strconv.Itoa(os.Getpid())), 0o644))

	l := New(uvmgrDir)
	err := l.Check()
	require.Error(t, err)

	heldErr, ok := err.(*AlreadyHeldError)
	require.True(t, ok, "error should be *AlreadyHeldError")
	assert.Equal(t, os.Getpid(), heldErr.PID)
}

func TestLock_CheckStaleLockIsCleaned(t *testing.T) {
	uvmgrDir := t.TempDir()
	require.NoError(t, os.MkdirAll(uvmgrDir, 0o755))
	// A PID that's very unlikely to be alive.
	stalePID := 999999
	lockPath := filepath.Join(uvmgrDir, FileName)
	require.NoError(t, os.WriteFile(lockPath, []byte(strconv.Itoa(stalePID)), 0o644))

	l := New(uvmgrDir)
	require.NoError(t, l.Check())

	_, err := os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err), "stale lock file should be removed by Check")
}

func TestLock_CheckInvalidContentsIsCleaned(t *testing.T) {
	uvmgrDir := t.TempDir()
	require.NoError(t, os.MkdirAll(uvmgrDir, 0o755))
	lockPath := filepath.Join(uvmgrDir, FileName)
	require.NoError(t, os.WriteFile(lockPath, []byte("not-a-pid"), 0o644))

	l := New(uvmgrDir)
	require.NoError(t, l.Check())

	_, err := os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLock_ReleaseNonexistentIsSafe(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), ".uvmgr"))
	assert.NotPanics(t, func() { l.Release() })
}

func TestAlreadyHeldError_Message(t *testing.T) {
	err := &AlreadyHeldError{PID: 4242}
	assert.Contains(t, err.Error(), "4242")
}
