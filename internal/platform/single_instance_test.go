package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfigDir(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("test redirects the config dir via XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestSingleInstanceExcludesSecondClaim(t *testing.T) {
	setTestConfigDir(t)

	guard, err := AcquireSingleInstance("rangetimer-test")
	require.NoError(t, err)

	_, err = AcquireSingleInstance("rangetimer-test")
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())

	reacquired, err := AcquireSingleInstance("rangetimer-test")
	require.NoError(t, err)
	require.NoError(t, reacquired.Release())
}

func TestStalePidFileIsReclaimed(t *testing.T) {
	setTestConfigDir(t)

	configDir, err := os.UserConfigDir()
	require.NoError(t, err)
	lockDir := filepath.Join(configDir, "rangetimer-test")
	require.NoError(t, os.MkdirAll(lockDir, 0o755))

	// A pid from a long-dead process; far above any default pid_max.
	stale := filepath.Join(lockDir, "rangetimer-test.pid")
	require.NoError(t, os.WriteFile(stale, []byte("99999999\n"), 0o644))

	guard, err := AcquireSingleInstance("rangetimer-test")
	require.NoError(t, err)
	require.NoError(t, guard.Release())
}

func TestReleaseIsRepeatable(t *testing.T) {
	setTestConfigDir(t)

	guard, err := AcquireSingleInstance("rangetimer-test")
	require.NoError(t, err)
	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	var nilGuard *InstanceGuard
	assert.NoError(t, nilGuard.Release())
}
