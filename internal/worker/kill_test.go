package worker

import (
	"os/exec"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/termcoord/internal/store"
)

func TestKill_ReportsNotAliveWithoutPIDFile(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()

	res, err := Kill(root, cfg, "nope")
	require.NoError(t, err)
	assert.False(t, res.WasAlive)
}

func TestKill_RejectsInvalidTaskID(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	_, err := Kill(root, testConfig(), "../etc")
	assert.Error(t, err)
}

func TestKill_TerminatesALiveProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the posix sleep binary")
	}
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()
	cfg.Worker.KillGrace = 500 * time.Millisecond

	cmd := exec.Command("sleep", "30")
	require.NoError(t, cmd.Start())
	defer cmd.Process.Kill() //nolint:errcheck // safety net if the test assertion below fails

	require.NoError(t, store.SafeWrite(root.PIDPath("task1"), []byte(strconv.Itoa(cmd.Process.Pid))))

	res, err := Kill(root, cfg, "task1")
	require.NoError(t, err)
	assert.True(t, res.WasAlive)

	_, waitErr := cmd.Process.Wait()
	assert.NoError(t, waitErr)
}

func TestKill_IgnoresMalformedPIDFile(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	require.NoError(t, store.SafeWrite(root.PIDPath("task1"), []byte("not-a-pid")))

	res, err := Kill(root, testConfig(), "task1")
	require.NoError(t, err)
	assert.False(t, res.WasAlive)
}
