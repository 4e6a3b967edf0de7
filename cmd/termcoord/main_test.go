package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "hook")
	assert.Contains(t, names, "lead")
	assert.Contains(t, names, "doctor")
}

func TestHookCommand_HasFourSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range hookCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"register", "heartbeat", "drain", "guard"}, names)
}

// newIsolatedCmd returns a bare *cobra.Command whose InOrStdin/OutOrStdout/
// ErrOrStderr are wired to the given buffers. It does NOT touch HOME — call
// isolateHome once per test (or once for a whole round-trip of calls that
// must share one state root) before building any commands.
func newIsolatedCmd(stdin string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

// isolateHome points config.Default's state root and config.defaultConfigPath
// at a fresh temp directory for the duration of the test.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	configPath = ""
}

func TestHookRegisterThenHeartbeatThenDrain_RoundTrips(t *testing.T) {
	isolateHome(t)

	cmd, _, _ := newIsolatedCmd(`{"session_id":"abcd1234efgh","cwd":"/repo"}`)
	require.NoError(t, runHookRegister(cmd, nil))

	cmd, _, _ = newIsolatedCmd(`{"session_id":"abcd1234efgh","cwd":"/repo","tool_name":"Edit","tool_input":{"file_path":"src/main.go"}}`)
	require.NoError(t, runHookHeartbeat(cmd, nil))

	cmd, _, errOut := newIsolatedCmd(`{"session_id":"abcd1234efgh"}`)
	require.NoError(t, runHookDrain(cmd, nil))
	assert.Empty(t, errOut.String(), "drain of an empty inbox should print nothing")
}

func TestHookGuard_RejectsInvalidSessionID(t *testing.T) {
	isolateHome(t)
	cmd, _, _ := newIsolatedCmd(`{"session_id":"short"}`)
	err := runHookGuard(cmd, nil)
	assert.Error(t, err)
}

func TestRunDoctor_ReportsStateRootAndLockHealth(t *testing.T) {
	isolateHome(t)
	cmd, out, _ := newIsolatedCmd("")
	require.NoError(t, runDoctor(cmd, nil))

	output := out.String()
	assert.Contains(t, output, "state root:")
	assert.Contains(t, output, "sessions:")
	assert.Contains(t, output, "lock health: ok")
}
