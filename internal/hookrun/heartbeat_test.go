package hookrun

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Heartbeat.RateLimitWindow = 5 * time.Second
	return cfg
}

func TestHeartbeat_UpdatesCountersAndFiles(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Register(root, &Payload{SessionID: "abcd12345678", CWD: "/work"}, start))

	cfg := testConfig()
	later := start.Add(10 * time.Second)
	err := Heartbeat(root, cfg, &Payload{
		SessionID: "abcd12345678",
		ToolName:  "Edit",
		CWD:       "/work",
		ToolInput: map[string]any{"file_path": "/work/main.go"},
	}, later)
	require.NoError(t, err)

	s, err := store.LoadSession(root, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, 1, s.ToolCounts["Edit"])
	assert.Equal(t, []string{"/work/main.go"}, s.FilesTouched)
	assert.Equal(t, later, s.LastActive)
	require.Len(t, s.RecentOps, 1)
	assert.Equal(t, "Edit", s.RecentOps[0].Tool)
}

func TestHeartbeat_ThrottlesRecordRewriteWithinWindow(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Register(root, &Payload{SessionID: "abcd12345678"}, start))

	cfg := testConfig()
	within := start.Add(2 * time.Second)
	require.NoError(t, Heartbeat(root, cfg, &Payload{SessionID: "abcd12345678", ToolName: "Read"}, within))

	s, err := store.LoadSession(root, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, start, s.LastActive, "record rewrite should be throttled within the window")
	assert.Equal(t, 0, s.ToolCounts["Read"], "tool count should not advance on a throttled heartbeat")

	lines, err := store.ReadJSONL[model.ActivityEvent](root.ActivityLogPath(), nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Read", lines[0].Tool)
}

func TestHeartbeat_RejectsUnregisteredSession(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()
	err := Heartbeat(root, cfg, &Payload{SessionID: "abcd12345678", ToolName: "Read"}, time.Now())
	require.Error(t, err)
}
