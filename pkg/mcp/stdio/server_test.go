package stdio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/coordinator"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

func text(res *mcpsdk.CallToolResult) string {
	return res.Content[0].(*mcpsdk.TextContent).Text
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Allowlist.Models = []string{"sonnet"}
	cfg.Allowlist.Agents = []string{"general-purpose"}
	cfg.Worker.Binary = "true"

	c := coordinator.New(store.NewRoot(t.TempDir()), cfg, nil)
	s, err := NewServer(c)
	require.NoError(t, err)
	return s
}

func TestNewServer_RejectsNilCoordinator(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)
}

func TestHandleListSessions_ReportsEmptyRoster(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.handleListSessions(context.Background(), nil, &emptyParams{})
	require.NoError(t, err)
	assert.Contains(t, text(res), "0 session(s)")
}

func TestHandleSendMessageThenCheckInbox_RoundTrips(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.handleSendMessage(context.Background(), nil, &SendMessageParams{
		From: "abcd1234", To: "efgh5678", Content: "hello",
	})
	require.NoError(t, err)

	res, _, err := s.handleCheckInbox(context.Background(), nil, &CheckInboxParams{SessionID: "efgh5678"})
	require.NoError(t, err)
	assert.Contains(t, text(res), "hello")
}

func TestHandleCreateTaskThenGetTask_RoundTrips(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.handleCreateTask(context.Background(), nil, &CreateTaskParams{ID: "t1", Subject: "ship it"})
	require.NoError(t, err)

	res, _, err := s.handleGetTask(context.Background(), nil, &GetTaskParams{ID: "t1"})
	require.NoError(t, err)
	assert.Contains(t, text(res), "ship it")
}

func TestHandleDetectConflicts_FlagsSharedFile(t *testing.T) {
	s := newTestServer(t)
	now := time.Now()

	a := &model.Session{Session: "a1b2c3d4", Status: model.SessionActive, LastActive: now, FilesTouched: []string{"src/auth.ts"}}
	b := &model.Session{Session: "e5f6g7h8", Status: model.SessionActive, LastActive: now, FilesTouched: []string{"src/auth.ts"}}
	require.NoError(t, store.SaveSession(s.coord.Root, a))
	require.NoError(t, store.SaveSession(s.coord.Root, b))

	res, _, err := s.handleDetectConflicts(context.Background(), nil, &emptyParams{})
	require.NoError(t, err)
	assert.Contains(t, text(res), "src/auth.ts")
}

func TestHandleCreateTeamThenGetTeam_RoundTrips(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.handleCreateTeam(context.Background(), nil, &CreateTeamParams{Name: "squad", Members: []string{"abcd1234"}})
	require.NoError(t, err)

	res, _, err := s.handleGetTeam(context.Background(), nil, &GetTeamParams{Name: "squad"})
	require.NoError(t, err)
	assert.Contains(t, text(res), "squad")
}

func TestHandleGetTask_NotFoundPropagatesError(t *testing.T) {
	s := newTestServer(t)
	_, _, err := s.handleGetTask(context.Background(), nil, &GetTaskParams{ID: "ghost"})
	assert.ErrorContains(t, err, "not_found")
}
