package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/coordinator"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

func newTestCoordinator(dir string) *coordinator.Coordinator {
	cfg := config.Default()
	cfg.Allowlist.Models = []string{"sonnet"}
	cfg.Allowlist.Agents = []string{"general-purpose"}
	cfg.Worker.Binary = "true"
	return coordinator.New(store.NewRoot(dir), cfg, nil)
}

func TestListWorkers_ReadsMetaAndDoneStatus(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	now := time.Now()

	meta := model.WorkerMeta{TaskID: "task-one", Directory: "/tmp/proj", Mode: model.ModePipe, Spawned: now, Status: model.WorkerRunning}
	require.NoError(t, store.SafeWriteJSON(root.MetaPath("task-one"), meta))
	require.NoError(t, store.SafeWriteJSON(root.DonePath("task-one"), model.WorkerDone{Status: model.WorkerCompleted, Finished: now, TaskID: "task-one"}))

	workers, err := ListWorkers(root, nil)
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "task-one", workers[0].TaskID)
	assert.Equal(t, model.WorkerCompleted, workers[0].Status)
	assert.Equal(t, "/tmp/proj", workers[0].Directory)
}

func TestListWorkers_EmptyResultsDirReturnsEmpty(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	workers, err := ListWorkers(root, nil)
	require.NoError(t, err)
	assert.Empty(t, workers)
}

func TestLoadSnapshot_PopulatesSessionsAndConflicts(t *testing.T) {
	dir := t.TempDir()
	coord := newTestCoordinator(dir)
	now := time.Now()

	a := &model.Session{Session: "a1b2c3d4", Status: model.SessionActive, LastActive: now, FilesTouched: []string{"src/auth.ts"}, ToolCounts: map[string]int{}}
	b := &model.Session{Session: "e5f6g7h8", Status: model.SessionActive, LastActive: now, FilesTouched: []string{"src/auth.ts"}, ToolCounts: map[string]int{}}
	require.NoError(t, store.SaveSession(coord.Root, a))
	require.NoError(t, store.SaveSession(coord.Root, b))

	require.NoError(t, coord.SendMessage("a1b2c3d4", "e5f6g7h8", "hi", model.PriorityNormal, now))

	m, err := New(coord)
	require.NoError(t, err)
	defer m.watcher.Close()

	msg := m.loadSnapshot()
	snap, ok := msg.(snapshotMsg)
	require.True(t, ok, "expected snapshotMsg, got %T", msg)

	assert.Len(t, snap.sessions, 2)
	require.Len(t, snap.conflicts, 1)
	assert.Equal(t, "src/auth.ts", snap.conflicts[0].File)
	assert.Equal(t, 1, snap.inboxCounts["e5f6g7h8"])
}

func TestModelView_RendersSessionsConflictsAndWorkers(t *testing.T) {
	dir := t.TempDir()
	coord := newTestCoordinator(dir)
	m, err := New(coord)
	require.NoError(t, err)
	defer m.watcher.Close()

	m.snap = snapshot{
		sessions: []*model.Session{
			{Session: "a1b2c3d4", Status: model.SessionActive, CWD: "/repo", FilesTouched: []string{"x.go"}},
		},
		conflicts: []coordinator.Conflict{
			{File: "x.go", Sessions: []string{"a1b2c3d4", "e5f6g7h8"}},
		},
		workers: []WorkerSummary{
			{TaskID: "task-one", Directory: "/repo", Mode: model.ModePipe, Status: model.WorkerRunning},
		},
		inboxCounts: map[string]int{"a1b2c3d4": 2},
	}
	m.lastUpdate = time.Now()

	out := m.View()
	assert.Contains(t, out, "a1b2c3d4")
	assert.Contains(t, out, "x.go")
	assert.Contains(t, out, "task-one")
	assert.Contains(t, out, "termcoord lead")
}

func TestModelView_RendersErrorState(t *testing.T) {
	dir := t.TempDir()
	coord := newTestCoordinator(dir)
	m, err := New(coord)
	require.NoError(t, err)
	defer m.watcher.Close()

	m.err = assert.AnError
	out := m.View()
	assert.Contains(t, out, "failed to read state store")
}

func TestModelUpdate_QuitKeyStopsProgram(t *testing.T) {
	dir := t.TempDir()
	coord := newTestCoordinator(dir)
	m, err := New(coord)
	require.NoError(t, err)

	keyMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	updated, _ := m.Update(keyMsg)
	mm := updated.(Model)
	assert.True(t, mm.quitting)
	assert.Empty(t, mm.View())
}
