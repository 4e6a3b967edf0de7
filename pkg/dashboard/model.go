package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/termcoord/internal/coordinator"
	"github.com/fyrsmithlabs/termcoord/internal/model"
)

// snapshot is everything one refresh cycle reads from the state store.
type snapshot struct {
	sessions    []*model.Session
	conflicts   []coordinator.Conflict
	workers     []WorkerSummary
	inboxCounts map[string]int
}

// Model is the bubbletea program backing `termcoord lead`.
type Model struct {
	coord      *coordinator.Coordinator
	watcher    *watcher
	snap       snapshot
	err        error
	lastUpdate time.Time
	quitting   bool
	width      int
}

// New builds a dashboard Model over coord. The caller owns coord's
// lifecycle; Model never closes its Root.
func New(coord *coordinator.Coordinator) (Model, error) {
	w, err := newWatcher(coord.Root)
	if err != nil {
		return Model{}, err
	}
	return Model{coord: coord, watcher: w}, nil
}

type snapshotMsg snapshot
type errMsg error

// loadSnapshot reads sessions, conflicts, workers, and per-session inbox
// counts from the state store. It runs off the bubbletea event loop via
// tea.Cmd so a slow or malformed read never blocks key handling.
func (m Model) loadSnapshot() tea.Msg {
	sessions, err := m.coord.ListSessions()
	if err != nil {
		return errMsg(err)
	}

	conflicts, err := m.coord.DetectConflicts()
	if err != nil {
		return errMsg(err)
	}

	workers, err := ListWorkers(m.coord.Root, nil)
	if err != nil {
		return errMsg(err)
	}

	inboxCounts := make(map[string]int, len(sessions))
	for _, s := range sessions {
		msgs, err := m.coord.CheckInbox(s.Session)
		if err != nil {
			continue
		}
		inboxCounts[s.Session] = len(msgs)
	}

	return snapshotMsg(snapshot{
		sessions:    sessions,
		conflicts:   conflicts,
		workers:     workers,
		inboxCounts: inboxCounts,
	})
}

// Init starts the fsnotify wait loop and kicks off the first read.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshot, m.watcher.waitForEvent())
}

// Update handles key presses, store refreshes, and load results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.watcher.Close()
			return m, tea.Quit
		case "r":
			return m, m.loadSnapshot
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case refreshMsg:
		return m, tea.Batch(m.loadSnapshot, m.watcher.waitForEvent())

	case snapshotMsg:
		m.snap = snapshot(msg)
		m.lastUpdate = time.Now()
		m.err = nil
		return m, nil

	case errMsg:
		m.err = error(msg)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return m.renderError()
	}
	return m.renderDashboard()
}
