package dashboard

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// refreshMsg tells the Model to reload the session/conflict/worker tables.
type refreshMsg struct{}

// watcher wraps an fsnotify.Watcher over the subdirectories of the state
// root that the dashboard cares about, collapsing every event into a
// single refreshMsg rather than tracking which file changed — the
// dashboard always re-reads the full state on any change, so there is
// nothing to gain from finer-grained event routing.
type watcher struct {
	fsw *fsnotify.Watcher
}

// newWatcher opens an fsnotify watch on root's top-level directory plus
// its inbox, results, tasks, and teams subdirectories, skipping any that
// do not exist yet (the same best-effort Add pattern the git event
// detector uses for logs/HEAD).
func newWatcher(root store.Root) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{
		root.Dir,
		filepath.Dir(root.InboxPath("x")),
		root.ResultsDir(),
		root.TasksDir(),
		root.TeamsDir(),
		root.RateLimitsDir(),
	}
	for _, d := range dirs {
		_ = fsw.Add(d) // best-effort: directory may not exist yet
	}

	return &watcher{fsw: fsw}, nil
}

func (w *watcher) Close() error { return w.fsw.Close() }

// waitForEvent returns a tea.Cmd that blocks on the next filesystem event
// (or watcher error, swallowed) and resolves to a refreshMsg.
func (w *watcher) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case _, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			return refreshMsg{}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return refreshMsg{}
		}
	}
}
