package coordinator

import (
	"fmt"
	"sort"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// Conflict is one file with two or more sessions reporting it in
// files_touched.
type Conflict struct {
	File     string   `json:"file"`
	Sessions []string `json:"sessions"`
}

// DetectConflicts builds a file→sessions multimap from every non-closed
// session record's files_touched and returns entries with two or more
// sessions (spec.md §4.5, scenario 1 in §8). Unlike the hook's advisory
// conflict-guard, this is not restricted to active sessions: it also reports
// on stale ones, because a lead reviewing conflicts wants the full picture
// of recent contention, not just live edits. Closed sessions are excluded —
// their files_touched is history, not contention anyone still needs to
// resolve.
func (c *Coordinator) DetectConflicts() ([]Conflict, error) {
	sessions, err := store.ListSessions(c.Root, c.warnOut())
	if err != nil {
		return nil, fmt.Errorf("transient_io: listing sessions: %w", err)
	}

	byFile := map[string][]string{}
	for _, s := range sessions {
		if s.Status == model.SessionClosed {
			continue
		}
		for _, f := range s.FilesTouched {
			byFile[f] = append(byFile[f], s.Session)
		}
	}

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	out := make([]Conflict, 0, len(files))
	for _, f := range files {
		if len(byFile[f]) >= 2 {
			out = append(out, Conflict{File: f, Sessions: byFile[f]})
		}
	}
	return out, nil
}
