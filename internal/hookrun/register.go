package hookrun

import (
	"fmt"
	"os"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// Register handles the session-start hook. It is idempotent on replay: an
// existing record has its status reset to active and cwd/last_active
// refreshed, without clobbering counters or history (spec.md §4.2).
func Register(root store.Root, p *Payload, now time.Time) error {
	if err := store.ValidateSessionID(p.SessionID); err != nil {
		return err
	}
	short := store.ShortID(p.SessionID)

	return store.WithLock(root.SessionPath(short), func() error {
		s, err := store.LoadSession(root, short)
		if err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("loading existing session record: %w", err)
			}
			s = &model.Session{
				Session:    short,
				Started:    now,
				ToolCounts: map[string]int{},
			}
		}

		s.CWD = p.CWD
		s.Status = model.SessionActive
		s.LastActive = now
		if s.ToolCounts == nil {
			s.ToolCounts = map[string]int{}
		}

		return store.SaveSession(root, s)
	})
}
