package coordinator

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// ListSessions returns every non-closed session record (spec.md §4.5).
func (c *Coordinator) ListSessions() ([]*model.Session, error) {
	all, err := store.ListSessions(c.Root, c.warnOut())
	if err != nil {
		return nil, fmt.Errorf("transient_io: listing sessions: %w", err)
	}

	out := make([]*model.Session, 0, len(all))
	for _, s := range all {
		if s.Status != model.SessionClosed {
			out = append(out, s)
		}
	}
	c.Metrics.SetActiveSessions(len(out))
	return out, nil
}

// GetSession returns a single session record by its (possibly full-length)
// session id.
func (c *Coordinator) GetSession(sessionID string) (*model.Session, error) {
	if err := store.ValidateSessionID(sessionID); err != nil {
		return nil, fmt.Errorf("invalid_argument: %w", err)
	}
	short := store.ShortID(sessionID)

	s, err := store.LoadSession(c.Root, short)
	if err != nil {
		if store.Exists(c.Root.SessionPath(short)) {
			return nil, fmt.Errorf("transient_io: loading session %q: %w", short, err)
		}
		return nil, fmt.Errorf("not_found: session %q", short)
	}
	store.ApplyStaleness(s, time.Now())
	return s, nil
}
