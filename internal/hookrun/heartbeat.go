package hookrun

import (
	"fmt"
	"os"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// Heartbeat handles the post-tool-use hook. The activity append always
// happens; the session-record rewrite is throttled to once per
// cfg.Heartbeat.RateLimitWindow so the fast path stays lock-light on every
// other tool call (spec.md §4.2, §5).
func Heartbeat(root store.Root, cfg *config.Config, p *Payload, now time.Time) error {
	if err := store.ValidateSessionID(p.SessionID); err != nil {
		return err
	}
	short := store.ShortID(p.SessionID)

	if err := store.AppendJSONLine(root.ActivityLogPath(), model.ActivityEvent{
		TS:      now,
		Session: short,
		Tool:    p.ToolName,
		File:    p.FilePath(),
		Path:    p.CWD,
	}); err != nil {
		return fmt.Errorf("appending activity record: %w", err)
	}

	return store.WithLock(root.SessionPath(short), func() error {
		s, err := store.LoadSession(root, short)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: heartbeat for unregistered session %q", store.ErrInvalidID, short)
			}
			return fmt.Errorf("loading session record: %w", err)
		}

		if now.Sub(s.LastActive) < cfg.Heartbeat.RateLimitWindow {
			return nil
		}

		if s.ToolCounts == nil {
			s.ToolCounts = map[string]int{}
		}
		s.ToolCounts[p.ToolName]++

		if p.ToolName == "Edit" || p.ToolName == "Write" {
			if fp := p.FilePath(); fp != "" {
				s.TouchFile(fp)
			}
		}
		s.PushRecentOp(model.RecentOp{Timestamp: now, Tool: p.ToolName, File: p.FilePath()})
		s.CWD = p.CWD
		s.LastActive = now

		return store.SaveSession(root, s)
	})
}
