package coordinator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// SendMessage appends content to to's inbox, enforcing from's rate limit
// and the configured content length cap (spec.md §4.5).
func (c *Coordinator) SendMessage(from, to, content string, priority model.MessagePriority, now time.Time) error {
	if err := store.ValidateSessionID(from); err != nil {
		return fmt.Errorf("invalid_argument: from: %w", err)
	}
	if err := validatePriority(priority); err != nil {
		return err
	}
	if err := c.checkContentLength(content); err != nil {
		return err
	}
	if err := c.checkRateLimit(from, now); err != nil {
		return err
	}
	return c.appendToInbox(to, from, content, priority, now)
}

// Broadcast appends content to every non-closed session's inbox. It
// consumes from's rate limit once per call rather than once per recipient
// — a broadcast is one logical action, and charging it per-recipient would
// let a single call to a busy roster exhaust the whole window.
func (c *Coordinator) Broadcast(from, content string, priority model.MessagePriority, now time.Time) (int, error) {
	if err := store.ValidateSessionID(from); err != nil {
		return 0, fmt.Errorf("invalid_argument: from: %w", err)
	}
	if err := validatePriority(priority); err != nil {
		return 0, err
	}
	if err := c.checkContentLength(content); err != nil {
		return 0, err
	}
	if err := c.checkRateLimit(from, now); err != nil {
		return 0, err
	}

	sessions, err := c.ListSessions()
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, s := range sessions {
		if err := c.appendToInbox(s.Session, from, content, priority, now); err != nil {
			if c.Log != nil {
				c.Log.Warn(context.Background(), "broadcast: failed to deliver to one recipient", zap.Error(err))
			}
			continue
		}
		delivered++
	}
	return delivered, nil
}

// CheckInbox returns a session's inbox contents without draining it —
// draining is exclusively the inbox-drain hook's job (spec.md §4.5).
func (c *Coordinator) CheckInbox(sessionID string) ([]model.InboxMessage, error) {
	if err := store.ValidateSessionID(sessionID); err != nil {
		return nil, fmt.Errorf("invalid_argument: %w", err)
	}
	short := store.ShortID(sessionID)

	messages, err := store.ReadJSONL[model.InboxMessage](c.Root.InboxPath(short), c.warnOut())
	if err != nil {
		return nil, fmt.Errorf("transient_io: reading inbox for %q: %w", short, err)
	}
	return messages, nil
}

func validatePriority(p model.MessagePriority) error {
	if p == "" || p == model.PriorityNormal || p == model.PriorityUrgent {
		return nil
	}
	return fmt.Errorf("invalid_argument: priority %q", p)
}

func (c *Coordinator) checkContentLength(content string) error {
	if len(content) > c.Config.RateLimit.MaxContentBytes {
		return fmt.Errorf("invalid_argument: content exceeds %d bytes", c.Config.RateLimit.MaxContentBytes)
	}
	return nil
}

// checkRateLimit enforces from's per-sender budget, reading and rewriting
// the counter file at RateLimitPath(from) under that file's own exclusive
// lock (spec.md §4.5: "stored in a small JSON counter file mutated under
// an exclusive lock").
func (c *Coordinator) checkRateLimit(from string, now time.Time) error {
	path := c.Root.RateLimitPath(from)
	return store.WithLock(path, func() error {
		var w model.RateLimitWindow
		if err := store.ReadJSON(path, &w); err != nil {
			w = model.RateLimitWindow{Sender: from, WindowStart: now}
		}

		if now.Sub(w.WindowStart) > c.Config.RateLimit.Window {
			w.WindowStart = now
			w.Count = 0
		}

		if w.Count >= c.Config.RateLimit.MaxPerWindow {
			return fmt.Errorf("rate_limited: sender %q exceeded %d messages per %s", from, c.Config.RateLimit.MaxPerWindow, c.Config.RateLimit.Window)
		}

		w.Count++
		return store.SafeWriteJSON(path, w)
	})
}

func (c *Coordinator) appendToInbox(to, from, content string, priority model.MessagePriority, now time.Time) error {
	if err := store.ValidateSessionID(to); err != nil {
		return fmt.Errorf("invalid_argument: to: %w", err)
	}
	short := store.ShortID(to)
	if priority == "" {
		priority = model.PriorityNormal
	}

	if err := store.AppendJSONLine(c.Root.InboxPath(short), model.InboxMessage{
		TS:       now,
		From:     from,
		Priority: priority,
		Content:  content,
	}); err != nil {
		return fmt.Errorf("transient_io: appending to inbox %q: %w", short, err)
	}
	return nil
}
