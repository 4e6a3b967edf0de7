package store

import (
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
)

// StaleAfter is the duration of heartbeat silence after which an observer
// considers a session stale (spec.md §3).
const StaleAfter = time.Hour

// ListSessions reads every session-*.json file under root, best-effort
// skipping malformed records. Each record has ApplyStaleness applied against
// the current time before being returned, so any caller (the coordinator,
// the dashboard, detect_conflicts, the conflict-guard hook) sees an
// hours-idle session reported as stale without separately remembering to
// call ApplyStaleness itself. The transition is not written back to disk;
// the on-disk record still flips to stale for real the next time a
// lock-holding writer (Register, Heartbeat) touches it.
func ListSessions(root Root, warnOut io.Writer) ([]*model.Session, error) {
	matches, err := filepath.Glob(filepath.Join(root.Dir, "session-*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	now := time.Now()
	out := make([]*model.Session, 0, len(matches))
	for _, path := range matches {
		var s model.Session
		if err := ReadJSON(path, &s); err != nil {
			if warnOut != nil {
				io.WriteString(warnOut, "store: skipping malformed session record "+path+": "+err.Error()+"\n")
			}
			continue
		}
		ApplyStaleness(&s, now)
		out = append(out, &s)
	}
	return out, nil
}

// ApplyStaleness returns true if s transitions from active to stale based on
// LastActive age; it mutates s.Status in place when so. Closed sessions
// never revert (spec.md §3 invariant: active -> stale -> closed monotonic,
// stale may revert to active only via new activity, never via this check).
func ApplyStaleness(s *model.Session, now time.Time) bool {
	if s.Status != SessionActiveStatus() {
		return false
	}
	if now.Sub(s.LastActive) > StaleAfter {
		s.Status = model.SessionStale
		return true
	}
	return false
}

// SessionActiveStatus exists to avoid importing model twice at call sites
// that only need the constant; it simply returns model.SessionActive.
func SessionActiveStatus() model.SessionStatus { return model.SessionActive }

// LoadSession reads one session record by its short id.
func LoadSession(root Root, shortID string) (*model.Session, error) {
	var s model.Session
	if err := ReadJSON(root.SessionPath(shortID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSession writes a session record atomically.
func SaveSession(root Root, s *model.Session) error {
	return SafeWriteJSON(root.SessionPath(s.Session), s)
}
