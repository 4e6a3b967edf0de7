package coordinator

import (
	"errors"
	"strings"

	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// Error kinds, per spec.md §7. internal/worker and internal/taskboard
// already return errors prefixed "<kind>: ..."; Classify recovers that
// prefix so this package and its callers can record metrics and build
// structured RPC failures without either layer needing a parallel typed
// error hierarchy.
const (
	KindInvalidArgument    = "invalid_argument"
	KindNotFound           = "not_found"
	KindRateLimited        = "rate_limited"
	KindConflict           = "conflict"
	KindSpawnFailed        = "spawn_failed"
	KindWakeFailedFellBack = "wake_failed_fell_back"
	KindTransientIO        = "transient_io"
)

var knownKinds = []string{
	KindInvalidArgument,
	KindNotFound,
	KindRateLimited,
	KindConflict,
	KindSpawnFailed,
	KindWakeFailedFellBack,
	KindTransientIO,
}

// Classify returns err's structured kind, or "" if err is nil.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, k := range knownKinds {
		if strings.HasPrefix(msg, k+":") {
			return k
		}
	}
	if errors.Is(err, store.ErrInvalidID) {
		return KindInvalidArgument
	}
	if errors.Is(err, store.ErrTransientIO) {
		return KindTransientIO
	}
	return KindTransientIO
}
