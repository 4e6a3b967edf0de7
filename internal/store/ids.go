package store

import (
	"fmt"
	"regexp"
)

// SessionIDPattern is the identity grammar for session_id inputs (§6).
var SessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// TaskIDPattern is the identity grammar for task_id/pipeline_id inputs (§6).
// No path separators are permitted by construction: '/' and '\\' are not in
// the character class.
var TaskIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrInvalidID is returned when an identifier fails its grammar before any
// path is constructed from it. This is the single gate that makes all
// downstream path construction safe (spec.md §4.1).
var ErrInvalidID = fmt.Errorf("invalid identifier")

// ValidateSessionID checks the raw (untruncated) session id against the
// identity regex. Callers truncate to 8 characters only after this passes.
func ValidateSessionID(raw string) error {
	if !SessionIDPattern.MatchString(raw) {
		return fmt.Errorf("%w: session_id %q", ErrInvalidID, raw)
	}
	return nil
}

// ShortID truncates a validated session id to its on-disk short form.
func ShortID(raw string) string {
	if len(raw) <= 8 {
		return raw
	}
	return raw[:8]
}

// ValidateTaskID checks a task_id or pipeline_id against its grammar,
// rejecting path traversal and separators by construction.
func ValidateTaskID(raw string) error {
	if !TaskIDPattern.MatchString(raw) {
		return fmt.Errorf("%w: id %q", ErrInvalidID, raw)
	}
	return nil
}
