package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/metrics"
)

// lockTimeout bounds how long withLock/appendLine will wait to acquire a
// lock before giving up with a transient_io-flavored error (spec.md §5:
// "bounded by other writers' hold time, which is microseconds").
const lockTimeout = 5 * time.Second

// staleLockAge is how old a directory-lock fallback may get before another
// waiter forcibly reclaims it (spec.md §4.1).
const staleLockAge = 60 * time.Second

// fileLock is a released-by-Unlock exclusive lock on a single path.
type fileLock interface {
	Unlock() error
}

// acquireLock acquires an exclusive lock associated with path, using the
// sidecar file path+".lock" (or path+".lock.d" directory on platforms
// without a real advisory-lock primitive). It blocks up to lockTimeout.
// The wait is recorded on termcoord_lock_wait_seconds regardless of outcome,
// so a waiter that times out still shows up as contention.
func acquireLock(path string) (fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating lock parent dir: %w", err)
	}
	start := time.Now()
	lock, err := platformLock(path, lockTimeout)
	metrics.New().ObserveLockWait(filepath.Base(path), time.Since(start).Seconds())
	return lock, err
}

// withLock acquires an exclusive lock on path, runs fn, and releases the
// lock unconditionally afterward (spec.md §4.1).
func withLock(path string, fn func() error) error {
	lock, err := acquireLock(path)
	if err != nil {
		return fmt.Errorf("%w: acquiring lock on %s: %v", ErrTransientIO, path, err)
	}
	defer lock.Unlock() //nolint:errcheck // best-effort release

	return fn()
}

// WithLock is the exported read-modify-write primitive used by callers that
// need to mutate a JSON file (session records, rate-limit counters,
// tasks/teams) under the file's own exclusive lock.
func WithLock(path string, fn func() error) error {
	return withLock(path, fn)
}

// ErrTransientIO marks lock-timeout and unexpected filesystem errors that a
// caller may retry (spec.md §7).
var ErrTransientIO = fmt.Errorf("transient_io")
