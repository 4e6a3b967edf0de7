//go:build unix

package store

import (
	"os"
	"syscall"
	"time"
)

// unixFlock wraps an exclusively-flocked sidecar file, grounded on the
// flock idiom used throughout the pack for JSONL/inbox files (see
// DESIGN.md: telnet2-opencode's internal/storage/lock.go and
// tim-coutinho-agentops's cmd/ao/inbox.go).
type unixFlock struct {
	f *os.File
}

func (l *unixFlock) Unlock() error {
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	return l.f.Close()
}

// platformLock acquires an exclusive syscall.Flock on path+".lock",
// retrying with backoff until timeout elapses.
func platformLock(path string, timeout time.Duration) (fileLock, error) {
	lockPath := path + ".lock"
	deadline := time.Now().Add(timeout)

	backoff := 5 * time.Millisecond
	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
		if err != nil {
			return nil, err
		}

		ferr := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if ferr == nil {
			return &unixFlock{f: f}, nil
		}
		f.Close()

		if time.Now().After(deadline) {
			return nil, ferr
		}
		time.Sleep(backoff)
		if backoff < 100*time.Millisecond {
			backoff *= 2
		}
	}
}
