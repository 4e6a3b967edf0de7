//go:build unix

package worker

import (
	"syscall"
	"time"
)

// killPID sends SIGTERM to the process group first (to reach any
// descendants spawned by the model binary), then to the process itself,
// and reports whether the process was alive before the signal.
func killPID(pid int, grace time.Duration) bool {
	wasAlive := isAlive(pid)
	if !wasAlive {
		return false
	}

	syscall.Kill(-pid, syscall.SIGTERM) //nolint:errcheck // group may not exist
	syscall.Kill(pid, syscall.SIGTERM)  //nolint:errcheck // best-effort

	killGraceWait(grace, func() bool { return isAlive(pid) })
	if isAlive(pid) {
		syscall.Kill(pid, syscall.SIGKILL) //nolint:errcheck // last resort
	}
	return true
}

// isAlive reports whether pid refers to a live process, used both by Kill
// and by GetResult's liveness probe for workers with no done marker yet.
func isAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
