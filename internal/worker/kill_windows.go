//go:build windows

package worker

import (
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// killPID invokes taskkill's tree-kill mode, which is the platform's
// closest analog to a POSIX process-group signal.
func killPID(pid int, grace time.Duration) bool {
	wasAlive := isAlive(pid)
	if !wasAlive {
		return false
	}

	exec.Command("taskkill", "/T", "/PID", strconv.Itoa(pid)).Run() //nolint:errcheck

	killGraceWait(grace, func() bool { return isAlive(pid) })
	if isAlive(pid) {
		exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid)).Run() //nolint:errcheck
	}
	return true
}

// isAlive shells out to tasklist and checks whether the PID appears in its
// filtered output, used both by Kill and by GetResult's liveness probe.
func isAlive(pid int) bool {
	out, err := exec.Command("tasklist", "/FI", "PID eq "+strconv.Itoa(pid)).Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), strconv.Itoa(pid))
}
