//go:build !unix && !windows

package worker

import "time"

// killPID has no backend on unrecognized platforms; Kill always reports
// the target as not alive rather than attempting an unsupported signal.
func killPID(pid int, grace time.Duration) bool {
	return false
}

func isAlive(pid int) bool {
	return false
}
