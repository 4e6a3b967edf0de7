//go:build windows

package driver

import (
	"os/exec"
	"syscall"
)

// detachProcessGroup creates cmd in a new process group so the supervisor
// can later target the whole tree via taskkill (internal/worker's kill
// path) without affecting the coordinator's own console.
func detachProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
