//go:build unix

package driver

import (
	"os/exec"
	"syscall"
)

// detachProcessGroup puts cmd in its own process group so the supervisor can
// later signal the whole group (internal/worker's kill path) without
// affecting the coordinator's own process tree.
func detachProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
