//go:build windows

package driver

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// openTerminalPlatform prefers Windows Terminal (wt.exe) and falls back to
// a plain "cmd /c start" window.
func openTerminalPlatform(ctx context.Context, command []string, layout Layout) (string, error) {
	joined := strings.Join(command, " ")

	if path, err := exec.LookPath("wt.exe"); err == nil {
		args := []string{}
		if layout == LayoutSplit {
			args = append(args, "split-pane")
		} else {
			args = append(args, "new-tab")
		}
		args = append(args, command...)
		cmd := exec.CommandContext(ctx, path, args...)
		detachProcessGroup(cmd)
		if err := cmd.Start(); err == nil {
			return "windows-terminal", nil
		}
	}

	cmd := exec.CommandContext(ctx, "cmd", "/c", "start", "", "cmd", "/c", joined)
	detachProcessGroup(cmd)
	if err := cmd.Start(); err == nil {
		return "cmd", nil
	}

	return "", fmt.Errorf("no supported terminal emulator accepted the launch")
}
