//go:build windows

package driver

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/fyrsmithlabs/termcoord/internal/model"
)

// wakeSessionPlatform runs a short PowerShell script that activates the
// window titled "claude-<session>" and sends Enter via SendKeys.
func wakeSessionPlatform(ctx context.Context, s *model.Session) (string, error) {
	title := "claude-" + s.Session
	script := fmt.Sprintf(`
$ws = New-Object -ComObject WScript.Shell
if ($ws.AppActivate('%s')) {
  Start-Sleep -Milliseconds 100
  $ws.SendKeys('~')
} else {
  exit 1
}`, title)

	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("activating window %q: %w", title, err)
	}
	return "window-activation", nil
}
