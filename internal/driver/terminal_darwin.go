//go:build darwin

package driver

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// openTerminalPlatform asks iTerm2 first (if running), then falls back to
// Terminal.app, via AppleScript. Both always open a new window; layout is
// accepted for interface symmetry with the Linux/Windows backends but has
// no effect here — neither scripting dictionary exposes a tab-vs-split
// argument worth the complexity for a single-shot worker launch.
func openTerminalPlatform(ctx context.Context, command []string, layout Layout) (string, error) {
	script := strings.Join(command, " ")

	if isRunning("iTerm") {
		if err := runOsascript(ctx, fmt.Sprintf(`
tell application "iTerm"
  set newWindow to (create window with default profile)
  tell current session of newWindow
    write text "%s"
  end tell
end tell`, escapeAppleScript(script))); err == nil {
			return "iterm2", nil
		}
	}

	if err := runOsascript(ctx, fmt.Sprintf(`
tell application "Terminal"
  do script "%s"
  activate
end tell`, escapeAppleScript(script))); err == nil {
		return "terminal.app", nil
	}

	return "", fmt.Errorf("no supported terminal emulator accepted the launch")
}

func isRunning(appName string) bool {
	out, err := exec.Command("osascript", "-e", fmt.Sprintf(`application "%s" is running`, appName)).Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

func runOsascript(ctx context.Context, script string) error {
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
