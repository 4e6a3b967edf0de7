//go:build darwin

package driver

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/termcoord/internal/model"
)

// wakeSessionPlatform locates the session's tab by TTY path or by a title
// containing "claude-<session>" across iTerm2 then Terminal.app, and writes
// an empty line (Enter) to it.
func wakeSessionPlatform(ctx context.Context, s *model.Session) (string, error) {
	tabTitle := "claude-" + s.Session

	itermScript := fmt.Sprintf(`
tell application "iTerm"
  repeat with w in windows
    repeat with t in tabs of w
      repeat with sess in sessions of t
        if (tty of sess is "%s") or (name of t contains "%s") then
          tell sess to write text ""
          return "found"
        end if
      end repeat
    end repeat
  end repeat
  error "not found"
end tell`, s.TTY, tabTitle)

	if err := runOsascript(ctx, itermScript); err == nil {
		return "iterm2", nil
	}

	terminalScript := fmt.Sprintf(`
tell application "Terminal"
  repeat with w in windows
    repeat with t in tabs of w
      if (tty of t is "%s") or (custom title of t contains "%s") then
        tell application "System Events" to keystroke return
        return "found"
      end if
    end repeat
  end repeat
  error "not found"
end tell`, s.TTY, tabTitle)

	if err := runOsascript(ctx, terminalScript); err == nil {
		return "terminal.app", nil
	}

	return "", fmt.Errorf("no scripting-bridge target found for session %s", s.Session)
}
