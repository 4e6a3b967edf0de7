// Package driver implements the two host-integration operations that talk
// to something other than the filesystem: opening a new terminal window for
// a spawned session, and waking an idle session's pane so its next hook
// cycle fires. Both have a platform-specific fast path and an unconditional
// fallback so a detection failure never blocks the caller (spec.md §4.3).
package driver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// Layout selects how a new terminal is arranged relative to existing panes.
type Layout string

const (
	LayoutTab   Layout = "tab"
	LayoutSplit Layout = "split"
)

// TerminalResult reports which backend accepted the launch.
type TerminalResult struct {
	Backend string
}

// OpenTerminal detects the running terminal emulator and launches command
// in a new tab or split. When no terminal is detected or the platform
// launcher reports an error, it falls back to a detached background
// subprocess with output redirected to resultPath (spec.md §4.3). The macOS
// launcher is run to completion, so a non-zero exit there triggers the
// fallback; the Linux and Windows launchers are only started, so a launcher
// that starts and later exits non-zero does not.
func OpenTerminal(ctx context.Context, command []string, layout Layout, resultPath string) (*TerminalResult, error) {
	backend, err := openTerminalPlatform(ctx, command, layout)
	if err == nil {
		return &TerminalResult{Backend: backend}, nil
	}

	if ferr := spawnDetached(command, resultPath); ferr != nil {
		return nil, fmt.Errorf("terminal launch failed (%v) and background fallback failed: %w", err, ferr)
	}
	return &TerminalResult{Backend: "background"}, nil
}

// spawnDetached runs command as a background process, redirecting its
// combined output to resultPath. Used both as OpenTerminal's fallback and,
// indirectly, as the shape pipe-mode workers spawn under (internal/worker).
func spawnDetached(command []string, resultPath string) error {
	if len(command) == 0 {
		return fmt.Errorf("empty command")
	}

	out, err := os.OpenFile(resultPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, store.FileMode)
	if err != nil {
		return fmt.Errorf("opening result file %s: %w", resultPath, err)
	}
	defer out.Close()

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdout = out
	cmd.Stderr = out
	detachProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting background process: %w", err)
	}
	return nil
}

// WakeResult reports which channel delivered the wake, or "inbox_fallback"
// when every platform backend failed and the message was appended to the
// session's inbox instead.
type WakeResult struct {
	Backend string
}

// WakeSession sends a single Enter keystroke to session's pane so its next
// hook cycle drains its inbox. message is never typed into the pane; it is
// delivered only through the inbox, removing keystroke injection as an
// attack surface (spec.md §4.3). On any platform-backend failure it appends
// an urgent [WAKE] record to the inbox and reports that fallback — this
// call essentially cannot fail outright.
func WakeSession(root store.Root, bridgeTimeout time.Duration, s *model.Session, message string, now time.Time) (*WakeResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), bridgeTimeout)
	defer cancel()

	backend, err := wakeSessionPlatform(ctx, s)
	if err == nil {
		return &WakeResult{Backend: backend}, nil
	}

	fallbackErr := store.AppendJSONLine(root.InboxPath(s.Session), model.InboxMessage{
		TS:       now,
		From:     "wake",
		Priority: model.PriorityUrgent,
		Content:  "[WAKE] " + message,
	})
	if fallbackErr != nil {
		return nil, fmt.Errorf("wake backend failed (%v) and inbox fallback failed: %w", err, fallbackErr)
	}
	return &WakeResult{Backend: "inbox_fallback"}, nil
}
