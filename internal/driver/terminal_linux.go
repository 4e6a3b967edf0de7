//go:build linux

package driver

import (
	"context"
	"fmt"
	"os/exec"
)

// linuxTerminals lists emulators in detection priority order. Each entry's
// args launch command in a new window; tab/split layout is best-effort
// (gnome-terminal supports --tab, the rest only ever open a new window).
var linuxTerminals = []struct {
	name string
	args func(command []string, layout Layout) []string
}{
	{"gnome-terminal", func(command []string, layout Layout) []string {
		args := []string{}
		if layout == LayoutTab {
			args = append(args, "--tab")
		}
		args = append(args, "--")
		return append(args, command...)
	}},
	{"konsole", func(command []string, layout Layout) []string {
		return append([]string{"-e"}, command...)
	}},
	{"kitty", func(command []string, layout Layout) []string {
		return command
	}},
	{"alacritty", func(command []string, layout Layout) []string {
		return append([]string{"-e"}, command...)
	}},
	{"xterm", func(command []string, layout Layout) []string {
		return append([]string{"-e"}, command...)
	}},
}

func openTerminalPlatform(ctx context.Context, command []string, layout Layout) (string, error) {
	for _, term := range linuxTerminals {
		path, err := exec.LookPath(term.name)
		if err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, path, term.args(command, layout)...)
		detachProcessGroup(cmd)
		if err := cmd.Start(); err != nil {
			continue
		}
		return term.name, nil
	}
	return "", fmt.Errorf("no supported terminal emulator found in PATH")
}
