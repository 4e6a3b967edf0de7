//go:build linux

package driver

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/fyrsmithlabs/termcoord/internal/model"
)

// ttyPattern matches the character-device tty paths this backend will
// write to directly (spec.md §4.3).
var ttyPattern = regexp.MustCompile(`^/dev/(tty[s]?\d+|pts/\d+)$`)

func wakeSessionPlatform(ctx context.Context, s *model.Session) (string, error) {
	if s.TTY == "" || !ttyPattern.MatchString(s.TTY) {
		return "", fmt.Errorf("session tty %q is not a recognized character device path", s.TTY)
	}

	info, err := os.Stat(s.TTY)
	if err != nil {
		return "", fmt.Errorf("stat tty %s: %w", s.TTY, err)
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return "", fmt.Errorf("%s is not a character device", s.TTY)
	}

	f, err := os.OpenFile(s.TTY, os.O_WRONLY, 0)
	if err != nil {
		return "", fmt.Errorf("opening tty %s: %w", s.TTY, err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n"); err != nil {
		return "", fmt.Errorf("writing to tty %s: %w", s.TTY, err)
	}
	return "tty", nil
}
