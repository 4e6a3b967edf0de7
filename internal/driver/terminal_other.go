//go:build !linux && !darwin && !windows

package driver

import (
	"context"
	"fmt"
)

// openTerminalPlatform has no backend on unrecognized platforms; OpenTerminal
// always falls through to the detached-subprocess fallback.
func openTerminalPlatform(ctx context.Context, command []string, layout Layout) (string, error) {
	return "", fmt.Errorf("no terminal backend for this platform")
}
