//go:build !linux && !darwin && !windows

package driver

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/termcoord/internal/model"
)

// wakeSessionPlatform has no backend on unrecognized platforms; WakeSession
// always falls through to the urgent inbox-message fallback.
func wakeSessionPlatform(ctx context.Context, s *model.Session) (string, error) {
	return "", fmt.Errorf("no wake backend for this platform")
}
