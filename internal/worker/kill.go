package worker

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// KillResult reports whether a worker was alive at the moment Kill ran.
type KillResult struct {
	WasAlive bool
}

// Kill reads the worker's PID file and terminates it: SIGTERM to the
// process group then the process on POSIX, a platform tree-kill on
// Windows. A worker with no PID file is reported as already terminated
// rather than erroring (spec.md §8: "kill_worker on an already-terminated
// worker returns a well-formed not-alive response").
func Kill(root store.Root, cfg *config.Config, taskID string) (*KillResult, error) {
	if err := store.ValidateTaskID(taskID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(root.PIDPath(taskID))
	if err != nil {
		if os.IsNotExist(err) {
			return &KillResult{WasAlive: false}, nil
		}
		return nil, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return &KillResult{WasAlive: false}, nil
	}

	alive := killPID(pid, cfg.Worker.KillGrace)
	return &KillResult{WasAlive: alive}, nil
}

// killGraceWait gives the process a moment to exit the normal way (and
// remove its own PID file) before this function's caller treats the target
// as still alive.
func killGraceWait(grace time.Duration, stillAlive func() bool) {
	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		if !stillAlive() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
