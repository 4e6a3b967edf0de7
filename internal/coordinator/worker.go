package coordinator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/termcoord/internal/driver"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/worker"
)

// SpawnTerminal opens a plain interactive shell pane in directory. Unlike
// spawn_worker it tracks no meta/done artifact; it exists purely to put a
// terminal somewhere for a human.
func (c *Coordinator) SpawnTerminal(ctx context.Context, directory string, layout driver.Layout) (*driver.TerminalResult, error) {
	if layout == "" {
		layout = driver.LayoutTab
	}
	id := "terminal-" + uuid.NewString()[:8]
	command := []string{"sh", "-c", fmt.Sprintf("cd %s && exec ${SHELL:-sh}", shellQuote(directory))}

	res, err := driver.OpenTerminal(ctx, command, layout, c.Root.ResultTextPath(id))
	if err != nil {
		return nil, fmt.Errorf("spawn_failed: %w", err)
	}
	return res, nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// SpawnWorker spawns a pipe or interactive worker (spec.md §4.4, §4.5).
func (c *Coordinator) SpawnWorker(ctx context.Context, spec worker.SpawnSpec, now time.Time) (*model.WorkerMeta, error) {
	if spec.TaskID == "" {
		spec.TaskID = uuid.NewString()
	}
	return worker.Spawn(ctx, c.Root, c.Config, spec, now)
}

// GetResult reports a worker's status and tails its result text (spec.md
// §4.5).
func (c *Coordinator) GetResult(taskID string, tailLines int) (*worker.Result, error) {
	return worker.GetResult(c.Root, taskID, tailLines)
}

// KillWorker terminates a worker's process tree (spec.md §4.4).
func (c *Coordinator) KillWorker(taskID string) (*worker.KillResult, error) {
	return worker.Kill(c.Root, c.Config, taskID)
}

// WakeSession nudges an idle session's pane (spec.md §4.3).
func (c *Coordinator) WakeSession(sessionID, message string, now time.Time) (*driver.WakeResult, error) {
	s, err := c.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	res, err := driver.WakeSession(c.Root, c.Config.Wake.BridgeTimeout, s, message, now)
	if err != nil {
		return nil, fmt.Errorf("wake_failed_fell_back: %w", err)
	}
	return res, nil
}

// RunPipeline executes an ordered sequence of pipe-worker steps (spec.md
// §4.4).
func (c *Coordinator) RunPipeline(ctx context.Context, pipelineID, directory string, steps []model.PipelineStepSpec, now time.Time) (*model.PipelineMeta, error) {
	if pipelineID == "" {
		pipelineID = uuid.NewString()
	}
	return worker.RunPipeline(ctx, c.Root, c.Config, pipelineID, directory, steps, now)
}

// GetPipeline reports a pipeline's aggregate and per-step status (spec.md
// §4.5).
func (c *Coordinator) GetPipeline(pipelineID string) (*model.PipelineMeta, *model.PipelineDone, []model.WorkerStatus, error) {
	return worker.GetPipeline(c.Root, pipelineID)
}

// SendDirective delivers content to a worker's own session inbox, waking
// it first if it looks idle (spec.md §4.5, §4.3). Idleness is judged by
// comparing last_active against the heartbeat rate-limit window plus a
// grace period, not OS process state — a worker between tool calls is
// "idle" from the hook's perspective even though its process is alive.
func (c *Coordinator) SendDirective(workerID, content string, priority model.MessagePriority, now time.Time) error {
	s, err := c.GetSession(workerID)
	if err != nil {
		return err
	}

	if c.isIdle(s, now) {
		if _, err := driver.WakeSession(c.Root, c.Config.Wake.BridgeTimeout, s, content, now); err != nil {
			return fmt.Errorf("wake_failed_fell_back: %w", err)
		}
	}

	return c.SendMessage("coordinator", workerID, content, priority, now)
}

// directiveIdleGrace is added atop the heartbeat window before a worker is
// considered idle enough to need waking: a session exactly at the window
// boundary is mid-tool-call, not stalled.
const directiveIdleGrace = 2 * time.Second

func (c *Coordinator) isIdle(s *model.Session, now time.Time) bool {
	return now.Sub(s.LastActive) > c.Config.Heartbeat.RateLimitWindow+directiveIdleGrace
}
