package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// pollInterval is how often RunPipeline checks a running step's done marker.
const pollInterval = 250 * time.Millisecond

// RunPipeline executes steps sequentially as pipe workers: each step spawns,
// blocks until its done marker appears (or the pipeline context is
// cancelled), then the next step starts. A step failure marks the whole
// pipeline failed and halts remaining steps (spec.md §4.4).
func RunPipeline(ctx context.Context, root store.Root, cfg *config.Config, pipelineID, directory string, steps []model.PipelineStepSpec, now time.Time) (*model.PipelineMeta, error) {
	if err := store.ValidateTaskID(pipelineID); err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("invalid_argument: pipeline has no steps")
	}

	stepIDs := make([]string, len(steps))
	for i, step := range steps {
		stepIDs[i] = fmt.Sprintf("%s-%02d-%s", pipelineID, i, step.Name)
	}

	meta := &model.PipelineMeta{
		PipelineID: pipelineID,
		Directory:  directory,
		Steps:      steps,
		StepIDs:    stepIDs,
		Status:     model.PipelineRunning,
		Started:    now,
	}
	if err := store.SafeWriteJSON(root.MetaPath(pipelineID), meta); err != nil {
		return nil, fmt.Errorf("spawn_failed: %w", err)
	}

	for i, step := range steps {
		stepDir := step.Directory
		if stepDir == "" {
			stepDir = directory
		}

		// Each step runs inside its own single-goroutine errgroup so the
		// pipeline's outer ctx is what ultimately governs cancellation,
		// while the group's derived context aborts the step's spawn and
		// wait together the instant either the step fails or the caller
		// cancels. Steps still run strictly one at a time: the next
		// iteration does not start until g.Wait returns.
		g, gctx := errgroup.WithContext(ctx)
		stepID := stepIDs[i]
		g.Go(func() error {
			spec := SpawnSpec{
				TaskID:     stepID,
				Directory:  stepDir,
				Prompt:     step.Prompt,
				Mode:       model.ModePipe,
				PipelineID: pipelineID,
				StepName:   step.Name,
			}
			if _, err := Spawn(gctx, root, cfg, spec, now); err != nil {
				return fmt.Errorf("step %s: %w", step.Name, err)
			}
			return waitForDone(gctx, root, stepID)
		})
		if err := g.Wait(); err != nil {
			finishPipeline(root, pipelineID, model.PipelineFailed, step.Name, now)
			return meta, err
		}
	}

	finishPipeline(root, pipelineID, model.PipelineCompleted, "", now)
	return meta, nil
}

// waitForDone polls for a step's done marker until it appears or ctx is
// cancelled.
func waitForDone(ctx context.Context, root store.Root, taskID string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if store.Exists(root.DonePath(taskID)) {
			var done model.WorkerDone
			if err := store.ReadJSON(root.DonePath(taskID), &done); err == nil && done.ExitCode != 0 {
				return fmt.Errorf("step %s exited with code %d", taskID, done.ExitCode)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func finishPipeline(root store.Root, pipelineID string, status model.PipelineStatus, failedStep string, finished time.Time) {
	done := model.PipelineDone{Status: status, Finished: finished, Failed: failedStep}
	store.SafeWriteJSON(root.DonePath(pipelineID), done) //nolint:errcheck // best-effort terminal marker
}

// GetPipeline aggregates a pipeline's meta and per-step status for the
// get_pipeline RPC.
func GetPipeline(root store.Root, pipelineID string) (*model.PipelineMeta, *model.PipelineDone, []model.WorkerStatus, error) {
	if err := store.ValidateTaskID(pipelineID); err != nil {
		return nil, nil, nil, err
	}

	var meta model.PipelineMeta
	if err := store.ReadJSON(root.MetaPath(pipelineID), &meta); err != nil {
		return nil, nil, nil, fmt.Errorf("not_found: pipeline %q", pipelineID)
	}

	var done *model.PipelineDone
	if store.Exists(root.DonePath(pipelineID)) {
		var d model.PipelineDone
		if err := store.ReadJSON(root.DonePath(pipelineID), &d); err == nil {
			done = &d
		}
	}

	statuses := make([]model.WorkerStatus, len(meta.StepIDs))
	for i, stepID := range meta.StepIDs {
		statuses[i] = stepStatus(root, stepID)
	}
	return &meta, done, statuses, nil
}

func stepStatus(root store.Root, taskID string) model.WorkerStatus {
	if store.Exists(root.DonePath(taskID)) {
		return model.WorkerCompleted
	}
	if store.Exists(root.MetaPath(taskID)) {
		return model.WorkerRunning
	}
	return model.WorkerUnknown
}
