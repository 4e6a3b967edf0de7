package worker

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/driver"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// parentSessionEnvVar is unset in every spawned child's environment so a
// subordinate worker is never mistaken for its parent session (spec.md
// §4.4 invariant 6).
const parentSessionEnvVar = "CLAUDE_SESSION_ID"

// Spawn writes the meta file, prompt file, and optional isolation worktree,
// then launches the child in a terminal (falling back to a detached
// background subprocess per internal/driver). It never blocks on the
// child's completion; that is observed later via the done marker.
func Spawn(ctx context.Context, root store.Root, cfg *config.Config, spec SpawnSpec, now time.Time) (*model.WorkerMeta, error) {
	if err := spec.validate(cfg); err != nil {
		return nil, err
	}
	if store.Exists(root.MetaPath(spec.TaskID)) {
		return nil, fmt.Errorf("conflict: task_id %q already in use", spec.TaskID)
	}

	if spec.NotifySessionID != "" {
		spec.NotifySessionID = store.ShortID(spec.NotifySessionID)
	}

	directory := spec.Directory
	if spec.Isolate {
		worktreePath, err := createIsolationWorktree(directory, spec.TaskID, cfg.Worker.SpawnTimeout)
		if err != nil {
			return nil, fmt.Errorf("spawn_failed: creating isolation worktree: %w", err)
		}
		directory = worktreePath
	}

	meta := &model.WorkerMeta{
		TaskID:          spec.TaskID,
		Directory:       directory,
		PromptExcerpt:   promptExcerpt(spec.Prompt),
		Model:           spec.Model,
		Agent:           spec.Agent,
		Mode:            spec.Mode,
		Spawned:         now,
		NotifySessionID: spec.NotifySessionID,
		Status:          model.WorkerRunning,
		PipelineID:      spec.PipelineID,
		StepName:        spec.StepName,
	}

	// The meta file must exist before the child is spawned (spec.md §4.4
	// invariant 1), so the coordinator can report a worker as "running"
	// the instant the launch command returns.
	if err := store.SafeWriteJSON(root.MetaPath(spec.TaskID), meta); err != nil {
		return nil, fmt.Errorf("spawn_failed: %w", err)
	}
	if err := store.SafeWrite(root.PromptPath(spec.TaskID), []byte(spec.Prompt)); err != nil {
		removeMetaOnFailure(root, spec.TaskID)
		return nil, fmt.Errorf("spawn_failed: writing prompt file: %w", err)
	}

	command := buildLaunchCommand(cfg, root, spec, directory)
	if _, err := driver.OpenTerminal(ctx, command, driver.LayoutTab, root.ResultTextPath(spec.TaskID)); err != nil {
		removeMetaOnFailure(root, spec.TaskID)
		return nil, fmt.Errorf("spawn_failed: %w", err)
	}

	return meta, nil
}

// removeMetaOnFailure undoes the meta file write when a later spawn step
// fails; a failed spawn must leave no meta behind (spec.md §7).
func removeMetaOnFailure(root store.Root, taskID string) {
	os.Remove(root.MetaPath(taskID))
	os.Remove(root.PromptPath(taskID))
}

// buildLaunchCommand assembles the child's shell command: unset the
// parent's session identity, write the PID, run the model binary, then
// write the done marker and clean up the PID file regardless of the model
// binary's exit status (spec.md §4.4 invariants 4-6). The task id, model
// and agent have already passed SpawnSpec.validate; the directory is not
// validated there. Every substituted value except the task id goes through
// shellQuote.
func buildLaunchCommand(cfg *config.Config, root store.Root, spec SpawnSpec, directory string) []string {
	modelArgs := []string{cfg.Worker.Binary, "--print", "--prompt-file", root.PromptPath(spec.TaskID)}
	if spec.Model != "" {
		modelArgs = append(modelArgs, "--model", spec.Model)
	}
	if spec.Agent != "" {
		modelArgs = append(modelArgs, "--agent", spec.Agent)
	}
	if spec.Mode == model.ModePipe {
		modelArgs = append(modelArgs, "--no-hooks")
	}

	quoted := make([]string, len(modelArgs))
	for i, a := range modelArgs {
		quoted[i] = shellQuote(a)
	}

	script := fmt.Sprintf(
		`cd %s && unset %s && echo $$ > %s; %s; code=$?; printf '{"status":"completed","finished":"%%s","task_id":"%s","exit_code":%%d}' "$(date -u +%%Y-%%m-%%dT%%H:%%M:%%SZ)" $code > %s; rm -f %s; exit $code`,
		shellQuote(directory),
		parentSessionEnvVar,
		shellQuote(root.PIDPath(spec.TaskID)),
		strings.Join(quoted, " "),
		spec.TaskID,
		shellQuote(root.DonePath(spec.TaskID)),
		shellQuote(root.PIDPath(spec.TaskID)),
	)
	return []string{"sh", "-c", script}
}

// shellQuote wraps s in single quotes, escaping any embedded single quote.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
