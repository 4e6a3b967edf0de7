package worker

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// Result is the aggregate the get_result RPC returns: the worker's status,
// its done record if finished, and the (optionally tailed) result text.
type Result struct {
	Meta   model.WorkerMeta
	Done   *model.WorkerDone
	Status model.WorkerStatus
	Text   string
}

// GetResult reports a worker's current status by reading its meta and done
// files, probing the PID file's liveness when no done marker exists yet,
// and tailing the result file to tailLines (0 returns the whole file). It
// never blocks waiting for completion.
func GetResult(root store.Root, taskID string, tailLines int) (*Result, error) {
	if err := store.ValidateTaskID(taskID); err != nil {
		return nil, err
	}

	var meta model.WorkerMeta
	if err := store.ReadJSON(root.MetaPath(taskID), &meta); err != nil {
		return nil, fmt.Errorf("not_found: worker %q", taskID)
	}

	res := &Result{Meta: meta, Status: statusOf(root, taskID)}

	if res.Status != model.WorkerRunning {
		var done model.WorkerDone
		if err := store.ReadJSON(root.DonePath(taskID), &done); err == nil {
			res.Done = &done
			if res.Status == model.WorkerUnknown && done.Status != "" {
				res.Status = done.Status
			}
		}
	}

	if data, err := os.ReadFile(root.ResultTextPath(taskID)); err == nil {
		res.Text = tail(string(data), tailLines)
	}

	return res, nil
}

// statusOf derives running/completed/unknown from the done marker and,
// absent one, a liveness probe of the recorded PID (spec.md §4.5).
func statusOf(root store.Root, taskID string) model.WorkerStatus {
	if store.Exists(root.DonePath(taskID)) {
		return model.WorkerCompleted
	}

	data, err := os.ReadFile(root.PIDPath(taskID))
	if err != nil {
		return model.WorkerUnknown
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || !isAlive(pid) {
		return model.WorkerUnknown
	}
	return model.WorkerRunning
}

// tail returns the last n lines of s, not counting trailing newlines, or all
// of s if n <= 0 or s has no more than n lines. Empty lines inside s count.
func tail(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
