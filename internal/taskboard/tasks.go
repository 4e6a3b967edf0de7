package taskboard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// CreateTaskInput is the validated create_task request.
type CreateTaskInput struct {
	ID        string
	Subject   string
	Assignee  string
	BlockedBy []string
}

// CreateTask writes a new task record, rejecting an id collision with
// conflict and any blocked_by edge that would form a cycle.
func CreateTask(root store.Root, in CreateTaskInput, now time.Time) (*model.Task, error) {
	if err := store.ValidateTaskID(in.ID); err != nil {
		return nil, err
	}
	if in.Subject == "" {
		return nil, fmt.Errorf("invalid_argument: subject must not be empty")
	}
	for _, dep := range in.BlockedBy {
		if err := store.ValidateTaskID(dep); err != nil {
			return nil, err
		}
	}

	var task *model.Task
	err := store.WithLock(root.TaskPath(in.ID), func() error {
		if store.Exists(root.TaskPath(in.ID)) {
			return fmt.Errorf("conflict: task_id %q already in use", in.ID)
		}
		if err := checkCycle(root, in.ID, in.BlockedBy); err != nil {
			return err
		}

		task = &model.Task{
			ID:        in.ID,
			Subject:   in.Subject,
			Assignee:  in.Assignee,
			Status:    model.TaskPending,
			BlockedBy: in.BlockedBy,
			Created:   now,
			Updated:   now,
		}
		return store.SafeWriteJSON(root.TaskPath(in.ID), task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskInput carries only the fields the caller wants to change;
// nil/absent fields leave the existing value untouched.
type UpdateTaskInput struct {
	Status    *model.TaskStatus
	Assignee  *string
	BlockedBy *[]string
}

// UpdateTask mutates an existing task under its file lock, re-running the
// cycle check whenever BlockedBy changes.
func UpdateTask(root store.Root, id string, in UpdateTaskInput, now time.Time) (*model.Task, error) {
	if err := store.ValidateTaskID(id); err != nil {
		return nil, err
	}
	if in.BlockedBy != nil {
		for _, dep := range *in.BlockedBy {
			if err := store.ValidateTaskID(dep); err != nil {
				return nil, err
			}
		}
	}

	var task model.Task
	err := store.WithLock(root.TaskPath(id), func() error {
		if err := store.ReadJSON(root.TaskPath(id), &task); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("not_found: task %q", id)
			}
			return err
		}

		if in.BlockedBy != nil {
			if err := checkCycle(root, id, *in.BlockedBy); err != nil {
				return err
			}
			task.BlockedBy = *in.BlockedBy
		}
		if in.Status != nil {
			task.Status = *in.Status
		}
		if in.Assignee != nil {
			task.Assignee = *in.Assignee
		}
		task.Updated = now
		return store.SafeWriteJSON(root.TaskPath(id), &task)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask reads a single task record.
func GetTask(root store.Root, id string) (*model.Task, error) {
	if err := store.ValidateTaskID(id); err != nil {
		return nil, err
	}
	var task model.Task
	if err := store.ReadJSON(root.TaskPath(id), &task); err != nil {
		return nil, fmt.Errorf("not_found: task %q", id)
	}
	return &task, nil
}

// ListTasks reads every task record, best-effort skipping malformed files.
func ListTasks(root store.Root, warnOut io.Writer) ([]*model.Task, error) {
	matches, err := filepath.Glob(filepath.Join(root.TasksDir(), "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	out := make([]*model.Task, 0, len(matches))
	for _, path := range matches {
		var t model.Task
		if err := store.ReadJSON(path, &t); err != nil {
			if warnOut != nil {
				fmt.Fprintf(warnOut, "taskboard: skipping malformed task record %s: %v\n", path, err)
			}
			continue
		}
		out = append(out, &t)
	}
	return out, nil
}

// checkCycle rejects a blocked_by edge set that would make id reachable
// from itself via blocked_by edges, computed by BFS over the existing task
// graph plus the candidate edges (spec.md §9 "Cycles").
func checkCycle(root store.Root, id string, blockedBy []string) error {
	visited := map[string]bool{id: true}
	queue := append([]string{}, blockedBy...)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == id {
			return fmt.Errorf("conflict: blocked_by edge from %q would create a cycle", id)
		}
		if visited[next] {
			continue
		}
		visited[next] = true

		var dep model.Task
		if err := store.ReadJSON(root.TaskPath(next), &dep); err != nil {
			continue // referenced task absent or unreadable; nothing further to traverse
		}
		queue = append(queue, dep.BlockedBy...)
	}
	return nil
}
