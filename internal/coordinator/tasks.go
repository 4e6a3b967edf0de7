package coordinator

import (
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/taskboard"
)

// CreateTask creates a task board entry (spec.md §4.5).
func (c *Coordinator) CreateTask(in taskboard.CreateTaskInput, now time.Time) (*model.Task, error) {
	return taskboard.CreateTask(c.Root, in, now)
}

// UpdateTask mutates a task's status, assignee, or dependency edges.
func (c *Coordinator) UpdateTask(id string, in taskboard.UpdateTaskInput, now time.Time) (*model.Task, error) {
	return taskboard.UpdateTask(c.Root, id, in, now)
}

// GetTask returns a single task record.
func (c *Coordinator) GetTask(id string) (*model.Task, error) {
	return taskboard.GetTask(c.Root, id)
}

// ListTasks returns every task record.
func (c *Coordinator) ListTasks() ([]*model.Task, error) {
	return taskboard.ListTasks(c.Root, c.warnOut())
}

// CreateTeam creates a team, or joins the caller's members into an
// existing one.
func (c *Coordinator) CreateTeam(name, project string, members []string, now time.Time) (*model.Team, error) {
	return taskboard.CreateOrJoinTeam(c.Root, name, project, members, now)
}

// GetTeam returns a single team record.
func (c *Coordinator) GetTeam(name string) (*model.Team, error) {
	return taskboard.GetTeam(c.Root, name)
}

// ListTeams returns every team record.
func (c *Coordinator) ListTeams() ([]*model.Team, error) {
	return taskboard.ListTeams(c.Root, c.warnOut())
}
