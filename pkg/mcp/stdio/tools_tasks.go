package stdio

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/taskboard"
)

func (s *Server) registerTaskTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_create_task",
		Description: "Create a task board entry.",
	}, s.handleCreateTask)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_update_task",
		Description: "Update a task's status, assignee, or dependencies.",
	}, s.handleUpdateTask)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_list_tasks",
		Description: "List every task.",
	}, s.handleListTasks)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_get_task",
		Description: "Get a single task by id.",
	}, s.handleGetTask)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_create_team",
		Description: "Create a team, or join members into an existing one.",
	}, s.handleCreateTeam)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_get_team",
		Description: "Get a single team by name.",
	}, s.handleGetTeam)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_list_teams",
		Description: "List every team.",
	}, s.handleListTeams)
}

type CreateTaskParams struct {
	ID        string   `json:"id" jsonschema:"Task identifier"`
	Subject   string   `json:"subject" jsonschema:"Task subject"`
	Assignee  string   `json:"assignee,omitempty" jsonschema:"Session id of the assignee"`
	BlockedBy []string `json:"blocked_by,omitempty" jsonschema:"Task ids this task depends on"`
}

// UpdateTaskParams leaves status/assignee/blocked_by untouched when the
// field is empty — there is no distinct "clear this field" input in this
// simplified RPC surface; a task is retired via its status, not by
// blanking its assignee.
type UpdateTaskParams struct {
	ID        string   `json:"id" jsonschema:"Task identifier"`
	Status    string   `json:"status,omitempty" jsonschema:"pending, in_progress, completed, or blocked"`
	Assignee  string   `json:"assignee,omitempty" jsonschema:"Session id of the assignee"`
	BlockedBy []string `json:"blocked_by,omitempty" jsonschema:"Replacement list of task ids this task depends on"`
}

type GetTaskParams struct {
	ID string `json:"id" jsonschema:"Task identifier"`
}

type CreateTeamParams struct {
	Name    string   `json:"name" jsonschema:"Team name"`
	Project string   `json:"project,omitempty" jsonschema:"Project the team works on"`
	Members []string `json:"members,omitempty" jsonschema:"Session ids to add as members"`
}

type GetTeamParams struct {
	Name string `json:"name" jsonschema:"Team name"`
}

func (s *Server) handleCreateTask(ctx context.Context, req *mcpsdk.CallToolRequest, params *CreateTaskParams) (*mcpsdk.CallToolResult, any, error) {
	task, err := s.coord.CreateTask(taskboard.CreateTaskInput{
		ID:        params.ID,
		Subject:   params.Subject,
		Assignee:  params.Assignee,
		BlockedBy: params.BlockedBy,
	}, time.Now())
	s.recordOutcome("create_task", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("created %s [%s]", task.ID, task.Status)), nil, nil
}

func (s *Server) handleUpdateTask(ctx context.Context, req *mcpsdk.CallToolRequest, params *UpdateTaskParams) (*mcpsdk.CallToolResult, any, error) {
	in := taskboard.UpdateTaskInput{}
	if params.Status != "" {
		status := model.TaskStatus(params.Status)
		in.Status = &status
	}
	if params.Assignee != "" {
		in.Assignee = &params.Assignee
	}
	if len(params.BlockedBy) > 0 {
		in.BlockedBy = &params.BlockedBy
	}

	task, err := s.coord.UpdateTask(params.ID, in, time.Now())
	s.recordOutcome("update_task", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("updated %s [%s]", task.ID, task.Status)), nil, nil
}

func (s *Server) handleListTasks(ctx context.Context, req *mcpsdk.CallToolRequest, params *emptyParams) (*mcpsdk.CallToolResult, any, error) {
	tasks, err := s.coord.ListTasks()
	s.recordOutcome("list_tasks", err)
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d task(s)\n", len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(&b, "- %s [%s] %s assignee=%s\n", t.ID, t.Status, t.Subject, t.Assignee)
	}
	return textResult(b.String()), nil, nil
}

func (s *Server) handleGetTask(ctx context.Context, req *mcpsdk.CallToolRequest, params *GetTaskParams) (*mcpsdk.CallToolResult, any, error) {
	task, err := s.coord.GetTask(params.ID)
	s.recordOutcome("get_task", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("%s [%s] %s blocked_by=%v", task.ID, task.Status, task.Subject, task.BlockedBy)), nil, nil
}

func (s *Server) handleCreateTeam(ctx context.Context, req *mcpsdk.CallToolRequest, params *CreateTeamParams) (*mcpsdk.CallToolResult, any, error) {
	team, err := s.coord.CreateTeam(params.Name, params.Project, params.Members, time.Now())
	s.recordOutcome("create_team", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("%s members=%v", team.Name, team.Members)), nil, nil
}

func (s *Server) handleGetTeam(ctx context.Context, req *mcpsdk.CallToolRequest, params *GetTeamParams) (*mcpsdk.CallToolResult, any, error) {
	team, err := s.coord.GetTeam(params.Name)
	s.recordOutcome("get_team", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("%s project=%s members=%v", team.Name, team.Project, team.Members)), nil, nil
}

func (s *Server) handleListTeams(ctx context.Context, req *mcpsdk.CallToolRequest, params *emptyParams) (*mcpsdk.CallToolResult, any, error) {
	teams, err := s.coord.ListTeams()
	s.recordOutcome("list_teams", err)
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d team(s)\n", len(teams))
	for _, t := range teams {
		fmt.Fprintf(&b, "- %s project=%s members=%v\n", t.Name, t.Project, t.Members)
	}
	return textResult(b.String()), nil, nil
}
