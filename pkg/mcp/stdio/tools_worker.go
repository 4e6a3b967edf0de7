package stdio

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/termcoord/internal/driver"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/worker"
)

func (s *Server) registerWorkerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_spawn_terminal",
		Description: "Open an interactive terminal pane in a directory.",
	}, s.handleSpawnTerminal)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_spawn_worker",
		Description: "Spawn a pipe or interactive worker to run a prompt in a directory.",
	}, s.handleSpawnWorker)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_get_result",
		Description: "Report a worker's status and tail its result text.",
	}, s.handleGetResult)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_kill_worker",
		Description: "Terminate a worker's process tree.",
	}, s.handleKillWorker)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_wake_session",
		Description: "Wake an idle session's pane.",
	}, s.handleWakeSession)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_run_pipeline",
		Description: "Run an ordered sequence of pipe-worker steps, one at a time.",
	}, s.handleRunPipeline)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_get_pipeline",
		Description: "Report a pipeline's aggregate and per-step status.",
	}, s.handleGetPipeline)
}

type SpawnTerminalParams struct {
	Directory string `json:"directory" jsonschema:"Working directory for the new pane"`
	Layout    string `json:"layout,omitempty" jsonschema:"tab or split (default tab)"`
}

type SpawnWorkerParams struct {
	Directory       string `json:"directory" jsonschema:"Working directory for the worker"`
	Prompt          string `json:"prompt" jsonschema:"Prompt given to the worker"`
	Model           string `json:"model,omitempty" jsonschema:"Allowlisted model name"`
	Agent           string `json:"agent,omitempty" jsonschema:"Allowlisted agent name"`
	TaskID          string `json:"task_id,omitempty" jsonschema:"Identifier for this worker (generated if omitted)"`
	Mode            string `json:"mode,omitempty" jsonschema:"pipe or interactive (default pipe)"`
	Isolate         bool   `json:"isolate,omitempty" jsonschema:"Spawn in an isolated git worktree"`
	NotifySessionID string `json:"notify_session_id,omitempty" jsonschema:"Session to notify on completion"`
}

type GetResultParams struct {
	TaskID    string `json:"task_id" jsonschema:"Worker task id"`
	TailLines int    `json:"tail_lines,omitempty" jsonschema:"Number of trailing result lines to include"`
}

type KillWorkerParams struct {
	TaskID string `json:"task_id" jsonschema:"Worker task id"`
}

type WakeSessionParams struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier"`
	Message   string `json:"message" jsonschema:"Message delivered alongside the wake"`
}

type PipelineStepParams struct {
	Name      string `json:"name" jsonschema:"Step name"`
	Prompt    string `json:"prompt" jsonschema:"Step prompt"`
	Directory string `json:"directory,omitempty" jsonschema:"Step working directory (defaults to the pipeline directory)"`
}

type RunPipelineParams struct {
	Steps      []PipelineStepParams `json:"steps" jsonschema:"Ordered list of steps"`
	Directory  string               `json:"directory,omitempty" jsonschema:"Default working directory for steps"`
	PipelineID string               `json:"pipeline_id,omitempty" jsonschema:"Identifier for this pipeline (generated if omitted)"`
}

type GetPipelineParams struct {
	PipelineID string `json:"pipeline_id" jsonschema:"Pipeline id"`
}

func (s *Server) handleSpawnTerminal(ctx context.Context, req *mcpsdk.CallToolRequest, params *SpawnTerminalParams) (*mcpsdk.CallToolResult, any, error) {
	layout := driver.Layout(params.Layout)
	res, err := s.coord.SpawnTerminal(ctx, params.Directory, layout)
	s.recordOutcome("spawn_terminal", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("opened via %s", res.Backend)), nil, nil
}

func (s *Server) handleSpawnWorker(ctx context.Context, req *mcpsdk.CallToolRequest, params *SpawnWorkerParams) (*mcpsdk.CallToolResult, any, error) {
	mode := model.WorkerMode(params.Mode)
	if mode == "" {
		mode = model.ModePipe
	}

	meta, err := s.coord.SpawnWorker(ctx, worker.SpawnSpec{
		TaskID:          params.TaskID,
		Directory:       params.Directory,
		Prompt:          params.Prompt,
		Model:           params.Model,
		Agent:           params.Agent,
		Mode:            mode,
		NotifySessionID: params.NotifySessionID,
		Isolate:         params.Isolate,
	}, time.Now())
	s.recordOutcome("spawn_worker", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("spawned task_id=%s mode=%s", meta.TaskID, meta.Mode)), nil, nil
}

func (s *Server) handleGetResult(ctx context.Context, req *mcpsdk.CallToolRequest, params *GetResultParams) (*mcpsdk.CallToolResult, any, error) {
	res, err := s.coord.GetResult(params.TaskID, params.TailLines)
	s.recordOutcome("get_result", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("status=%s\n%s", res.Status, res.Text)), nil, nil
}

func (s *Server) handleKillWorker(ctx context.Context, req *mcpsdk.CallToolRequest, params *KillWorkerParams) (*mcpsdk.CallToolResult, any, error) {
	res, err := s.coord.KillWorker(params.TaskID)
	s.recordOutcome("kill_worker", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("was_alive=%t", res.WasAlive)), nil, nil
}

func (s *Server) handleWakeSession(ctx context.Context, req *mcpsdk.CallToolRequest, params *WakeSessionParams) (*mcpsdk.CallToolResult, any, error) {
	res, err := s.coord.WakeSession(params.SessionID, params.Message, time.Now())
	s.recordOutcome("wake_session", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("woke via %s", res.Backend)), nil, nil
}

func (s *Server) handleRunPipeline(ctx context.Context, req *mcpsdk.CallToolRequest, params *RunPipelineParams) (*mcpsdk.CallToolResult, any, error) {
	steps := make([]model.PipelineStepSpec, len(params.Steps))
	for i, step := range params.Steps {
		steps[i] = model.PipelineStepSpec{Name: step.Name, Prompt: step.Prompt, Directory: step.Directory}
	}

	meta, err := s.coord.RunPipeline(ctx, params.PipelineID, params.Directory, steps, time.Now())
	s.recordOutcome("run_pipeline", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("pipeline_id=%s steps=%s", meta.PipelineID, strings.Join(meta.StepIDs, ","))), nil, nil
}

func (s *Server) handleGetPipeline(ctx context.Context, req *mcpsdk.CallToolRequest, params *GetPipelineParams) (*mcpsdk.CallToolResult, any, error) {
	meta, done, statuses, err := s.coord.GetPipeline(params.PipelineID)
	s.recordOutcome("get_pipeline", err)
	if err != nil {
		return nil, nil, err
	}

	status := "running"
	if done != nil {
		status = string(done.Status)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "pipeline_id=%s status=%s\n", meta.PipelineID, status)
	for i, stepID := range meta.StepIDs {
		fmt.Fprintf(&b, "- %s: %s\n", stepID, statuses[i])
	}
	return textResult(b.String()), nil, nil
}
