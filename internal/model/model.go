// Package model defines the tagged records that make up the on-disk state
// protocol described by the coordination substrate: sessions, activity
// events, inbox messages, worker/pipeline artifacts, and the task/team
// board. Every record round-trips through encoding/json. Session preserves
// unknown fields via Extra so that policy layers built on top of this core
// can extend session records without a schema migration; the other records
// have no Extra and drop unknown fields on decode.
package model

import (
	"encoding/json"
	"time"
)

// SessionStatus is the lifecycle state of a session record.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionStale  SessionStatus = "stale"
	SessionClosed SessionStatus = "closed"
)

// RecentOp is one entry in a session's bounded recent-operations log.
type RecentOp struct {
	Timestamp time.Time `json:"timestamp"`
	Tool      string    `json:"tool"`
	File      string    `json:"file,omitempty"`
}

// MaxFilesTouched is the LRU bound on Session.FilesTouched (§3).
const MaxFilesTouched = 30

// MaxRecentOps is the bound on Session.RecentOps (§3).
const MaxRecentOps = 10

// Session is the per-session record persisted at session-<short_id>.json.
type Session struct {
	Session      string         `json:"session"`
	TTY          string         `json:"tty,omitempty"`
	Project      string         `json:"project,omitempty"`
	Branch       string         `json:"branch,omitempty"`
	CWD          string         `json:"cwd,omitempty"`
	Started      time.Time      `json:"started"`
	LastActive   time.Time      `json:"last_active"`
	Status       SessionStatus  `json:"status"`
	ToolCounts   map[string]int `json:"tool_counts"`
	FilesTouched []string       `json:"files_touched"`
	RecentOps    []RecentOp     `json:"recent_ops"`
	HasMessages  bool           `json:"has_messages"`
	PlanFile     string         `json:"plan_file,omitempty"`

	Extra map[string]any `json:"-"`
}

// sessionKnownFields lists every tagged JSON key of Session, the allowlist
// MarshalJSON/UnmarshalJSON use to split known fields from Extra.
var sessionKnownFields = map[string]bool{
	"session": true, "tty": true, "project": true, "branch": true,
	"cwd": true, "started": true, "last_active": true, "status": true,
	"tool_counts": true, "files_touched": true, "recent_ops": true,
	"has_messages": true, "plan_file": true,
}

// sessionAlias has Session's fields but none of its methods, so marshaling
// an aliased value doesn't recurse back into MarshalJSON.
type sessionAlias Session

// MarshalJSON writes the tagged fields, then merges in Extra (skipping any
// key that collides with a tagged field), so a policy layer's additions
// round-trip through the heartbeat/register read-modify-write instead of
// being dropped on the next save.
func (s Session) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(sessionAlias(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range s.Extra {
		if sessionKnownFields[k] {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the tagged fields as usual, then stashes any key not
// in sessionKnownFields into Extra so a round-trip save doesn't lose it.
func (s *Session) UnmarshalJSON(data []byte) error {
	var a sessionAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Session(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var extra map[string]any
	for k, v := range raw {
		if sessionKnownFields[k] {
			continue
		}
		if extra == nil {
			extra = map[string]any{}
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		extra[k] = val
	}
	s.Extra = extra
	return nil
}

// TouchFile records that the session edited or wrote path, maintaining the
// dedup + LRU-at-30 invariant: a path already present moves to the back
// (most recent) without growing the slice; a brand new path evicts the
// oldest entry once the bound is reached.
func (s *Session) TouchFile(path string) {
	for i, p := range s.FilesTouched {
		if p == path {
			s.FilesTouched = append(s.FilesTouched[:i], s.FilesTouched[i+1:]...)
			s.FilesTouched = append(s.FilesTouched, path)
			return
		}
	}
	s.FilesTouched = append(s.FilesTouched, path)
	if len(s.FilesTouched) > MaxFilesTouched {
		s.FilesTouched = s.FilesTouched[len(s.FilesTouched)-MaxFilesTouched:]
	}
}

// PushRecentOp prepends a recent-ops entry, keeping the newest-first order
// and the bound at MaxRecentOps.
func (s *Session) PushRecentOp(op RecentOp) {
	s.RecentOps = append([]RecentOp{op}, s.RecentOps...)
	if len(s.RecentOps) > MaxRecentOps {
		s.RecentOps = s.RecentOps[:MaxRecentOps]
	}
}

// MessagePriority is the urgency of an inbox message.
type MessagePriority string

const (
	PriorityNormal MessagePriority = "normal"
	PriorityUrgent MessagePriority = "urgent"
)

// InboxMessage is one line of a session's inbox/<short_id>.jsonl.
type InboxMessage struct {
	TS       time.Time       `json:"ts"`
	From     string          `json:"from"`
	Priority MessagePriority `json:"priority"`
	Content  string          `json:"content"`
}

// ActivityEvent is one line of the global activity.jsonl.
type ActivityEvent struct {
	TS      time.Time `json:"ts"`
	Session string    `json:"session"`
	Tool    string    `json:"tool"`
	File    string    `json:"file,omitempty"`
	Path    string    `json:"path,omitempty"`
	Project string    `json:"project,omitempty"`
}

// WorkerMode selects how a spawned worker is hooked up.
type WorkerMode string

const (
	ModePipe        WorkerMode = "pipe"
	ModeInteractive WorkerMode = "interactive"
)

// WorkerStatus mirrors the running/completed/unknown reporting of get_result.
type WorkerStatus string

const (
	WorkerRunning   WorkerStatus = "running"
	WorkerCompleted WorkerStatus = "completed"
	WorkerUnknown   WorkerStatus = "unknown"
)

// WorkerMeta is <id>.meta.json, written before the child is spawned.
type WorkerMeta struct {
	TaskID          string       `json:"task_id"`
	Directory       string       `json:"directory"`
	PromptExcerpt   string       `json:"prompt_excerpt"`
	Model           string       `json:"model,omitempty"`
	Agent           string       `json:"agent,omitempty"`
	Mode            WorkerMode   `json:"mode"`
	Spawned         time.Time    `json:"spawned"`
	NotifySessionID string       `json:"notify_session_id,omitempty"`
	Status          WorkerStatus `json:"status"`
	PipelineID      string       `json:"pipeline_id,omitempty"`
	StepName        string       `json:"step_name,omitempty"`
}

// MaxPromptExcerpt is the cap on WorkerMeta.PromptExcerpt (§3).
const MaxPromptExcerpt = 500

// WorkerDone is <id>.meta.json.done, written atomically on child exit.
type WorkerDone struct {
	Status   WorkerStatus `json:"status"`
	Finished time.Time    `json:"finished"`
	TaskID   string       `json:"task_id"`
	ExitCode int          `json:"exit_code"`
}

// PipelineStepSpec describes one step of a run_pipeline request.
type PipelineStepSpec struct {
	Name      string `json:"name"`
	Prompt    string `json:"prompt"`
	Directory string `json:"directory,omitempty"`
}

// PipelineStatus is the aggregate status of a pipeline run.
type PipelineStatus string

const (
	PipelineRunning   PipelineStatus = "running"
	PipelineCompleted PipelineStatus = "completed"
	PipelineFailed    PipelineStatus = "failed"
)

// PipelineMeta is <pipeline_id>.meta.json.
type PipelineMeta struct {
	PipelineID string             `json:"pipeline_id"`
	Directory  string             `json:"directory,omitempty"`
	Steps      []PipelineStepSpec `json:"steps"`
	StepIDs    []string           `json:"step_ids"`
	Status     PipelineStatus     `json:"status"`
	Started    time.Time          `json:"started"`
}

// PipelineDone is <pipeline_id>.meta.json.done.
type PipelineDone struct {
	Status   PipelineStatus `json:"status"`
	Finished time.Time      `json:"finished"`
	Failed   string         `json:"failed_step,omitempty"`
}

// TaskStatus is the lifecycle state of a task board entry.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
)

// Task is tasks/<task_id>.json.
type Task struct {
	ID         string     `json:"id"`
	Subject    string     `json:"subject"`
	Assignee   string     `json:"assignee,omitempty"`
	Status     TaskStatus `json:"status"`
	BlockedBy  []string   `json:"blocked_by,omitempty"`
	Created    time.Time  `json:"created"`
	Updated    time.Time  `json:"updated"`
}

// Team is teams/<name>.json.
type Team struct {
	Name    string    `json:"name"`
	Project string    `json:"project,omitempty"`
	Members []string  `json:"members"`
	Created time.Time `json:"created"`
}

// HasMember reports whether session is already a team member.
func (t *Team) HasMember(session string) bool {
	for _, m := range t.Members {
		if m == session {
			return true
		}
	}
	return false
}

// RateLimitWindow is the per-sender counter file under rate-limits/.
type RateLimitWindow struct {
	Sender      string    `json:"sender"`
	WindowStart time.Time `json:"window_start"`
	Count       int       `json:"count"`
}
