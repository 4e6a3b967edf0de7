package worker

import (
	"fmt"
	"regexp"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// tokenPattern bounds the characters the supervisor will ever interpolate
// into a launch command for model/agent/step names: no shell metacharacters,
// no path separators.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_.:-]{1,64}$`)

// SpawnSpec is the validated input to Spawn.
type SpawnSpec struct {
	TaskID          string
	Directory       string
	Prompt          string
	Model           string
	Agent           string
	Mode            model.WorkerMode
	NotifySessionID string
	PipelineID      string
	StepName        string
	Isolate         bool
}

// validate checks the task id, model, agent, mode and notify session id
// against their regex or allowlist, and bounds the prompt length, before any
// path is built or process launched (spec.md §6). The directory is not
// checked here.
func (s SpawnSpec) validate(cfg *config.Config) error {
	if err := store.ValidateTaskID(s.TaskID); err != nil {
		return err
	}
	if s.Model != "" {
		if !tokenPattern.MatchString(s.Model) || !cfg.IsModelAllowed(s.Model) {
			return fmt.Errorf("%w: model %q not allowed", errInvalidArgument, s.Model)
		}
	}
	if s.Agent != "" {
		if !tokenPattern.MatchString(s.Agent) || !cfg.IsAgentAllowed(s.Agent) {
			return fmt.Errorf("%w: agent %q not allowed", errInvalidArgument, s.Agent)
		}
	}
	if s.Mode != model.ModePipe && s.Mode != model.ModeInteractive {
		return fmt.Errorf("%w: mode %q", errInvalidArgument, s.Mode)
	}
	if s.NotifySessionID != "" {
		if err := store.ValidateSessionID(s.NotifySessionID); err != nil {
			return err
		}
	}
	if len(s.Prompt) > model.MaxPromptExcerpt*4 {
		return fmt.Errorf("%w: prompt exceeds maximum length", errInvalidArgument)
	}
	return nil
}

// errInvalidArgument marks a spawn request rejected before any file I/O or
// process launch, mirroring the coordinator's invalid_argument error kind.
var errInvalidArgument = fmt.Errorf("invalid_argument")

// promptExcerpt truncates prompt to model.MaxPromptExcerpt runes for the
// meta file's human-readable summary field.
func promptExcerpt(prompt string) string {
	r := []rune(prompt)
	if len(r) <= model.MaxPromptExcerpt {
		return prompt
	}
	return string(r[:model.MaxPromptExcerpt])
}
