package store

import "path/filepath"

// Root is the per-user state directory (<root>/terminals/ in spec.md §6)
// and the canonical path builders every other package uses instead of
// constructing paths itself.
type Root struct {
	Dir string
}

// NewRoot returns a Root rooted at dir (normally "<home>/.local/share/termcoord/terminals").
func NewRoot(dir string) Root {
	return Root{Dir: dir}
}

func (r Root) SessionPath(shortID string) string {
	return filepath.Join(r.Dir, "session-"+shortID+".json")
}

func (r Root) ActivityLogPath() string {
	return filepath.Join(r.Dir, "activity.jsonl")
}

func (r Root) InboxPath(shortID string) string {
	return filepath.Join(r.Dir, "inbox", shortID+".jsonl")
}

func (r Root) ResultsDir() string {
	return filepath.Join(r.Dir, "results")
}

func (r Root) resultPath(taskID, suffix string) string {
	return filepath.Join(r.ResultsDir(), taskID+suffix)
}

func (r Root) MetaPath(taskID string) string         { return r.resultPath(taskID, ".meta.json") }
func (r Root) DonePath(taskID string) string         { return r.resultPath(taskID, ".meta.json.done") }
func (r Root) PIDPath(taskID string) string          { return r.resultPath(taskID, ".pid") }
func (r Root) ResultTextPath(taskID string) string   { return r.resultPath(taskID, ".txt") }
func (r Root) PromptPath(taskID string) string        { return r.resultPath(taskID, ".prompt") }
func (r Root) ReportedPath(taskID string) string      { return r.resultPath(taskID, ".reported") }
func (r Root) PipelineLogPath(pipelineID string) string { return r.resultPath(pipelineID, ".log") }

func (r Root) TasksDir() string { return filepath.Join(r.Dir, "tasks") }
func (r Root) TaskPath(id string) string { return filepath.Join(r.TasksDir(), id+".json") }

func (r Root) TeamsDir() string { return filepath.Join(r.Dir, "teams") }
func (r Root) TeamPath(name string) string { return filepath.Join(r.TeamsDir(), name+".json") }

func (r Root) RateLimitsDir() string { return filepath.Join(r.Dir, "rate-limits") }
func (r Root) RateLimitPath(sender string) string {
	return filepath.Join(r.RateLimitsDir(), sender+".json")
}
