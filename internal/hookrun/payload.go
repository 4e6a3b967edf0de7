// Package hookrun implements the four hook agents invoked by the host AI
// runtime on session lifecycle and tool-invocation boundaries: register,
// heartbeat, drain, and guard. Each reads one JSON object from stdin,
// validates session_id before touching the filesystem, and mutates state
// through internal/store. Hooks never call the coordinator (spec.md §4.2).
package hookrun

import (
	"encoding/json"
	"fmt"
	"io"
)

// Payload is the union of fields the host sends on stdin across all four
// hook events. Unused fields are simply left zero for a given event.
type Payload struct {
	SessionID      string         `json:"session_id"`
	CWD            string         `json:"cwd,omitempty"`
	TranscriptPath string         `json:"transcript_path,omitempty"`
	Source         string         `json:"source,omitempty"`
	ToolName       string         `json:"tool_name,omitempty"`
	ToolInput      map[string]any `json:"tool_input,omitempty"`
}

// DecodePayload reads and decodes exactly one JSON object from r.
func DecodePayload(r io.Reader) (*Payload, error) {
	var p Payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding hook payload: %w", err)
	}
	return &p, nil
}

// FilePath extracts tool_input.file_path, the only tool_input field the
// hooks inspect.
func (p *Payload) FilePath() string {
	if p.ToolInput == nil {
		return ""
	}
	v, _ := p.ToolInput["file_path"].(string)
	return v
}
