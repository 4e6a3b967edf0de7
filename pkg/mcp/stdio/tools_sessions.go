package stdio

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerSessionTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_list_sessions",
		Description: "List every non-closed session.",
	}, s.handleListSessions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_get_session",
		Description: "Get a single session record by session_id.",
	}, s.handleGetSession)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_detect_conflicts",
		Description: "Find files touched by two or more sessions.",
	}, s.handleDetectConflicts)
}

type GetSessionParams struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier"`
}

type emptyParams struct{}

func (s *Server) handleListSessions(ctx context.Context, req *mcpsdk.CallToolRequest, params *emptyParams) (*mcpsdk.CallToolResult, any, error) {
	sessions, err := s.coord.ListSessions()
	s.recordOutcome("list_sessions", err)
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d session(s)\n", len(sessions))
	for _, sess := range sessions {
		fmt.Fprintf(&b, "- %s [%s] cwd=%s files=%d\n", sess.Session, sess.Status, sess.CWD, len(sess.FilesTouched))
	}
	return textResult(b.String()), nil, nil
}

func (s *Server) handleGetSession(ctx context.Context, req *mcpsdk.CallToolRequest, params *GetSessionParams) (*mcpsdk.CallToolResult, any, error) {
	sess, err := s.coord.GetSession(params.SessionID)
	s.recordOutcome("get_session", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("%s [%s] started=%s last_active=%s files=%v", sess.Session, sess.Status, sess.Started, sess.LastActive, sess.FilesTouched)), nil, nil
}

func (s *Server) handleDetectConflicts(ctx context.Context, req *mcpsdk.CallToolRequest, params *emptyParams) (*mcpsdk.CallToolResult, any, error) {
	conflicts, err := s.coord.DetectConflicts()
	s.recordOutcome("detect_conflicts", err)
	if err != nil {
		return nil, nil, err
	}

	if len(conflicts) == 0 {
		return textResult("no conflicts"), nil, nil
	}
	var b strings.Builder
	for _, c := range conflicts {
		fmt.Fprintf(&b, "%s: %s\n", c.File, strings.Join(c.Sessions, ", "))
	}
	return textResult(b.String()), nil, nil
}
