package stdio

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/termcoord/internal/model"
)

func (s *Server) registerMessageTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_send_message",
		Description: "Send a message to one session's inbox.",
	}, s.handleSendMessage)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_broadcast",
		Description: "Send a message to every non-closed session's inbox.",
	}, s.handleBroadcast)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_check_inbox",
		Description: "Read a session's inbox without draining it.",
	}, s.handleCheckInbox)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "coord_send_directive",
		Description: "Send a directive to a worker, waking it first if it appears idle.",
	}, s.handleSendDirective)
}

type SendMessageParams struct {
	From     string `json:"from" jsonschema:"Sending session id"`
	To       string `json:"to" jsonschema:"Recipient session id"`
	Content  string `json:"content" jsonschema:"Message body"`
	Priority string `json:"priority,omitempty" jsonschema:"normal or urgent (default normal)"`
}

type BroadcastParams struct {
	From     string `json:"from" jsonschema:"Sending session id"`
	Content  string `json:"content" jsonschema:"Message body"`
	Priority string `json:"priority,omitempty" jsonschema:"normal or urgent (default normal)"`
}

type CheckInboxParams struct {
	SessionID string `json:"session_id" jsonschema:"Session identifier"`
}

type SendDirectiveParams struct {
	WorkerID string `json:"worker_id" jsonschema:"Worker's session id"`
	Content  string `json:"content" jsonschema:"Directive body"`
	Priority string `json:"priority,omitempty" jsonschema:"normal or urgent (default normal)"`
}

func (s *Server) handleSendMessage(ctx context.Context, req *mcpsdk.CallToolRequest, params *SendMessageParams) (*mcpsdk.CallToolResult, any, error) {
	err := s.coord.SendMessage(params.From, params.To, params.Content, model.MessagePriority(params.Priority), time.Now())
	s.recordOutcome("send_message", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult("sent"), nil, nil
}

func (s *Server) handleBroadcast(ctx context.Context, req *mcpsdk.CallToolRequest, params *BroadcastParams) (*mcpsdk.CallToolResult, any, error) {
	delivered, err := s.coord.Broadcast(params.From, params.Content, model.MessagePriority(params.Priority), time.Now())
	s.recordOutcome("broadcast", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("delivered to %d session(s)", delivered)), nil, nil
}

func (s *Server) handleCheckInbox(ctx context.Context, req *mcpsdk.CallToolRequest, params *CheckInboxParams) (*mcpsdk.CallToolResult, any, error) {
	messages, err := s.coord.CheckInbox(params.SessionID)
	s.recordOutcome("check_inbox", err)
	if err != nil {
		return nil, nil, err
	}

	if len(messages) == 0 {
		return textResult("inbox empty"), nil, nil
	}
	var b strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&b, "[%s] from %s: %s\n", m.Priority, m.From, m.Content)
	}
	return textResult(b.String()), nil, nil
}

func (s *Server) handleSendDirective(ctx context.Context, req *mcpsdk.CallToolRequest, params *SendDirectiveParams) (*mcpsdk.CallToolResult, any, error) {
	err := s.coord.SendDirective(params.WorkerID, params.Content, model.MessagePriority(params.Priority), time.Now())
	s.recordOutcome("send_directive", err)
	if err != nil {
		return nil, nil, err
	}
	return textResult("directive delivered"), nil, nil
}
