// Package stdio implements the MCP stdio transport for termcoord: one
// coord_* tool per spec.md §4.5 operation, all delegating in-process to
// internal/coordinator. There is no daemon process and no HTTP hop — the
// tool handler IS the RPC handler.
package stdio

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/termcoord/internal/coordinator"
)

// Server wraps the MCP SDK server and the coordinator every tool delegates
// to.
type Server struct {
	mcpServer *mcpsdk.Server
	coord     *coordinator.Coordinator
}

// NewServer builds a Server and registers every coord_* tool against coord.
func NewServer(coord *coordinator.Coordinator) (*Server, error) {
	if coord == nil {
		return nil, fmt.Errorf("coordinator must not be nil")
	}

	mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "termcoord",
		Version: "0.1.0",
	}, nil)

	s := &Server{mcpServer: mcpServer, coord: coord}
	s.registerTools()
	return s, nil
}

// Run serves MCP requests over stdin/stdout until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// registerTools groups tool registration by domain, the way contextd's
// internal/mcp/tools.go dispatches to registerCheckpointTools,
// registerRemediationTools, and so on.
func (s *Server) registerTools() {
	s.registerSessionTools()
	s.registerMessageTools()
	s.registerWorkerTools()
	s.registerTaskTools()
}

// textResult wraps a single string as a successful MCP tool result.
func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}

// recordOutcome tags operation's outcome in the coordinator's RPC metrics,
// using errkind's classification when err is non-nil. This is the one
// place outcomes are recorded precisely because this transport layer is
// the only thing that knows, for any given call, which operation name it
// dispatched.
func (s *Server) recordOutcome(operation string, err error) {
	if err == nil {
		s.coord.Metrics.RecordRPC(operation, "ok")
		return
	}
	s.coord.Metrics.RecordRPC(operation, "error")
	s.coord.Metrics.RecordRPCError(operation, coordinator.Classify(err))
}
