package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/termcoord/pkg/mcp/stdio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the coordinator as an MCP server over stdio",
	Long: `Serve starts the coordination layer's RPC surface (spec.md §4.5) as an
MCP server speaking JSON-RPC over stdin/stdout, the transport a host AI
runtime talks to directly.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	coord, log, err := buildCoordinator(cfg)
	if err != nil {
		return err
	}
	defer syncLogger(log)

	srv, err := stdio.NewServer(coord)
	if err != nil {
		return fmt.Errorf("creating stdio server: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	fmt.Fprintf(os.Stderr, "termcoord: serving coord_* tools over stdio (root=%s)\n", cfg.StateRoot.Dir)
	return srv.Run(ctx)
}
