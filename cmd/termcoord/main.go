// Termcoord coordinates multiple AI coding sessions running concurrently
// on one workstation: it is a filesystem state protocol (session records,
// an activity log, per-session inboxes, worker/pipeline artifacts, and a
// task/team board) plus an MCP-over-stdio coordinator service, the hook
// agents a host AI runtime invokes on session lifecycle events, and a
// read-only dashboard over all of it.
//
// Configuration is loaded from ~/.config/termcoord/config.yaml (if
// present) and environment variables. See internal/config for details.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "termcoord",
	Short:   "Coordination layer for concurrent AI coding sessions",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default ~/.config/termcoord/config.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(leadCmd)
	rootCmd.AddCommand(doctorCmd)
}
