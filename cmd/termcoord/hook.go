package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/termcoord/internal/hookrun"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run one of the four hook agents (spec.md §4.2)",
	Long: `Hook dispatches to the session-lifecycle and tool-invocation hook
agents a host AI runtime invokes directly. Each subcommand reads exactly
one JSON payload from stdin and never talks to the coordinator.`,
}

var hookRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Handle the session-start hook",
	RunE:  runHookRegister,
}

var hookHeartbeatCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Handle the post-tool-use hook",
	RunE:  runHookHeartbeat,
}

var hookDrainCmd = &cobra.Command{
	Use:   "drain",
	Short: "Handle the pre-tool-use inbox-drain hook",
	RunE:  runHookDrain,
}

var hookGuardCmd = &cobra.Command{
	Use:   "guard",
	Short: "Handle the pre-edit conflict-guard hook",
	RunE:  runHookGuard,
}

func init() {
	hookCmd.AddCommand(hookRegisterCmd, hookHeartbeatCmd, hookDrainCmd, hookGuardCmd)
	for _, c := range []*cobra.Command{hookRegisterCmd, hookHeartbeatCmd, hookDrainCmd, hookGuardCmd} {
		// A hook is invoked by a host AI runtime, not a human at a shell:
		// a bad session_id should print one line on stderr, not cobra's
		// full usage block.
		c.SilenceUsage = true
		c.SilenceErrors = true
	}
}

// hookErr rewrites an invalid-identifier failure into the wording a hook
// caller's stderr scrape expects (spec.md §8 scenario 5), while leaving
// every other error (missing payload fields, I/O failures) untouched.
func hookErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrInvalidID) {
		return fmt.Errorf("Invalid session_id: %w", err)
	}
	return err
}

func runHookRegister(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := hookrun.DecodePayload(cmd.InOrStdin())
	if err != nil {
		return err
	}
	return hookErr(hookrun.Register(store.NewRoot(cfg.StateRoot.Dir), p, time.Now()))
}

func runHookHeartbeat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := hookrun.DecodePayload(cmd.InOrStdin())
	if err != nil {
		return err
	}
	return hookErr(hookrun.Heartbeat(store.NewRoot(cfg.StateRoot.Dir), cfg, p, time.Now()))
}

func runHookDrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := hookrun.DecodePayload(cmd.InOrStdin())
	if err != nil {
		return err
	}
	return hookErr(hookrun.Drain(store.NewRoot(cfg.StateRoot.Dir), p, os.Stderr, time.Now()))
}

func runHookGuard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := hookrun.DecodePayload(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := hookrun.Guard(store.NewRoot(cfg.StateRoot.Dir), cfg, p, os.Stderr); err != nil {
		return hookErr(fmt.Errorf("guard: %w", err))
	}
	return nil
}
