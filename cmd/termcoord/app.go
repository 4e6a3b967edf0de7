package main

import (
	"fmt"
	"os"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/coordinator"
	"github.com/fyrsmithlabs/termcoord/internal/logging"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// loadConfig loads configuration from configPath (or the default path),
// warning to stderr about anything it had to drop (e.g. unknown skip
// rules) rather than failing.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// buildCoordinator wires a logger and state root from cfg into a
// coordinator.Coordinator, the shape every subcommand that touches state
// (serve, lead, doctor) shares.
func buildCoordinator(cfg *config.Config) (*coordinator.Coordinator, *logging.Logger, error) {
	log, err := logging.NewLogger(&cfg.Logging, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}

	coord := coordinator.New(store.NewRoot(cfg.StateRoot.Dir), cfg, log)
	coord.Warn = os.Stderr
	return coord, log, nil
}

// syncLogger flushes buffered log entries, swallowing the harmless
// stdout/stderr sync errors zap returns on Linux.
func syncLogger(log *logging.Logger) {
	if log == nil {
		return
	}
	if err := log.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "termcoord: logger sync: %v\n", err)
	}
}
