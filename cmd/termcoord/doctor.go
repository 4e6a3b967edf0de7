package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/termcoord/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Print state root, permission, and lock-health diagnostics",
	Long: `Doctor reports on the health of the state store without mutating it:
whether the root directory exists and with what permissions, how many
session records and worker meta records are present, and whether a lock can
be acquired and released within the state store's fixed lock timeout.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root := store.NewRoot(cfg.StateRoot.Dir)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "state root: %s\n", root.Dir)
	reportDirStatus(out, root.Dir)

	sessions, err := store.ListSessions(root, cmd.ErrOrStderr())
	if err != nil {
		fmt.Fprintf(out, "sessions: error reading: %v\n", err)
	} else {
		fmt.Fprintf(out, "sessions: %d on disk\n", len(sessions))
	}

	workers, _ := filepath.Glob(filepath.Join(root.ResultsDir(), "*.meta.json"))
	fmt.Fprintf(out, "workers: %d recorded\n", len(workers))

	reportLockHealth(out, root)

	fmt.Fprintf(out, "rate limit: %d messages / %s per sender\n", cfg.RateLimit.MaxPerWindow, cfg.RateLimit.Window)
	fmt.Fprintf(out, "allowlisted models: %v\n", cfg.Allowlist.Models)
	fmt.Fprintf(out, "allowlisted agents: %v\n", cfg.Allowlist.Agents)

	return nil
}

func reportDirStatus(out io.Writer, dir string) {
	info, err := os.Stat(dir)
	if err != nil {
		fmt.Fprintf(out, "  does not exist yet: %v\n", err)
		return
	}
	fmt.Fprintf(out, "  exists, mode=%s\n", info.Mode().Perm())
}

// reportLockHealth acquires and releases a throwaway lock under root to
// confirm the platform lock primitive (internal/store's flock-or-lock-dir
// fallback) is working and reports how long that round trip took.
func reportLockHealth(out io.Writer, root store.Root) {
	probe := filepath.Join(root.Dir, ".doctor-probe")
	start := time.Now()
	err := store.WithLock(probe, func() error { return nil })
	elapsed := time.Since(start)
	os.Remove(probe + ".lock")
	os.RemoveAll(probe + ".lock.d")

	if err != nil {
		fmt.Fprintf(out, "lock health: FAILED (%v)\n", err)
		return
	}
	fmt.Fprintf(out, "lock health: ok (%s)\n", elapsed)
}
