package worker

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// isolationBranchPrefix names every worktree branch the supervisor creates,
// matching spec.md §4.4's "worker/<task_id>" convention.
const isolationBranchPrefix = "worker/"

// createIsolationWorktree creates a sibling git worktree checked out onto a
// new worker/<task_id> branch, so the spawned child's file writes cannot
// collide with the parent session's working tree. Failure here is fatal to
// the spawn (spec.md §4.4).
func createIsolationWorktree(repoDir, taskID string, timeout time.Duration) (string, error) {
	branch := plumbing.NewBranchReferenceName(isolationBranchPrefix + taskID).Short()

	repoRoot, err := gitOutput(repoDir, timeout, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("resolving repo root: %w", err)
	}
	repoRoot = strings.TrimSpace(repoRoot)

	worktreePath := filepath.Join(filepath.Dir(repoRoot), filepath.Base(repoRoot)+"-"+filepath.Base(branch))

	if _, err := gitOutput(repoRoot, timeout, "worktree", "add", "-b", branch, worktreePath, "HEAD"); err != nil {
		return "", fmt.Errorf("git worktree add %s: %w", branch, err)
	}
	return worktreePath, nil
}

// gitOutput runs a git subcommand in dir, bounded by timeout, and returns
// its combined output.
func gitOutput(dir string, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s timed out after %s", args[0], timeout)
		}
		return "", fmt.Errorf("%w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
