// Package worker implements the worker and pipeline supervisor (spec.md
// §4.4): spawning pipe and interactive children, tracking their PID,
// killing them on request, optional git-worktree spawn isolation, and
// sequential pipeline execution. It never waits on a spawned child
// synchronously; completion is observed by the coordinator through the
// `.done` marker the child's own trailer writes.
package worker
