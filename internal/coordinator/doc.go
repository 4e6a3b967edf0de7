// Package coordinator implements the RPC business logic exposed over
// stdio (spec.md §4.5): session directory, messaging, conflict detection,
// worker/pipeline supervision, and the task/team board. It composes
// internal/store, internal/driver, internal/worker, internal/taskboard and
// internal/metrics. The MCP transport reaches the state store only through
// this package; the dashboard and the doctor command also read the state
// directory directly. Every operation validates its
// identifiers before any path construction, matching the cross-cutting
// rule in spec.md §4.5.
package coordinator
