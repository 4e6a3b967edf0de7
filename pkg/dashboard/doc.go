// Package dashboard implements the read-only `termcoord lead` TUI: a
// bubbletea program that renders the session roster, file-conflict table,
// and worker status directly from the state store, refreshing whenever
// fsnotify reports a change under the root directory instead of polling
// on a fixed interval.
package dashboard
