// Package metrics exposes the coordinator's Prometheus collectors. There is
// no HTTP listener here: the spec's transport is stdio MCP, not a scrape
// endpoint, so a caller that wants to serve /metrics mounts the default
// registry on its own listener; this package only registers collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	global *Metrics
	once   sync.Once
)

// Metrics holds the coordinator's Prometheus collectors, all prefixed
// "termcoord_" for namespacing.
//
// Metrics:
//   - termcoord_rpc_total{operation,outcome} - RPC calls by operation and outcome
//   - termcoord_rpc_error_total{operation,kind} - RPC failures by error kind
//   - termcoord_lock_wait_seconds{resource} - time spent acquiring a file lock
//   - termcoord_active_sessions - current count of non-closed sessions
type Metrics struct {
	RPCTotal      *prometheus.CounterVec
	RPCErrorTotal *prometheus.CounterVec
	LockWait      *prometheus.HistogramVec
	ActiveSessions prometheus.Gauge
}

// New creates and registers the coordinator's collectors exactly once,
// guarding against the "duplicate metrics collector registration" panic
// that repeated construction (e.g. in tests) would otherwise trigger.
func New() *Metrics {
	once.Do(func() {
		global = &Metrics{
			RPCTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "termcoord_rpc_total",
					Help: "Total number of coordinator RPC calls.",
				},
				[]string{"operation", "outcome"},
			),
			RPCErrorTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "termcoord_rpc_error_total",
					Help: "Total number of coordinator RPC failures by error kind.",
				},
				[]string{"operation", "kind"},
			),
			LockWait: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "termcoord_lock_wait_seconds",
					Help:    "Time spent waiting to acquire a state-file lock.",
					Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 100us to ~1.6s
				},
				[]string{"resource"},
			),
			ActiveSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "termcoord_active_sessions",
					Help: "Current count of sessions not in the closed state.",
				},
			),
		}
	})
	return global
}

// RecordRPC records one RPC call's outcome ("ok" or "error").
func (m *Metrics) RecordRPC(operation, outcome string) {
	m.RPCTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordRPCError records an RPC failure tagged with its structured error
// kind (invalid_argument, not_found, rate_limited, conflict, spawn_failed,
// wake_failed_fell_back, transient_io).
func (m *Metrics) RecordRPCError(operation, kind string) {
	m.RPCErrorTotal.WithLabelValues(operation, kind).Inc()
}

// ObserveLockWait records how long a caller waited to acquire resource's
// file lock.
func (m *Metrics) ObserveLockWait(resource string, seconds float64) {
	m.LockWait.WithLabelValues(resource).Observe(seconds)
}

// SetActiveSessions updates the active-session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
