package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew_IsSingletonAcrossCalls(t *testing.T) {
	a := New()
	b := New()
	assert.Same(t, a, b)
}

func TestRecordRPC_IncrementsCounter(t *testing.T) {
	m := New()
	m.RecordRPC("list_sessions", "ok")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RPCTotal.WithLabelValues("list_sessions", "ok")))
}

func TestRecordRPCError_IncrementsCounter(t *testing.T) {
	m := New()
	m.RecordRPCError("spawn_worker", "spawn_failed")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RPCErrorTotal.WithLabelValues("spawn_worker", "spawn_failed")))
}

func TestSetActiveSessions_UpdatesGauge(t *testing.T) {
	m := New()
	m.SetActiveSessions(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ActiveSessions))
}
