package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/termcoord/internal/driver"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
	"github.com/fyrsmithlabs/termcoord/internal/worker"
)

func TestSpawnWorker_GeneratesTaskIDWhenAbsent(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	meta, err := c.SpawnWorker(context.Background(), worker.SpawnSpec{
		Directory: t.TempDir(),
		Prompt:    "do the thing",
		Mode:      model.ModePipe,
	}, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, meta.TaskID)
}

func TestSpawnWorker_ThenGetResultReportsCompletion(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	_, err := c.SpawnWorker(context.Background(), worker.SpawnSpec{
		TaskID:    "task1",
		Directory: t.TempDir(),
		Prompt:    "do the thing",
		Mode:      model.ModePipe,
	}, time.Now())
	require.NoError(t, err)

	deadline := time.Now().Add(3 * time.Second)
	var res *worker.Result
	for time.Now().Before(deadline) {
		res, err = c.GetResult("task1", 10)
		require.NoError(t, err)
		if res.Status == model.WorkerCompleted {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, model.WorkerCompleted, res.Status)
}

func TestKillWorker_ReportsNotAliveWithoutPIDFile(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	res, err := c.KillWorker("ghost")
	require.NoError(t, err)
	assert.False(t, res.WasAlive)
}

func TestRunPipeline_GeneratesPipelineIDWhenAbsent(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	steps := []model.PipelineStepSpec{{Name: "only", Prompt: "go"}}
	meta, err := c.RunPipeline(context.Background(), "", t.TempDir(), steps, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, meta.PipelineID)
}

func TestGetPipeline_RejectsUnknown(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	_, _, _, err := c.GetPipeline("ghost")
	assert.Error(t, err)
}

func TestWakeSession_RejectsUnknownSession(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	_, err := c.WakeSession("ghostghost", "wake up", time.Now())
	assert.ErrorContains(t, err, "not_found")
}

func TestWakeSession_FallsBackToInboxWhenNoPlatformBackend(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	now := time.Now()
	require.NoError(t, writeSession(c.Root, baseSession("abcd1234", now)))

	res, err := c.WakeSession("abcd1234", "please check in", now)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Backend)
}

func TestSendDirective_WakesIdleWorkerBeforeDelivering(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	old := time.Now().Add(-time.Hour)
	require.NoError(t, writeSession(c.Root, baseSession("abcd1234", old)))

	err := c.SendDirective("abcd1234", "stop and review", model.PriorityNormal, time.Now())
	require.NoError(t, err)

	messages, err := store.ReadJSONL[model.InboxMessage](c.Root.InboxPath("abcd1234"), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, messages)
}

func TestSendDirective_SkipsWakeWhenRecentlyActive(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	now := time.Now()
	require.NoError(t, writeSession(c.Root, baseSession("abcd1234", now)))

	err := c.SendDirective("abcd1234", "heads up", model.PriorityNormal, now)
	require.NoError(t, err)
}

func TestSpawnTerminal_OpensSomeBackend(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	res, err := c.SpawnTerminal(context.Background(), t.TempDir(), driver.LayoutTab)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Backend)
}
