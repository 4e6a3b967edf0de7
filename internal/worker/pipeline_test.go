package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

func TestRunPipeline_CompletesAllStepsInOrder(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()
	cfg.Worker.Binary = "true"

	steps := []model.PipelineStepSpec{
		{Name: "plan", Prompt: "make a plan"},
		{Name: "apply", Prompt: "apply the plan"},
	}

	meta, err := RunPipeline(context.Background(), root, cfg, "pipe1", t.TempDir(), steps, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.PipelineRunning, meta.Status)
	assert.Len(t, meta.StepIDs, 2)

	waitForFile(t, root.DonePath("pipe1"), 5*time.Second)

	var done model.PipelineDone
	require.NoError(t, store.ReadJSON(root.DonePath("pipe1"), &done))
	assert.Equal(t, model.PipelineCompleted, done.Status)
	assert.Empty(t, done.Failed)
}

func TestRunPipeline_FailsOnFirstFailingStep(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()
	cfg.Worker.Binary = "false"
	cfg.Worker.SpawnTimeout = 2 * time.Second

	steps := []model.PipelineStepSpec{
		{Name: "broken", Prompt: "this step fails"},
		{Name: "never-runs", Prompt: "should not execute"},
	}

	_, err := RunPipeline(context.Background(), root, cfg, "pipe2", t.TempDir(), steps, time.Now())
	require.Error(t, err)

	waitForFile(t, root.DonePath("pipe2"), 5*time.Second)
	var done model.PipelineDone
	require.NoError(t, store.ReadJSON(root.DonePath("pipe2"), &done))
	assert.Equal(t, model.PipelineFailed, done.Status)
	assert.Equal(t, "broken", done.Failed)
	assert.False(t, store.Exists(root.MetaPath("pipe2-01-never-runs")))
}

func TestRunPipeline_RejectsEmptySteps(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	_, err := RunPipeline(context.Background(), root, testConfig(), "pipe3", t.TempDir(), nil, time.Now())
	assert.Error(t, err)
}

func TestGetPipeline_AggregatesStepStatus(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()
	cfg.Worker.Binary = "true"

	steps := []model.PipelineStepSpec{{Name: "only", Prompt: "go"}}
	_, err := RunPipeline(context.Background(), root, cfg, "pipe4", t.TempDir(), steps, time.Now())
	require.NoError(t, err)
	waitForFile(t, root.DonePath("pipe4"), 5*time.Second)

	meta, done, statuses, err := GetPipeline(root, "pipe4")
	require.NoError(t, err)
	assert.Equal(t, "pipe4", meta.PipelineID)
	require.NotNil(t, done)
	assert.Equal(t, model.PipelineCompleted, done.Status)
	require.Len(t, statuses, 1)
	assert.Equal(t, model.WorkerCompleted, statuses[0])
}

func TestGetPipeline_RejectsUnknownPipeline(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	_, _, _, err := GetPipeline(root, "ghost")
	assert.Error(t, err)
}
