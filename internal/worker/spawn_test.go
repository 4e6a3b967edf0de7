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

func TestSpawn_WritesMetaAndPromptBeforeReturning(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()
	cfg.Worker.Binary = "true"
	now := time.Now()

	spec := SpawnSpec{TaskID: "task1", Directory: t.TempDir(), Prompt: "do the thing", Mode: model.ModePipe}
	meta, err := Spawn(context.Background(), root, cfg, spec, now)
	require.NoError(t, err)
	assert.Equal(t, model.WorkerRunning, meta.Status)
	assert.True(t, store.Exists(root.MetaPath("task1")))

	data, err := readFile(root.PromptPath("task1"))
	require.NoError(t, err)
	assert.Equal(t, "do the thing", data)

	waitForFile(t, root.DonePath("task1"), 3*time.Second)
}

func TestSpawn_RejectsDuplicateTaskID(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()
	cfg.Worker.Binary = "true"

	spec := SpawnSpec{TaskID: "dup1", Directory: t.TempDir(), Prompt: "p", Mode: model.ModePipe}
	_, err := Spawn(context.Background(), root, cfg, spec, time.Now())
	require.NoError(t, err)

	_, err = Spawn(context.Background(), root, cfg, spec, time.Now())
	assert.Error(t, err)
}

func TestSpawn_RejectsInvalidTaskIDBeforeAnyWrite(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	cfg := testConfig()

	spec := SpawnSpec{TaskID: "bad/id", Directory: t.TempDir(), Prompt: "p", Mode: model.ModePipe}
	_, err := Spawn(context.Background(), root, cfg, spec, time.Now())
	require.Error(t, err)
	assert.False(t, store.Exists(root.MetaPath("bad/id")))
}

func readFile(path string) (string, error) {
	data, err := readAll(path)
	return string(data), err
}
