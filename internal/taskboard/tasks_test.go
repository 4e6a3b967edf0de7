package taskboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

func TestCreateTask_WritesRecord(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	now := time.Now()

	task, err := CreateTask(root, CreateTaskInput{ID: "t1", Subject: "do the thing"}, now)
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, task.Status)

	got, err := GetTask(root, "t1")
	require.NoError(t, err)
	assert.Equal(t, "do the thing", got.Subject)
}

func TestCreateTask_RejectsIDCollision(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	_, err := CreateTask(root, CreateTaskInput{ID: "t1", Subject: "first"}, time.Now())
	require.NoError(t, err)

	_, err = CreateTask(root, CreateTaskInput{ID: "t1", Subject: "second"}, time.Now())
	assert.ErrorContains(t, err, "conflict")
}

func TestCreateTask_RejectsInvalidID(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	_, err := CreateTask(root, CreateTaskInput{ID: "../etc", Subject: "x"}, time.Now())
	assert.Error(t, err)
}

func TestCreateTask_RejectsEmptySubject(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	_, err := CreateTask(root, CreateTaskInput{ID: "t1"}, time.Now())
	assert.Error(t, err)
}

func TestCreateTask_RejectsDirectSelfCycle(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	_, err := CreateTask(root, CreateTaskInput{ID: "t1", Subject: "x", BlockedBy: []string{"t1"}}, time.Now())
	assert.ErrorContains(t, err, "conflict")
}

func TestUpdateTask_RejectsTransitiveCycle(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	now := time.Now()

	_, err := CreateTask(root, CreateTaskInput{ID: "a", Subject: "a"}, now)
	require.NoError(t, err)
	_, err = CreateTask(root, CreateTaskInput{ID: "b", Subject: "b", BlockedBy: []string{"a"}}, now)
	require.NoError(t, err)

	// a depends on b would close the cycle a -> b -> a.
	blockedBy := []string{"b"}
	_, err = UpdateTask(root, "a", UpdateTaskInput{BlockedBy: &blockedBy}, now)
	assert.ErrorContains(t, err, "conflict")
}

func TestUpdateTask_AppliesStatusAndAssignee(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	now := time.Now()
	_, err := CreateTask(root, CreateTaskInput{ID: "t1", Subject: "x"}, now)
	require.NoError(t, err)

	status := model.TaskInProgress
	assignee := "abcd1234"
	updated, err := UpdateTask(root, "t1", UpdateTaskInput{Status: &status, Assignee: &assignee}, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, model.TaskInProgress, updated.Status)
	assert.Equal(t, "abcd1234", updated.Assignee)
}

func TestUpdateTask_RejectsUnknownTask(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	status := model.TaskCompleted
	_, err := UpdateTask(root, "ghost", UpdateTaskInput{Status: &status}, time.Now())
	assert.ErrorContains(t, err, "not_found")
}

func TestListTasks_ReturnsAllRecords(t *testing.T) {
	root := store.NewRoot(t.TempDir())
	now := time.Now()
	_, err := CreateTask(root, CreateTaskInput{ID: "a", Subject: "a"}, now)
	require.NoError(t, err)
	_, err = CreateTask(root, CreateTaskInput{ID: "b", Subject: "b"}, now)
	require.NoError(t, err)

	tasks, err := ListTasks(root, nil)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}
