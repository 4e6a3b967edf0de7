package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/termcoord/internal/taskboard"
)

func TestCreateTask_DelegatesToTaskboard(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	task, err := c.CreateTask(taskboard.CreateTaskInput{ID: "t1", Subject: "ship it"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "ship it", task.Subject)

	got, err := c.GetTask("t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
}

func TestListTasks_ReturnsCreatedTasks(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	now := time.Now()
	_, err := c.CreateTask(taskboard.CreateTaskInput{ID: "t1", Subject: "a"}, now)
	require.NoError(t, err)
	_, err = c.CreateTask(taskboard.CreateTaskInput{ID: "t2", Subject: "b"}, now)
	require.NoError(t, err)

	tasks, err := c.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestCreateTeam_DelegatesToTaskboard(t *testing.T) {
	c := newTestCoordinator(t.TempDir())
	team, err := c.CreateTeam("squad", "proj", []string{"abcd1234"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"abcd1234"}, team.Members)

	got, err := c.GetTeam("squad")
	require.NoError(t, err)
	assert.Equal(t, "squad", got.Name)
}
