package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/holotask/internal/decompose"
	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/alexanderramin/holotask/internal/repository"
	"github.com/alexanderramin/holotask/internal/store"
	"github.com/alexanderramin/holotask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedDecomposer blocks each call until a refinement is sent on release.
type gatedDecomposer struct {
	calls   chan string
	release chan decompose.Refinement
}

func newGatedDecomposer() *gatedDecomposer {
	return &gatedDecomposer{calls: make(chan string, 8), release: make(chan decompose.Refinement)}
}

func (g *gatedDecomposer) Decompose(_ context.Context, text string) decompose.Refinement {
	g.calls <- text
	return <-g.release
}

type staticDecomposer struct{ r decompose.Refinement }

func (s staticDecomposer) Decompose(context.Context, string) decompose.Refinement { return s.r }

func newTestController(t *testing.T, d decompose.Service) (*Controller, *store.HoloStore) {
	t.Helper()
	st := store.New(repository.NewMemoryKVRepo())
	if d == nil {
		d = staticDecomposer{r: decompose.Fallback()}
	}
	return New(st, d, WithClock(func() time.Time { return testutil.FixedNow })), st
}

func waitDone(t *testing.T, p *Pending) decompose.Refinement {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r, err := p.Wait(ctx)
	require.NoError(t, err)
	return r
}

func TestScenario_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, st := newTestController(t, nil)

	require.NoError(t, c.Login(ctx, "nova"))
	users, err := st.GetUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.User{Username: "nova", Tasks: []domain.Task{}}, users["nova"])

	task, ok, err := c.AddTask(ctx, "Scout the perimeter")
	require.NoError(t, err)
	require.True(t, ok)
	tasks := c.Tasks()
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, domain.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, testutil.FixedNow.UnixMilli(), tasks[0].CreatedAt)

	require.NoError(t, c.AddSubtask(ctx, task.ID, "Check west flank"))
	tasks = c.Tasks()
	require.Len(t, tasks[0].Subtasks, 1)

	require.NoError(t, c.ToggleSubtask(ctx, task.ID, tasks[0].Subtasks[0].ID))
	tasks = c.Tasks()
	assert.True(t, tasks[0].Subtasks[0].Completed)
	assert.Equal(t, 100, tasks[0].PercentComplete())

	require.NoError(t, c.Logout(ctx))
	_, loggedIn := c.User()
	assert.False(t, loggedIn)
	assert.Empty(t, c.Tasks())

	require.NoError(t, c.Login(ctx, "nova"))
	after := c.Tasks()
	require.Len(t, after, 1)
	assert.Equal(t, "Scout the perimeter", after[0].Text)
	require.Len(t, after[0].Subtasks, 1)
	assert.Equal(t, "Check west flank", after[0].Subtasks[0].Text)
	assert.True(t, after[0].Subtasks[0].Completed)
}

func TestLogin_BlankUsername(t *testing.T) {
	c, _ := newTestController(t, nil)
	err := c.Login(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyUsername)
	_, loggedIn := c.User()
	assert.False(t, loggedIn)
}

func TestLogin_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)
	require.NoError(t, c.Login(ctx, "NOVA"))
	name, ok := c.User()
	assert.True(t, ok)
	assert.Equal(t, "nova", name)
}

func TestResume(t *testing.T) {
	ctx := context.Background()
	st := store.New(repository.NewMemoryKVRepo())

	first := New(st, staticDecomposer{})
	resumed, err := first.Resume(ctx)
	require.NoError(t, err)
	assert.False(t, resumed)

	require.NoError(t, first.Login(ctx, "nova"))
	_, _, err = first.AddTask(ctx, "Refuel")
	require.NoError(t, err)

	second := New(st, staticDecomposer{})
	resumed, err = second.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, resumed)
	name, _ := second.User()
	assert.Equal(t, "nova", name)
	assert.Len(t, second.Tasks(), 1)

	require.NoError(t, second.Logout(ctx))
	third := New(st, staticDecomposer{})
	resumed, err = third.Resume(ctx)
	require.NoError(t, err)
	assert.False(t, resumed)
}

func TestMutators_RequireSession(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)

	_, _, err := c.AddTask(ctx, "x")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, c.ToggleTask(ctx, "t"), ErrNoSession)
	assert.ErrorIs(t, c.DeleteTask(ctx, "t"), ErrNoSession)
	assert.ErrorIs(t, c.SetPriority(ctx, "t", domain.PriorityHigh), ErrNoSession)
	assert.ErrorIs(t, c.AddSubtask(ctx, "t", "s"), ErrNoSession)
	assert.ErrorIs(t, c.ToggleSubtask(ctx, "t", "s"), ErrNoSession)
	assert.ErrorIs(t, c.DeleteSubtask(ctx, "t", "s"), ErrNoSession)
	_, err = c.Decompose(ctx, "t")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAddTask_BlankIgnored(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)
	require.NoError(t, c.Login(ctx, "nova"))

	_, ok, err := c.AddTask(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, c.Tasks())
}

func TestMutators_PersistEveryChange(t *testing.T) {
	ctx := context.Background()
	c, st := newTestController(t, nil)
	require.NoError(t, c.Login(ctx, "nova"))

	task, _, err := c.AddTask(ctx, "Refuel")
	require.NoError(t, err)
	require.NoError(t, c.SetPriority(ctx, task.ID, domain.PriorityHigh))
	require.NoError(t, c.ToggleTask(ctx, task.ID))

	user, err := st.Login(ctx, "nova")
	require.NoError(t, err)
	require.Len(t, user.Tasks, 1)
	assert.Equal(t, domain.PriorityHigh, user.Tasks[0].Priority)
	assert.True(t, user.Tasks[0].Completed)
	assert.Equal(t, 1.0, c.CompletionRate())

	require.NoError(t, c.DeleteTask(ctx, task.ID))
	user, err = st.Login(ctx, "nova")
	require.NoError(t, err)
	assert.Empty(t, user.Tasks)
}

func TestMutators_PersistFailureKeepsSessionState(t *testing.T) {
	ctx := context.Background()
	errDisk := errors.New("disk full")
	// Login writes the record and the marker; the third write fails.
	failing := &testutil.FailingKV{KV: repository.NewMemoryKVRepo(), FailAfter: 2, Err: errDisk}
	c := New(store.New(failing), staticDecomposer{})
	require.NoError(t, c.Login(ctx, "nova"))

	_, ok, err := c.AddTask(ctx, "Refuel")
	assert.True(t, ok)
	assert.ErrorIs(t, err, errDisk)
	assert.Len(t, c.Tasks(), 1)
}

func TestTasks_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)
	require.NoError(t, c.Login(ctx, "nova"))
	task, _, err := c.AddTask(ctx, "Refuel")
	require.NoError(t, err)

	tasks := c.Tasks()
	tasks[0].Text = "changed"
	got, ok := c.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Refuel", got.Text)
}

func TestExpanded(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, nil)
	require.NoError(t, c.Login(ctx, "nova"))
	task, _, err := c.AddTask(ctx, "Refuel")
	require.NoError(t, err)

	assert.False(t, c.IsExpanded(task.ID))
	c.ToggleExpanded(task.ID)
	assert.True(t, c.IsExpanded(task.ID))
	c.ToggleExpanded(task.ID)
	assert.False(t, c.IsExpanded(task.ID))

	c.ToggleExpanded(task.ID)
	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.IsExpanded(task.ID))
}
