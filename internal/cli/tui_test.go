package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/holotask/internal/decompose"
	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/alexanderramin/holotask/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedDecomposer blocks until a refinement is sent on release.
type gatedDecomposer struct {
	release chan decompose.Refinement
}

func (g *gatedDecomposer) Decompose(context.Context, string) decompose.Refinement {
	return <-g.release
}

func newTUIDriver(t *testing.T, env *cliEnv, opts ...teatest.Option) *teatest.Driver {
	t.Helper()
	opts = append([]teatest.Option{teatest.WithSize(100, 40)}, opts...)
	d := teatest.New(t, newTUIModel(context.Background(), env.app), opts...)
	d.DrainInit()
	return d
}

func tuiState(d *teatest.Driver) tuiModel {
	return d.Model.(tuiModel)
}

func loggedInEnv(t *testing.T, tasks ...string) *cliEnv {
	t.Helper()
	env := newCLIEnv(t)
	ctx := context.Background()
	require.NoError(t, env.app.Session.Login(ctx, "nova"))
	// Added in reverse so the list reads in the order given.
	for i := len(tasks) - 1; i >= 0; i-- {
		_, _, err := env.app.Session.AddTask(ctx, tasks[i])
		require.NoError(t, err)
	}
	return env
}

func TestTUI_LoginScreen(t *testing.T) {
	env := newCLIEnv(t)
	d := newTUIDriver(t, env)

	assert.Equal(t, screenLogin, tuiState(d).screen)
	assert.True(t, d.ViewContains("HOLOTASK", "Secure Command Uplink", "PERSISTENT_STORAGE: LOCAL_DB_V2_ACTIVE"))

	d.Press("enter")
	assert.Equal(t, screenLogin, tuiState(d).screen)
	assert.True(t, d.ViewContains("Commander ID required."))

	d.Submit("Nova")
	assert.Equal(t, screenMain, tuiState(d).screen)
	assert.True(t, d.ViewContains("nova", "FLEET_EFFICIENCY", "No objectives yet."))

	user, ok := env.app.Session.User()
	require.True(t, ok)
	assert.Equal(t, "nova", user)
}

func TestTUI_StartsOnMainScreenWhenLoggedIn(t *testing.T) {
	env := loggedInEnv(t, "Scout the perimeter")
	d := newTUIDriver(t, env)

	assert.Equal(t, screenMain, tuiState(d).screen)
	assert.True(t, d.ViewContains("Scout the perimeter", "MEDIUM"))
}

func TestTUI_AddTaskAndSubtask(t *testing.T) {
	env := loggedInEnv(t)
	d := newTUIDriver(t, env)

	d.PressKey('a')
	assert.Equal(t, modeAddTask, tuiState(d).mode)
	d.Submit("Plan the gala")
	assert.Equal(t, modeBrowse, tuiState(d).mode)

	d.PressKey('s')
	assert.Equal(t, modeAddSubtask, tuiState(d).mode)
	d.Submit("Book venue")

	tasks := env.storedTasks("nova")
	require.Len(t, tasks, 1)
	assert.Equal(t, "Plan the gala", tasks[0].Text)
	require.Len(t, tasks[0].Subtasks, 1)
	assert.Equal(t, "Book venue", tasks[0].Subtasks[0].Text)
	assert.True(t, d.ViewContains("Plan the gala", "└─ [ ] Book venue"))
}

func TestTUI_EscCancelsInput(t *testing.T) {
	env := loggedInEnv(t)
	d := newTUIDriver(t, env)

	d.PressKey('a')
	d.Type("never mind")
	d.Press("esc")

	assert.Equal(t, modeBrowse, tuiState(d).mode)
	assert.Empty(t, env.storedTasks("nova"))
}

func TestTUI_ToggleAndNavigate(t *testing.T) {
	env := loggedInEnv(t, "first", "second")
	d := newTUIDriver(t, env)

	d.Press("down")
	d.PressKey('x')
	tasks := env.storedTasks("nova")
	assert.False(t, tasks[0].Completed)
	assert.True(t, tasks[1].Completed)

	d.Press("down")
	assert.Equal(t, 1, tuiState(d).cursor, "cursor stops at the last row")
	d.PressKey('k')
	assert.Equal(t, 0, tuiState(d).cursor)
}

func TestTUI_SubtaskRows(t *testing.T) {
	env := loggedInEnv(t, "Plan the gala")
	ctx := context.Background()
	id := env.app.Session.Tasks()[0].ID
	require.NoError(t, env.app.Session.AddSubtask(ctx, id, "Book venue"))
	require.NoError(t, env.app.Session.AddSubtask(ctx, id, "Hire band"))

	d := newTUIDriver(t, env)
	d.Press("enter")
	assert.Len(t, tuiState(d).rows(), 3)

	d.Press("down")
	d.Press("down")
	d.PressKey('x')
	subs := env.storedTasks("nova")[0].Subtasks
	assert.False(t, subs[0].Completed)
	assert.True(t, subs[1].Completed)
	assert.True(t, d.ViewContains(" 50%"))

	d.PressKey('d')
	require.Len(t, env.storedTasks("nova")[0].Subtasks, 1)
	assert.Equal(t, 1, tuiState(d).cursor)

	// Collapsing from a subtask row moves the cursor to its task.
	d.Press("enter")
	assert.Equal(t, 0, tuiState(d).cursor)
	assert.Len(t, tuiState(d).rows(), 1)
}

func TestTUI_PriorityAndDelete(t *testing.T) {
	env := loggedInEnv(t, "Scout")
	d := newTUIDriver(t, env)

	d.PressKey('p')
	assert.Equal(t, domain.PriorityHigh, env.storedTasks("nova")[0].Priority)

	d.PressKey('d')
	assert.Empty(t, env.storedTasks("nova"))
	assert.True(t, d.ViewContains("No objectives yet."))
}

func TestTUI_DecomposeMarksRefiningUntilMerged(t *testing.T) {
	env := loggedInEnv(t, "Plan the gala")
	gate := &gatedDecomposer{release: make(chan decompose.Refinement)}
	env.setDecomposer(gate)
	require.NoError(t, env.app.Session.Login(context.Background(), "nova"))

	d := newTUIDriver(t, env)
	id := env.app.Session.Tasks()[0].ID

	d.PressKey('r')
	assert.True(t, env.app.Session.IsRefining(id))
	assert.True(t, d.ViewContains("refining…"))

	// Other operations stay available while the request is outstanding.
	d.PressKey('p')
	assert.Equal(t, domain.PriorityHigh, env.storedTasks("nova")[0].Priority)

	gate.release <- decompose.Refinement{Subtasks: []string{"Book venue", "Send invites"}, EstimatedTime: "2 weeks", Category: "Events"}
	require.Eventually(t, func() bool { return !env.app.Session.IsRefining(id) }, 2*time.Second, 5*time.Millisecond)

	assert.True(t, d.ViewContains("Book venue", "Send invites"))
	assert.NotContains(t, d.View(), "refining…")
	assert.Len(t, env.storedTasks("nova")[0].Subtasks, 2)
}

func TestTUI_DecomposeReportsResult(t *testing.T) {
	env := loggedInEnv(t, "Plan the gala")
	env.setDecomposer(fakeDecomposer{r: decompose.Refinement{Subtasks: []string{"a", "b"}, EstimatedTime: "1 day", Category: "Events"}})
	require.NoError(t, env.app.Session.Login(context.Background(), "nova"))

	d := newTUIDriver(t, env, teatest.WithCmdTimeout(2*time.Second))
	d.PressKey('r')

	assert.True(t, d.ViewContains("Decomposed into 2 sub-directives (Events, 1 day)."))
	assert.False(t, tuiState(d).spinning)
}

func TestTUI_Logout(t *testing.T) {
	env := loggedInEnv(t, "Scout")
	d := newTUIDriver(t, env)

	d.PressKey('L')
	assert.Equal(t, screenLogin, tuiState(d).screen)
	_, ok := env.app.Session.User()
	assert.False(t, ok)

	d.Submit("nova")
	assert.True(t, d.ViewContains("Scout"))
}

func TestTUI_HelpAndQuit(t *testing.T) {
	env := loggedInEnv(t)
	d := newTUIDriver(t, env)

	assert.True(t, d.ViewContains("new objective"))
	assert.False(t, d.ViewContains("cycle priority"))
	d.PressKey('?')
	assert.True(t, d.ViewContains("cycle priority"))

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
