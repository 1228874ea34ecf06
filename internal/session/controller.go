package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/holotask/internal/decompose"
	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/alexanderramin/holotask/internal/store"
)

var (
	// ErrNoSession is returned by task operations when nobody is logged in.
	ErrNoSession = errors.New("no user logged in")
	// ErrUnknownTask is returned when a task id is not in the current list.
	ErrUnknownTask = errors.New("unknown task")
	// ErrEmptyUsername is returned by Login for a blank username.
	ErrEmptyUsername = store.ErrEmptyUsername
)

// Store is the persistence the controller needs. *store.HoloStore implements it.
type Store interface {
	Login(ctx context.Context, username string) (domain.User, error)
	UpdateTasks(ctx context.Context, username string, tasks []domain.Task) error
	CurrentUser(ctx context.Context) (string, bool, error)
	SetCurrentUser(ctx context.Context, username string) error
	ClearCurrentUser(ctx context.Context) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for session events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock replaces time.Now for task creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the logged-in user and their task list, applies task
// operations and persists the result after every change. It is safe for
// concurrent use.
type Controller struct {
	store      Store
	decomposer decompose.Service
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	user     string
	loggedIn bool
	// generation changes on every login and logout so late decomposition
	// results can tell whether their session is still current.
	generation uint64
	tasks      []domain.Task
	expanded   map[string]bool
	refining   map[string]int
}

// New creates a Controller with nobody logged in.
func New(st Store, decomposer decompose.Service, opts ...Option) *Controller {
	c := &Controller{
		store:      st,
		decomposer: decomposer,
		logger:     slog.Default(),
		now:        time.Now,
		expanded:   make(map[string]bool),
		refining:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resume logs in the user named by the stored marker, if any.
func (c *Controller) Resume(ctx context.Context) (bool, error) {
	name, ok, err := c.store.CurrentUser(ctx)
	if err != nil {
		return false, fmt.Errorf("reading current user: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := c.Login(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}

// Login loads (or creates) the user's record and makes it the session.
func (c *Controller) Login(ctx context.Context, username string) error {
	user, err := c.store.Login(ctx, username)
	if err != nil {
		return err
	}
	if err := c.store.SetCurrentUser(ctx, user.Username); err != nil {
		return fmt.Errorf("recording current user: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.user = user.Username
	c.loggedIn = true
	c.tasks = user.Tasks
	c.logger.Info("login", "user", c.user, "tasks", len(c.tasks))
	return nil
}

// Logout ends the session. The stored record is kept.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	if c.loggedIn {
		c.logger.Info("logout", "user", c.user)
	}
	c.resetLocked()
	c.mu.Unlock()

	if err := c.store.ClearCurrentUser(ctx); err != nil {
		return fmt.Errorf("clearing current user: %w", err)
	}
	return nil
}

func (c *Controller) resetLocked() {
	c.generation++
	c.user = ""
	c.loggedIn = false
	c.tasks = nil
	c.expanded = make(map[string]bool)
	c.refining = make(map[string]int)
}

// User returns the logged-in username.
func (c *Controller) User() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, c.loggedIn
}

// Tasks returns a copy of the current task list.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CloneTasks(c.tasks)
}

// Task returns a copy of one task.
func (c *Controller) Task(taskID string) (domain.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := domain.FindTask(c.tasks, taskID)
	if !ok {
		return domain.Task{}, false
	}
	return t.Clone(), true
}

// CompletionRate is the mean progress of the current task list.
func (c *Controller) CompletionRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CompletionRate(c.tasks)
}

// apply runs fn over the task list and persists the result. The in-session
// list stays updated even if persisting fails.
func (c *Controller) apply(ctx context.Context, op string, fn func([]domain.Task) []domain.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loggedIn {
		return ErrNoSession
	}
	c.tasks = fn(c.tasks)
	return c.persistLocked(ctx, op)
}

func (c *Controller) persistLocked(ctx context.Context, op string) error {
	if err := c.store.UpdateTasks(ctx, c.user, c.tasks); err != nil {
		c.logger.Error("persist failed", "op", op, "user", c.user, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("persisted", "op", op, "user", c.user, "tasks", len(c.tasks))
	return nil
}

// AddTask prepends a task. ok is false when text is blank.
func (c *Controller) AddTask(ctx context.Context, text string) (task domain.Task, ok bool, err error) {
	err = c.apply(ctx, "add task", func(tasks []domain.Task) []domain.Task {
		next := domain.AddTask(tasks, text, c.now())
		if len(next) != len(tasks) {
			task, ok = next[0].Clone(), true
		}
		return next
	})
	return task, ok, err
}

func (c *Controller) ToggleTask(ctx context.Context, taskID string) error {
	return c.apply(ctx, "toggle task", func(tasks []domain.Task) []domain.Task {
		return domain.ToggleTask(tasks, taskID)
	})
}

func (c *Controller) DeleteTask(ctx context.Context, taskID string) error {
	return c.apply(ctx, "delete task", func(tasks []domain.Task) []domain.Task {
		delete(c.expanded, taskID)
		return domain.DeleteTask(tasks, taskID)
	})
}

func (c *Controller) SetPriority(ctx context.Context, taskID string, p domain.Priority) error {
	return c.apply(ctx, "set priority", func(tasks []domain.Task) []domain.Task {
		return domain.SetPriority(tasks, taskID, p)
	})
}

func (c *Controller) AddSubtask(ctx context.Context, taskID, text string) error {
	return c.apply(ctx, "add subtask", func(tasks []domain.Task) []domain.Task {
		return domain.AddSubtask(tasks, taskID, text)
	})
}

func (c *Controller) ToggleSubtask(ctx context.Context, taskID, subtaskID string) error {
	return c.apply(ctx, "toggle subtask", func(tasks []domain.Task) []domain.Task {
		return domain.ToggleSubtask(tasks, taskID, subtaskID)
	})
}

func (c *Controller) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	return c.apply(ctx, "delete subtask", func(tasks []domain.Task) []domain.Task {
		return domain.DeleteSubtask(tasks, taskID, subtaskID)
	})
}

// ToggleExpanded flips whether a task's subtasks are shown.
func (c *Controller) ToggleExpanded(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expanded[taskID] {
		delete(c.expanded, taskID)
		return
	}
	c.expanded[taskID] = true
}

func (c *Controller) IsExpanded(taskID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded[taskID]
}

// IsRefining reports whether a decomposition for the task is outstanding.
func (c *Controller) IsRefining(taskID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refining[taskID] > 0
}
