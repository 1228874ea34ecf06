package session

import (
	"context"

	"github.com/alexanderramin/holotask/internal/decompose"
	"github.com/alexanderramin/holotask/internal/domain"
)

// Pending is an outstanding decomposition.
type Pending struct {
	TaskID string

	done       chan struct{}
	refinement decompose.Refinement
	err        error
}

// Done is closed once the result has been merged (or dropped).
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the decomposition finishes or ctx ends. The returned
// error is ctx's error or a failure to persist the merged list; the
// decomposition itself never fails.
func (p *Pending) Wait(ctx context.Context) (decompose.Refinement, error) {
	select {
	case <-ctx.Done():
		return decompose.Refinement{}, ctx.Err()
	case <-p.done:
		return p.refinement, p.err
	}
}

// Decompose asks the decomposer for subtasks of a task and appends them when
// they arrive. The task is marked refining until then. Other operations,
// including on the same task, stay available meanwhile. The request is not
// cancelled when ctx ends.
func (c *Controller) Decompose(ctx context.Context, taskID string) (*Pending, error) {
	c.mu.Lock()
	if !c.loggedIn {
		c.mu.Unlock()
		return nil, ErrNoSession
	}
	task, ok := domain.FindTask(c.tasks, taskID)
	if !ok {
		c.mu.Unlock()
		return nil, ErrUnknownTask
	}
	gen := c.generation
	c.refining[taskID]++
	c.mu.Unlock()

	p := &Pending{TaskID: taskID, done: make(chan struct{})}
	bg := context.WithoutCancel(ctx)
	go func() {
		defer close(p.done)
		p.refinement = c.decomposer.Decompose(bg, task.Text)
		p.err = c.merge(bg, gen, taskID, p.refinement)
	}()
	return p, nil
}

func (c *Controller) merge(ctx context.Context, gen uint64, taskID string, r decompose.Refinement) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug("dropping decomposition for ended session", "task_id", taskID)
		return nil
	}

	if c.refining[taskID] <= 1 {
		delete(c.refining, taskID)
	} else {
		c.refining[taskID]--
	}

	if domain.IndexOfTask(c.tasks, taskID) < 0 {
		c.logger.Debug("dropping decomposition for deleted task", "task_id", taskID)
		return nil
	}
	c.tasks = domain.AppendSubtasks(c.tasks, taskID, r.Subtasks)
	c.expanded[taskID] = true
	c.logger.Info("decomposition merged", "task_id", taskID, "subtasks", len(r.Subtasks), "category", r.Category)
	return c.persistLocked(ctx, "merge decomposition")
}
