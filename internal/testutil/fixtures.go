package testutil

import (
	"time"

	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is a stable clock value for tests.
var FixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// Task options
type TaskOption func(*domain.Task)

// WithSubtasks adds one subtask per text; a leading "x " marks it completed.
func WithSubtasks(texts ...string) TaskOption {
	return func(t *domain.Task) {
		for _, text := range texts {
			s := domain.Subtask{ID: uuid.New().String(), Text: text}
			if len(text) > 2 && text[:2] == "x " {
				s.Text = text[2:]
				s.Completed = true
			}
			t.Subtasks = append(t.Subtasks, s)
		}
	}
}

func NewTestTask(text string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:        uuid.New().String(),
		Text:      text,
		Priority:  domain.PriorityMedium,
		CreatedAt: FixedNow.UnixMilli(),
		Subtasks:  []domain.Subtask{},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func NewTestUser(username string, tasks ...domain.Task) domain.User {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return domain.User{Username: username, Tasks: tasks}
}
