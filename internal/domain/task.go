package domain

import (
	"math"
	"strings"
	"time"
)

// Subtask is a completion-tracked step owned by exactly one Task.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a top-level objective. CreatedAt is Unix milliseconds so the
// stored document keeps the numeric timestamp layout.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	CreatedAt int64     `json:"createdAt"`
	Subtasks  []Subtask `json:"subtasks"`
}

// User is a stored user record keyed by its lower-case username.
type User struct {
	Username string `json:"username"`
	Tasks    []Task `json:"tasks"`
}

// Created returns CreatedAt as a time.Time.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// CompletedSubtasks counts subtasks marked completed.
func (t Task) CompletedSubtasks() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}

// Progress is 1 or 0 from the task's own flag when it has no subtasks,
// otherwise the fraction of subtasks completed.
func (t Task) Progress() float64 {
	if len(t.Subtasks) == 0 {
		if t.Completed {
			return 1
		}
		return 0
	}
	return float64(t.CompletedSubtasks()) / float64(len(t.Subtasks))
}

// PercentComplete is Progress scaled to 0-100 and rounded to the nearest integer.
func (t Task) PercentComplete() int {
	return int(math.Round(t.Progress() * 100))
}

// CompletionRate is the mean Progress over all tasks, 0 for an empty list.
func CompletionRate(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	var total float64
	for _, t := range tasks {
		total += t.Progress()
	}
	return total / float64(len(tasks))
}

// NormalizeUsername is the store key for a username. Only case is folded;
// surrounding whitespace is significant.
func NormalizeUsername(s string) string {
	return strings.ToLower(s)
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	if t.Subtasks != nil {
		subs := make([]Subtask, len(t.Subtasks))
		copy(subs, t.Subtasks)
		t.Subtasks = subs
	}
	return t
}

// CloneTasks deep-copies a task list. A nil list stays nil.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
