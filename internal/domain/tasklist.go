package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// The functions in this file are pure: they never modify the list passed in
// or any task reachable from it. When an operation does not apply (blank
// text, unknown id) the input list is returned as is.

func newID() string {
	return uuid.New().String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NewTask builds a task as created by a user submission.
func NewTask(text string, now time.Time) Task {
	return Task{
		ID:        newID(),
		Text:      text,
		Completed: false,
		Priority:  PriorityMedium,
		CreatedAt: now.UnixMilli(),
		Subtasks:  []Subtask{},
	}
}

// NewSubtask builds an incomplete subtask with a fresh id.
func NewSubtask(text string) Subtask {
	return Subtask{ID: newID(), Text: text}
}

// IndexOfTask returns the position of the task with the given id, or -1.
func IndexOfTask(tasks []Task, taskID string) int {
	for i, t := range tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// FindTask returns the task with the given id.
func FindTask(tasks []Task, taskID string) (Task, bool) {
	i := IndexOfTask(tasks, taskID)
	if i < 0 {
		return Task{}, false
	}
	return tasks[i], true
}

func indexOfSubtask(subs []Subtask, subtaskID string) int {
	for i, s := range subs {
		if s.ID == subtaskID {
			return i
		}
	}
	return -1
}

// withTask returns a copy of tasks with position i replaced by t.
func withTask(tasks []Task, i int, t Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	out[i] = t
	return out
}

// AddTask prepends a new task built from text. Blank text is ignored.
func AddTask(tasks []Task, text string, now time.Time) []Task {
	if isBlank(text) {
		return tasks
	}
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, NewTask(text, now))
	return append(out, tasks...)
}

// ToggleTask flips the completed flag of a task.
func ToggleTask(tasks []Task, taskID string) []Task {
	i := IndexOfTask(tasks, taskID)
	if i < 0 {
		return tasks
	}
	t := tasks[i]
	t.Completed = !t.Completed
	return withTask(tasks, i, t)
}

// DeleteTask removes a task.
func DeleteTask(tasks []Task, taskID string) []Task {
	i := IndexOfTask(tasks, taskID)
	if i < 0 {
		return tasks
	}
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}

// SetPriority changes a task's priority. Invalid priorities are ignored.
func SetPriority(tasks []Task, taskID string, p Priority) []Task {
	if !p.Valid() {
		return tasks
	}
	i := IndexOfTask(tasks, taskID)
	if i < 0 {
		return tasks
	}
	t := tasks[i]
	t.Priority = p
	return withTask(tasks, i, t)
}

// AddSubtask appends a subtask to the end of a task's subtasks. Blank text
// is ignored.
func AddSubtask(tasks []Task, taskID, text string) []Task {
	if isBlank(text) {
		return tasks
	}
	return AppendSubtasks(tasks, taskID, []string{text})
}

// AppendSubtasks appends one subtask per text, in order and unfiltered. It is
// the merge step for decomposition results, so a task deleted while the
// results were pending simply receives nothing.
func AppendSubtasks(tasks []Task, taskID string, texts []string) []Task {
	i := IndexOfTask(tasks, taskID)
	if i < 0 || len(texts) == 0 {
		return tasks
	}
	added := make([]Subtask, 0, len(texts))
	for _, text := range texts {
		added = append(added, NewSubtask(text))
	}

	t := tasks[i]
	subs := make([]Subtask, 0, len(t.Subtasks)+len(added))
	subs = append(subs, t.Subtasks...)
	t.Subtasks = append(subs, added...)
	return withTask(tasks, i, t)
}

// ToggleSubtask flips the completed flag of one subtask.
func ToggleSubtask(tasks []Task, taskID, subtaskID string) []Task {
	i := IndexOfTask(tasks, taskID)
	if i < 0 {
		return tasks
	}
	t := tasks[i]
	j := indexOfSubtask(t.Subtasks, subtaskID)
	if j < 0 {
		return tasks
	}
	subs := make([]Subtask, len(t.Subtasks))
	copy(subs, t.Subtasks)
	subs[j].Completed = !subs[j].Completed
	t.Subtasks = subs
	return withTask(tasks, i, t)
}

// DeleteSubtask removes one subtask from a task.
func DeleteSubtask(tasks []Task, taskID, subtaskID string) []Task {
	i := IndexOfTask(tasks, taskID)
	if i < 0 {
		return tasks
	}
	t := tasks[i]
	j := indexOfSubtask(t.Subtasks, subtaskID)
	if j < 0 {
		return tasks
	}
	subs := make([]Subtask, 0, len(t.Subtasks)-1)
	subs = append(subs, t.Subtasks[:j]...)
	t.Subtasks = append(subs, t.Subtasks[j+1:]...)
	return withTask(tasks, i, t)
}
