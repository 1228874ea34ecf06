package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/holotask/internal/domain"
)

// resolveRef finds the item a user typed. ref may be a 1-based position in
// items, a full id, or a unique id prefix. Positions win over prefixes.
func resolveRef[T any](items []T, id func(T) string, ref, kind string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("empty %s reference", kind)
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1], nil
	}

	var matches []T
	for _, item := range items {
		itemID := id(item)
		if itemID == ref {
			return item, nil
		}
		if strings.HasPrefix(itemID, ref) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s %q not found", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%s %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}

func resolveTask(tasks []domain.Task, ref string) (domain.Task, error) {
	return resolveRef(tasks, func(t domain.Task) string { return t.ID }, ref, "task")
}

func resolveSubtask(task domain.Task, ref string) (domain.Subtask, error) {
	return resolveRef(task.Subtasks, func(s domain.Subtask) string { return s.ID }, ref, "subtask")
}
