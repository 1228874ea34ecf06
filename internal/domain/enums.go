package domain

import (
	"fmt"
	"strings"
)

// Priority ranks a task. New tasks start at PriorityMedium.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ValidPriorities is the canonical set of accepted priority values.
var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

func (p Priority) Valid() bool { return ValidPriorities[p] }

// Next cycles LOW -> MEDIUM -> HIGH -> LOW. Unknown values restart at LOW.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// ParsePriority accepts a priority name in any case ("high", "High", "HIGH").
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (want low, medium or high)", s)
	}
	return p, nil
}
