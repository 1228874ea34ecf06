package decompose

// Refinement is the structured answer to a decomposition request.
// EstimatedTime and Category are returned to callers but not stored on tasks.
type Refinement struct {
	Subtasks      []string `json:"subtasks"`
	EstimatedTime string   `json:"estimatedTime"`
	Category      string   `json:"category"`
}

// Fallback is returned whenever a decomposition cannot be obtained.
func Fallback() Refinement {
	return Refinement{
		Subtasks:      []string{"Unable to decompose task", "Check system environment settings"},
		EstimatedTime: "Unknown",
		Category:      "Error",
	}
}

// IsFallback reports whether r is the fixed fallback value.
func (r Refinement) IsFallback() bool {
	fb := Fallback()
	if r.EstimatedTime != fb.EstimatedTime || r.Category != fb.Category || len(r.Subtasks) != len(fb.Subtasks) {
		return false
	}
	for i := range r.Subtasks {
		if r.Subtasks[i] != fb.Subtasks[i] {
			return false
		}
	}
	return true
}
