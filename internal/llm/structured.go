package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the first JSON object out of raw model text, checks it
// against schema (when non-nil) and decodes it into T. Markdown code fences
// and chatter around the object are tolerated.
func ExtractJSON[T any](raw string, schema *Schema) (T, error) {
	var zero T

	block := firstObject(withoutFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	if schema != nil {
		var doc any
		if err := json.Unmarshal([]byte(block), &doc); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
		if err := schema.Validate(doc); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	}

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return result, nil
}

// withoutFences drops markdown fence lines (```json, ```), keeping their content.
func withoutFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// firstObject returns the first balanced { ... } block, ignoring braces
// inside string literals.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
