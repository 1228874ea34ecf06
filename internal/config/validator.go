package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/holotask/internal/llm"
)

// ValidationError is one invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json"}
)

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	add := func(field string, value any, msg string) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: msg})
	}

	if strings.TrimSpace(c.DBPath) == "" {
		add("db_path", c.DBPath, "must not be empty")
	}
	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		add("log.level", c.Log.Level, "must be one of "+strings.Join(validLevels, ", "))
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		add("log.format", c.Log.Format, "must be one of "+strings.Join(validFormats, ", "))
	}
	if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
		add("llm.provider", c.LLM.Provider, "must be ollama or gemini")
	}
	if c.LLM.TimeoutMs < 0 {
		add("llm.timeout_ms", c.LLM.TimeoutMs, "must not be negative")
	}
	if c.LLM.MaxRetries < 0 {
		add("llm.max_retries", c.LLM.MaxRetries, "must not be negative")
	}
	return errs
}
