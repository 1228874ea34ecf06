package llm

import (
	"fmt"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskDecompose TaskType = "decompose"
)

// Provider names a text-generation backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// ParseProvider accepts a provider name in any case.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderOllama, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("unknown llm provider %q (want ollama or gemini)", s)
	}
}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int // 0 disables the request deadline
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default, never retries and sets no request deadline.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   DefaultEndpoint(ProviderOllama),
		Model:      DefaultModel(ProviderOllama),
		TimeoutMs:  0,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskDecompose: {Temperature: 0.3, MaxTokens: 1024},
		},
	}
}

// DefaultEndpoint is the base URL used when none is configured.
func DefaultEndpoint(p Provider) string {
	if p == ProviderGemini {
		return "https://generativelanguage.googleapis.com"
	}
	return "http://localhost:11434"
}

// DefaultModel is the model used when none is configured.
func DefaultModel(p Provider) string {
	if p == ProviderGemini {
		return "gemini-3-flash-preview"
	}
	return "llama3.2"
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
