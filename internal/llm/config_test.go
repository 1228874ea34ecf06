package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_DisabledWithoutRetriesOrDeadline(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 0, cfg.TaskTimeout(TaskDecompose))
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 9000
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskDecompose))

	cfg.Tasks[TaskDecompose] = TaskConfig{TimeoutMs: 1500}
	assert.Equal(t, 1500, cfg.TaskTimeout(TaskDecompose))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskType("other")))
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider(" Gemini ")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	_, err = ParseProvider("openai")
	assert.Error(t, err)
}

func TestDefaults_PerProvider(t *testing.T) {
	assert.Equal(t, "https://generativelanguage.googleapis.com", DefaultEndpoint(ProviderGemini))
	assert.Equal(t, "gemini-3-flash-preview", DefaultModel(ProviderGemini))
	assert.Equal(t, "llama3.2", DefaultModel(ProviderOllama))
}
