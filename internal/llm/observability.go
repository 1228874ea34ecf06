package llm

import (
	"context"
	"log/slog"
	"sync"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one "llm_call" record per call.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", event.Task,
		"provider", event.Provider,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
	}
	if !event.Success {
		o.logger.Log(context.Background(), slog.LevelWarn, "llm_call", append(attrs, "status", "err:"+event.ErrorCode)...)
		return
	}
	o.logger.Info("llm_call", append(attrs, "status", "ok")...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// RecordingObserver keeps every event. Useful for tests.
type RecordingObserver struct {
	mu     sync.Mutex
	events []LLMCallEvent
}

func (r *RecordingObserver) OnCallComplete(e LLMCallEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *RecordingObserver) Events() []LLMCallEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LLMCallEvent(nil), r.events...)
}
