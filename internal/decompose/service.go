package decompose

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexanderramin/holotask/internal/llm"
)

var errNoClient = errors.New("no llm client configured")

// Service turns a task description into suggested subtasks.
type Service interface {
	// Decompose never fails: on any error it logs and returns Fallback().
	Decompose(ctx context.Context, text string) Refinement
}

type service struct {
	client llm.LLMClient
	logger *slog.Logger
}

// NewService creates a Service backed by client. A nil client makes every
// call return the fallback.
func NewService(client llm.LLMClient, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{client: client, logger: logger}
}

func (s *service) Decompose(ctx context.Context, text string) Refinement {
	r, err := s.decompose(ctx, text)
	if err != nil {
		s.logger.Warn("decomposition failed, using fallback", "task_text", text, "error", err)
		return Fallback()
	}
	s.logger.Debug("decomposition complete", "task_text", text, "subtasks", len(r.Subtasks), "category", r.Category)
	return r
}

func (s *service) decompose(ctx context.Context, text string) (Refinement, error) {
	if s.client == nil {
		return Refinement{}, errNoClient
	}
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDecompose,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt(text),
		Schema:       refinementSchema,
	})
	if err != nil {
		return Refinement{}, err
	}
	return llm.ExtractJSON[Refinement](resp.Text, refinementSchema)
}
