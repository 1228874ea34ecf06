package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	// Schema, when set, asks the backend for JSON output matching it.
	Schema      *Schema
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(cfg, observer)
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// backend performs one provider-specific generation call.
type backend interface {
	generate(ctx context.Context, req GenerateRequest, temp float64, maxTokens int) (text, model string, err error)
	available(ctx context.Context) bool
}

// client wraps a backend with timeout, retry and observation.
type client struct {
	cfg      LLMConfig
	backend  backend
	observer Observer
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	if timeoutMs := c.cfg.TaskTimeout(req.Task); timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
		defer cancel()
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	tried := 0

	for i := 0; i < attempts; i++ {
		tried++
		text, model, err := c.backend.generate(ctx, req, temp, maxTok)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observe(req.Task, latency, tried, nil)
			return &GenerateResponse{
				Text:      text,
				Model:     model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	switch {
	case ctx.Err() != nil:
		lastErr = ErrTimeout
	case isConnectionError(lastErr):
		lastErr = ErrUnavailable
	case errors.Is(lastErr, ErrInvalidOutput):
	default:
		lastErr = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
	c.observe(req.Task, time.Since(start).Milliseconds(), tried, lastErr)
	return nil, lastErr
}

func (c *client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.backend.available(ctx)
}

func (c *client) observe(task TaskType, latencyMs int64, attempts int, err error) {
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  c.cfg.Provider,
		Model:     c.cfg.Model,
		LatencyMs: latencyMs,
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

// postJSON sends body to url and decodes a 200 response into out.
func postJSON(ctx context.Context, hc *http.Client, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := hc.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrInvalidOutput, err)
	}
	return nil
}

// getOK reports whether GET url answers 200.
func getOK(ctx context.Context, hc *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
