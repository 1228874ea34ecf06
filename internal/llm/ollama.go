package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ollamaBackend talks to the Ollama HTTP API.
type ollamaBackend struct {
	cfg  LLMConfig
	http *http.Client
}

// NewOllamaClient creates an LLMClient that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderOllama
	}
	return &client{
		cfg:      cfg,
		backend:  &ollamaBackend{cfg: cfg, http: newHTTPClient()},
		observer: observer,
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string          `json:"model"`
	System  string          `json:"system,omitempty"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Format  json.RawMessage `json:"format,omitempty"`
	Options ollamaOptions   `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (b *ollamaBackend) generate(ctx context.Context, req GenerateRequest, temp float64, maxTokens int) (string, string, error) {
	body := ollamaRequest{
		Model:  b.cfg.Model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temp,
			NumPredict:  maxTokens,
		},
	}
	if req.Schema != nil {
		body.Format = req.Schema.Raw()
	}

	var resp ollamaResponse
	if err := postJSON(ctx, b.http, b.cfg.Endpoint+"/api/generate", body, &resp); err != nil {
		return "", "", err
	}
	if resp.Response == "" {
		return "", "", fmt.Errorf("%w: empty response", ErrInvalidOutput)
	}
	return resp.Response, resp.Model, nil
}

func (b *ollamaBackend) available(ctx context.Context) bool {
	return getOK(ctx, b.http, b.cfg.Endpoint+"/api/tags")
}
