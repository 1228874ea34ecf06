package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiAPIVersion = "v1beta"

// geminiBackend calls the hosted Gemini API through the genai SDK.
type geminiBackend struct {
	model  string
	models *genai.Models
}

// NewGeminiClient creates an LLMClient for the hosted Gemini API.
func NewGeminiClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	cfg.Provider = ProviderGemini

	// Building a Gemini API client does no I/O.
	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(),
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimRight(cfg.Endpoint, "/") + "/",
			APIVersion: geminiAPIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &client{
		cfg:      cfg,
		backend:  &geminiBackend{model: cfg.Model, models: gc.Models},
		observer: observer,
	}, nil
}

func (b *geminiBackend) generate(ctx context.Context, req GenerateRequest, temp float64, maxTokens int) (string, string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temp)),
		MaxOutputTokens: int32(maxTokens),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseJsonSchema = req.Schema.Raw()
	}

	resp, err := b.models.GenerateContent(ctx, b.model, genai.Text(req.UserPrompt), config)
	if err != nil {
		return "", "", err
	}

	text := candidateText(resp)
	if text == "" {
		return "", "", fmt.Errorf("%w: no candidates in response", ErrInvalidOutput)
	}

	model := resp.ModelVersion
	if model == "" {
		model = b.model
	}
	return text, model, nil
}

// candidateText joins the non-thought text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range c.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func (b *geminiBackend) available(ctx context.Context) bool {
	_, err := b.models.Get(ctx, b.model, nil)
	return err == nil
}
