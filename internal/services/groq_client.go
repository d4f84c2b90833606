package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	"github.com/example/brandforge/internal/telemetry"
)

// GroqConfig holds credentials and model names for the Groq API.
type GroqConfig struct {
	APIKey    string
	BaseURL   string
	TextModel string
	LogoModel string
	Timeout   time.Duration
}

// GroqClient calls Groq's OpenAI-compatible chat completions endpoint. It
// implements every capability the brand kit pipeline needs.
type GroqClient struct {
	cfg GroqConfig
	api *openai.Client
}

func NewGroqClient(cfg GroqConfig) *GroqClient {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &GroqClient{
		cfg: cfg,
		api: openai.NewClientWithConfig(apiCfg),
	}
}

// Configured reports whether an API key is present.
func (c *GroqClient) Configured() bool {
	return c.cfg.APIKey != ""
}

// Generators exposes the client as every pipeline capability.
func (c *GroqClient) Generators() Generators {
	return Generators{
		Symbols:     c,
		Preferences: c,
		Personality: c,
		Palette:     c,
		Fonts:       c,
		Tagline:     c,
		Logo:        c,
	}
}

func (c *GroqClient) complete(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	ctx, span := telemetry.AddSpan(ctx, "groq."+op, attribute.String("groq.model", req.Model))
	defer span.End()

	content, err := c.do(ctx, op, req)
	telemetry.RecordError(span, err)
	return content, err
}

func (c *GroqClient) do(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		var (
			apiErr *openai.APIError
			reqErr *openai.RequestError
		)
		switch {
		case errors.As(err, &apiErr):
			return "", fmt.Errorf("groq %s failed: status %d: %w", op, apiErr.HTTPStatusCode, err)
		case errors.As(err, &reqErr):
			return "", fmt.Errorf("groq %s failed: status %d: %w", op, reqErr.HTTPStatusCode, err)
		default:
			return "", fmt.Errorf("groq %s request: %w", op, err)
		}
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq %s: %w", op, ErrEmptyResponse)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("groq %s: %w", op, ErrEmptyResponse)
	}
	return content, nil
}

func messages(system, user string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}
}

// chatJSON asks the text model for a JSON object and decodes it into out.
func (c *GroqClient) chatJSON(ctx context.Context, op, system, user string, out any) error {
	content, err := c.complete(ctx, op, openai.ChatCompletionRequest{
		Model:       c.cfg.TextModel,
		Messages:    messages(system, user),
		Temperature: 0.7,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(stripFences(content)), out); err != nil {
		return fmt.Errorf("groq %s decode: %w", op, err)
	}
	return nil
}

// chatText asks model for free text.
func (c *GroqClient) chatText(ctx context.Context, op, model, system, user string, temperature float32, maxTokens int) (string, error) {
	return c.complete(ctx, op, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages(system, user),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func describeBrand(in BrandContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business name: %s\n", in.BusinessName)
	if in.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", in.Description)
	}
	if in.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", in.Industry)
	}
	return b.String()
}
