// Package llm wraps the DeepSeek chat-completion API behind a small
// interface so orchestration code can be tested with a fake.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/MEKSAAA/Anti-Fake/internal/pkg/config"
)

// ErrMissingAPIKey is returned when DEEPSEEK_API_KEY is not set. The
// server still starts; only endpoints that need the model fail.
var ErrMissingAPIKey = errors.New("missing DEEPSEEK_API_KEY configuration")

// Chatter is the completion contract used by services.
type Chatter interface {
	Chat(ctx context.Context, system, user string) (string, error)
	ChatTuned(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

// Client calls a DeepSeek (OpenAI-compatible) endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// New builds a client from config. A missing API key is not an error
// here; calls report ErrMissingAPIKey instead.
func New(cfg config.DeepSeekConfig) *Client {
	return NewWithHTTPClient(cfg, nil)
}

// NewWithHTTPClient allows injecting the HTTP transport, used by tests.
func NewWithHTTPClient(cfg config.DeepSeekConfig, httpClient *http.Client) *Client {
	c := &Client{model: cfg.Model}
	if cfg.APIKey == "" {
		return c
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	if httpClient != nil {
		apiCfg.HTTPClient = httpClient
	} else {
		apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout()}
	}
	c.api = openai.NewClientWithConfig(apiCfg)
	return c
}

// Chat sends a system+user message pair and returns the completion text.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	return c.ChatTuned(ctx, system, user, 0, 0)
}

// ChatTuned is Chat with explicit sampling parameters. Zero values leave
// the upstream defaults in place.
func (c *Client) ChatTuned(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	if c.api == nil {
		return "", ErrMissingAPIKey
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if temperature > 0 {
		req.Temperature = temperature
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
