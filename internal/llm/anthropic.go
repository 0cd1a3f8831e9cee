package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const claudeMaxTokens = 2048

// ClaudeClient implements Client for Anthropic. It does not implement
// Embedder; Anthropic exposes no embedding endpoint, so the factory returns a
// nil embedder and the pre-filter fails open.
type ClaudeClient struct {
	client *anthropic.Client
	config *Config
}

// NewClaudeClient creates a new Anthropic client.
func NewClaudeClient(config *Config, apiKey string) *ClaudeClient {
	return &ClaudeClient{
		client: anthropic.NewClient(apiKey),
		config: config,
	}
}

// Generate produces free-form text for the prompt.
func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.config.Model),
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
		MaxTokens: claudeMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return "", fmt.Errorf("no content in response")
	}
	return *resp.Content[0].Text, nil
}

// GenerateJSON produces JSON content. Anthropic has no native JSON response
// mode, so the prompt is expected to request JSON and the output is stripped
// of code fences.
func (c *ClaudeClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Close is a no-op; the Anthropic client holds no long-lived resources.
func (c *ClaudeClient) Close() error { return nil }
