package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client and Embedder for OpenAI and OpenAI-compatible
// endpoints (set Config.BaseURL for the latter).
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(config *Config, apiKey string) *OpenAIClient {
	clientCfg := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		clientCfg.BaseURL = config.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		config: config,
	}
}

// Generate produces free-form text for the prompt.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt, nil)
}

// GenerateJSON produces JSON using the chat completion JSON response format.
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	format := &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	text, err := c.complete(ctx, prompt, format)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, format *openai.ChatCompletionResponseFormat) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: format,
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed maps text to an embedding vector.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	model := openai.EmbeddingModel(c.config.EmbeddingModel)
	if c.config.EmbeddingModel == "" {
		model = openai.SmallEmbedding3
	}
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data in response")
	}
	return resp.Data[0].Embedding, nil
}

// Close is a no-op; the OpenAI client holds no long-lived resources.
func (c *OpenAIClient) Close() error { return nil }
