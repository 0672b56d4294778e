// Package llm provides the generator adapter for OpenAI-compatible chat
// completion endpoints, implementing ports.Generator.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements ports.Generator against any OpenAI-compatible
// chat completions API. Single-turn completion; the composed prompt
// already carries context and history.
type OpenAIAdapter struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIAdapter creates the adapter. baseURL may be empty to use the
// default endpoint.
func NewOpenAIAdapter(baseURL, apiKey, model string) *OpenAIAdapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAdapter{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: 0.1,
		maxTokens:   2048,
	}
}

// Generate sends the prompt and returns the completion text.
func (a *OpenAIAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling chat completions API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completions API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
