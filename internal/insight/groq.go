package insight

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// groqBackend talks to Groq's OpenAI-compatible chat completions API.
type groqBackend struct {
	client *openai.Client
	model  string
}

func newGroqBackend(apiKey, model string) Backend {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &groqBackend{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (b *groqBackend) Generate(ctx context.Context, prompt, systemRole string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemRole},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.5,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from Groq")
	}

	return resp.Choices[0].Message.Content, nil
}
