package insight

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/visionmeet/internal/logger"
)

type geminiBackend struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	// mu guards currentKey: one backend serves every concurrent pipeline run.
	mu         sync.Mutex
	currentKey int
}

func newGeminiBackend(apiKeys []string, model string, log logger.Logger) Backend {
	return &geminiBackend{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

// Generate calls Gemini, rotating API keys on quota errors.
func (b *geminiBackend) Generate(ctx context.Context, prompt, systemRole string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemRole}},
		},
	}

	attempts := len(b.apiKeys)
	var lastErr error

	for range attempts {
		keyIdx, key := b.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			b.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				b.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", keyIdx+1)
				b.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (b *geminiBackend) activeKey() (int, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentKey, b.apiKeys[b.currentKey]
}

func (b *geminiBackend) rotateKey() {
	b.mu.Lock()
	b.currentKey = (b.currentKey + 1) % len(b.apiKeys)
	b.mu.Unlock()
}
