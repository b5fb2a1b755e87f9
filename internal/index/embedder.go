package index

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiEmbedder produces embeddings via the Gemini embedding API. The same
// instance serves both index and query mode so vectors stay comparable.
type geminiEmbedder struct {
	client *genai.Client
	model  string
}

func newGeminiEmbedder(ctx context.Context, apiKey, model string) (Embedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiEmbedder{client: client, model: model}, nil
}

func (e *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding from Gemini")
	}
	return result.Embeddings[0].Values, nil
}
