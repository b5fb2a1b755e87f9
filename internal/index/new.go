package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/nguyentantai21042004/visionmeet/internal/config"
	"github.com/nguyentantai21042004/visionmeet/internal/logger"
)

type implIndex struct {
	db       *bbolt.DB
	embedder Embedder
	topK     int
	logger   logger.Logger
}

// New opens the index store and wires the Gemini embedder.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (Index, error) {
	if len(cfg.LLM.GeminiAPIKeys) == 0 {
		return nil, fmt.Errorf("semantic index requires a Gemini API key for embeddings")
	}

	embedder, err := newGeminiEmbedder(ctx, cfg.LLM.GeminiAPIKeys[0], cfg.Index.EmbedModel)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return NewWithEmbedder(cfg.Index.Path, embedder, cfg.Index.TopK, log)
}

// NewWithEmbedder opens the index store over an explicit embedder.
func NewWithEmbedder(path string, embedder Embedder, topK int, log logger.Logger) (Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}

	if topK <= 0 {
		topK = 5
	}

	return &implIndex{
		db:       db,
		embedder: embedder,
		topK:     topK,
		logger:   log,
	}, nil
}

func (i *implIndex) Close() error {
	return i.db.Close()
}
