package insight

import (
	"fmt"

	"github.com/nguyentantai21042004/visionmeet/internal/config"
	"github.com/nguyentantai21042004/visionmeet/internal/logger"
)

type implGenerator struct {
	backend Backend
	logger  logger.Logger
}

// New creates a Generator with the backend selected by configuration.
func New(cfg *config.Config, log logger.Logger) (Generator, error) {
	var backend Backend

	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		if len(cfg.LLM.GeminiAPIKeys) == 0 {
			return nil, fmt.Errorf("gemini provider selected but no API keys configured")
		}
		backend = newGeminiBackend(cfg.LLM.GeminiAPIKeys, cfg.LLM.GeminiModel, log)
	case config.ProviderGroq:
		if cfg.LLM.GroqAPIKey == "" {
			return nil, fmt.Errorf("groq provider selected but no API key configured")
		}
		backend = newGroqBackend(cfg.LLM.GroqAPIKey, cfg.LLM.GroqModel)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}

	return NewWithBackend(backend, log), nil
}

// NewWithBackend creates a Generator over an explicit backend.
func NewWithBackend(backend Backend, log logger.Logger) Generator {
	return &implGenerator{
		backend: backend,
		logger:  log,
	}
}
