package diarizer

import (
	"github.com/nguyentantai21042004/visionmeet/internal/config"
	"github.com/nguyentantai21042004/visionmeet/internal/logger"
	"github.com/nguyentantai21042004/visionmeet/pkg/executor"
)

type implAttributor struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Attributor backed by an external diarization helper.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Attributor {
	return &implAttributor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
