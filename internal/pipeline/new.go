package pipeline

import (
	"github.com/nguyentantai21042004/visionmeet/internal/config"
	"github.com/nguyentantai21042004/visionmeet/internal/diarizer"
	"github.com/nguyentantai21042004/visionmeet/internal/index"
	"github.com/nguyentantai21042004/visionmeet/internal/insight"
	"github.com/nguyentantai21042004/visionmeet/internal/logger"
	"github.com/nguyentantai21042004/visionmeet/internal/media"
	"github.com/nguyentantai21042004/visionmeet/internal/transcriber"
)

type implPipeline struct {
	cfg         *config.Config
	normalizer  media.Normalizer
	transcriber transcriber.Transcriber
	attributor  diarizer.Attributor
	generator   insight.Generator
	index       index.Index
	logger      logger.Logger
	onStage     StageHook
}

// New creates a Pipeline over the supplied stage implementations.
// onStage may be nil.
func New(
	cfg *config.Config,
	normalizer media.Normalizer,
	trans transcriber.Transcriber,
	attributor diarizer.Attributor,
	generator insight.Generator,
	idx index.Index,
	log logger.Logger,
	onStage StageHook,
) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		normalizer:  normalizer,
		transcriber: trans,
		attributor:  attributor,
		generator:   generator,
		index:       idx,
		logger:      log,
		onStage:     onStage,
	}
}
