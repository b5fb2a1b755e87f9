package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

// Process runs the full pipeline over one uploaded meeting:
// normalize, transcribe, attribute speakers, summarize, index.
// Normalization, transcription and indexing failures are fatal; speaker
// attribution and summarization degrade into fallback values instead.
// Every temp resource acquired during the run is released on every exit path.
func (p *implPipeline) Process(ctx context.Context, mediaPath string) (*meeting.Record, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	meetingID := filepath.Base(mediaPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing meeting %s (run %s)", meetingID, runID)
	p.logger.Info(ctx, "========================================")

	// The run directory owns every temp file: the working copy of the upload
	// and the normalized audio. Removing it releases them all, on success
	// and on failure alike.
	runDir := filepath.Join(p.cfg.Paths.Temp, "run-"+runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, p.fail(ctx, fmt.Errorf("create run dir: %w", err))
	}
	defer os.RemoveAll(runDir)

	workPath := filepath.Join(runDir, meetingID)
	if err := copyFile(mediaPath, workPath); err != nil {
		return nil, p.fail(ctx, fmt.Errorf("stage upload: %w", err))
	}

	p.setStage(StageNormalizing)
	audioPath, err := p.normalizer.Normalize(ctx, workPath)
	if err != nil {
		return nil, p.fail(ctx, fmt.Errorf("normalize: %w", err))
	}

	p.setStage(StageTranscribing)
	segments, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, p.fail(ctx, err)
	}

	p.setStage(StageAttributingSpeakers)
	speakers := p.attributor.Attribute(ctx, audioPath, segments)

	record := &meeting.Record{
		ID:         meetingID,
		Transcript: segments,
		Speakers:   speakers,
	}

	p.setStage(StageSummarizing)
	summary, err := p.generator.Summarize(ctx, record.PlainTranscript())
	if err != nil {
		p.logger.Warn(ctx, "Summary generation failed, continuing without summary: %v", err)
		record.SummaryErr = err.Error()
	} else {
		record.Summary = summary
	}

	p.setStage(StageIndexing)
	if err := p.index.Add(ctx, segments, meetingID); err != nil {
		return nil, p.fail(ctx, err)
	}

	p.setStage(StageComplete)
	p.logger.Info(ctx, "Meeting processed in %s: %d segments, %d speakers",
		time.Since(startTime).Round(time.Millisecond), len(segments), len(speakers))

	return record, nil
}

func (p *implPipeline) setStage(s Stage) {
	if p.onStage != nil {
		p.onStage(s)
	}
}

func (p *implPipeline) fail(ctx context.Context, err error) error {
	p.setStage(StageFailed)
	p.logger.Error(ctx, "Pipeline failed: %v", err)
	return err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
