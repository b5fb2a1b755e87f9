package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

// whisperOutput mirrors the JSON whisper.cpp emits with -oj.
// Offsets are milliseconds from the start of the audio.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper.cpp over the full audio in a single pass and
// returns one segment per recognized utterance, ordered by start offset.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) ([]meeting.Segment, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Starting transcription (%d threads, language %s): %s",
		t.cfg.Whisper.Threads, t.cfg.Whisper.Language, audioPath)

	// -l forces the configured language to prevent hallucinated language
	// switches; -oj writes <prefix>.json with per-segment offsets.
	args := []string{
		"-m", t.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-oj",
		"-l", t.cfg.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"-ml", "0",
		"-mc", "0",
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.Whisper.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: read whisper output: %w", err)
	}
	defer os.Remove(jsonPath)

	segments, err := parseWhisperJSON(data)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	t.logger.Info(ctx, "Transcription completed: %d segments", len(segments))
	return segments, nil
}

// parseWhisperJSON converts whisper.cpp JSON output into ordered segments.
func parseWhisperJSON(data []byte) ([]meeting.Segment, error) {
	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]meeting.Segment, 0, len(parsed.Transcription))
	for _, s := range parsed.Transcription {
		segments = append(segments, meeting.NewSegment(
			float64(s.Offsets.From)/1000.0,
			float64(s.Offsets.To)/1000.0,
			strings.TrimSpace(s.Text),
		))
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})

	return segments, nil
}
