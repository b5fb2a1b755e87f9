package media

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/visionmeet/pkg/executor"
)

// ErrToolUnavailable means no usable ffmpeg binary was found by any
// discovery strategy. This is a setup problem, not an input problem.
var ErrToolUnavailable = errors.New("ffmpeg binary not found")

// ConversionError means ffmpeg ran but exited non-zero. Output carries the
// tool's diagnostic output.
type ConversionError struct {
	Output string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("conversion failed: %v: %s", e.Err, e.Output)
	}
	return fmt.Sprintf("conversion failed: %v", e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Normalize converts inputPath into a mono 16kHz 16-bit PCM WAV next to the
// input file and returns its path.
func (n *implNormalizer) Normalize(ctx context.Context, inputPath string) (string, error) {
	binary, err := n.resolveBinary()
	if err != nil {
		return "", err
	}

	audioPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_16k.wav"

	n.logger.Info(ctx, "Normalizing audio with %s: %s", binary, inputPath)

	// -vn drops any video stream; the sample rate, channel count and codec
	// are the canonical format every downstream stage assumes.
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := n.executor.Execute(ctx, binary, args...); err != nil {
		var cmdErr *executor.CommandError
		if errors.As(err, &cmdErr) {
			return "", &ConversionError{Output: cmdErr.Stderr, Err: cmdErr.Err}
		}
		return "", &ConversionError{Err: err}
	}

	n.logger.Info(ctx, "Audio normalized: %s", audioPath)
	return audioPath, nil
}
