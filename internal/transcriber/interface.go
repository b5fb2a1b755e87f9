package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

// Transcriber converts normalized audio into timed transcript segments.
// It is all-or-nothing: no partial transcript is returned on failure.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]meeting.Segment, error)
}
