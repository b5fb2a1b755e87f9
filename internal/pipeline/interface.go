package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

// Pipeline processes one uploaded meeting end to end and hands the resulting
// record to the caller. The pipeline keeps no reference to it afterwards.
type Pipeline interface {
	Process(ctx context.Context, mediaPath string) (*meeting.Record, error)
}

// StageHook observes stage transitions, e.g. for progress display.
type StageHook func(Stage)
