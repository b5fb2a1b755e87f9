package diarizer

import (
	"context"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

// Attributor partitions the audio timeline into speaker turns and aggregates
// them into per-speaker profiles. It never fails: when diarization is
// unavailable for any reason it degrades to a single fallback profile.
type Attributor interface {
	Attribute(ctx context.Context, audioPath string, transcript []meeting.Segment) []meeting.Profile
}
