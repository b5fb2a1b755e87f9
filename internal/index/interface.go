package index

import (
	"context"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

// Embedder maps text into the vector space shared by indexing and querying.
// Index and Search must always go through the same Embedder.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index stores transcript segments as vectors, partitioned per meeting, and
// answers nearest-neighbor text queries inside one meeting's namespace.
type Index interface {
	Add(ctx context.Context, segments []meeting.Segment, meetingID string) error
	Search(ctx context.Context, query, meetingID string) ([]string, error)
	Count(meetingID string) (int, error)
	Close() error
}
