package index

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

// chunk is the stored projection of one transcript segment.
type chunk struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`
	Text   string    `json:"text"`
	Label  string    `json:"timestamp"`
}

func chunkID(meetingID string, start float64) string {
	return meetingID + "_" + strconv.FormatFloat(start, 'g', -1, 64)
}

// Add embeds every non-empty segment and upserts it into the meeting's
// namespace. Chunk keys are derived from the segment start, so re-indexing
// the same meeting overwrites instead of duplicating.
func (i *implIndex) Add(ctx context.Context, segments []meeting.Segment, meetingID string) error {
	chunks := make([]chunk, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		vector, err := i.embedder.Embed(ctx, seg.Text)
		if err != nil {
			return fmt.Errorf("embed segment at %s: %w", seg.Label, err)
		}
		chunks = append(chunks, chunk{
			ID:     chunkID(meetingID, seg.Start),
			Vector: vector,
			Text:   seg.Text,
			Label:  seg.Label,
		})
	}

	namespace := []byte(sanitizeNamespace(meetingID))

	err := i.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(namespace)
		if err != nil {
			return err
		}
		for _, c := range chunks {
			data, err := json.Marshal(c)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(c.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("index meeting %s: %w", meetingID, err)
	}

	i.logger.Info(ctx, "Indexed %d chunks into namespace %s", len(chunks), namespace)
	return nil
}

// Search embeds the query with the same embedder used for indexing and
// returns the top-k chunk texts by cosine similarity, best first. An empty
// query or an empty/unknown namespace yields an empty result, never an error.
func (i *implIndex) Search(ctx context.Context, query, meetingID string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	namespace := []byte(sanitizeNamespace(meetingID))

	empty := true
	if err := i.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(namespace); b != nil && b.Stats().KeyN > 0 {
			empty = false
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("inspect namespace %s: %w", namespace, err)
	}
	if empty {
		return nil, nil
	}

	queryVec, err := i.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		text  string
		score float64
	}
	var candidates []scored

	err = i.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(namespace)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var c chunk
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			candidates = append(candidates, scored{
				text:  c.Text,
				score: cosineSimilarity(queryVec, c.Vector),
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("search namespace %s: %w", namespace, err)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	limit := i.topK
	if limit > len(candidates) {
		limit = len(candidates)
	}

	results := make([]string, 0, limit)
	for _, c := range candidates[:limit] {
		results = append(results, c.text)
	}
	return results, nil
}

// Count reports the number of chunks stored for one meeting.
func (i *implIndex) Count(meetingID string) (int, error) {
	namespace := []byte(sanitizeNamespace(meetingID))

	count := 0
	err := i.db.View(func(tx *bbolt.Tx) error {
		if bucket := tx.Bucket(namespace); bucket != nil {
			count = bucket.Stats().KeyN
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count namespace %s: %w", namespace, err)
	}
	return count, nil
}
