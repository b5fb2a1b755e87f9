package meeting

import (
	"fmt"
	"strings"
)

// Segment is one recognized utterance with offsets in seconds.
// Segments are immutable once created and ordered by Start ascending.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Label string  `json:"timestamp"`
}

// NewSegment builds a Segment with its derived timestamp label.
func NewSegment(start, end float64, text string) Segment {
	return Segment{
		Start: start,
		End:   end,
		Text:  text,
		Label: TimestampLabel(start),
	}
}

// Turn is a raw diarization result: one speaker speaking for one interval.
type Turn struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Profile aggregates a speaker's turns. Duration and Segments are nil when
// diarization was unavailable and the profile is a fallback.
type Profile struct {
	Name     string `json:"name"`
	Duration *int   `json:"duration,omitempty"`
	Segments *int   `json:"segments,omitempty"`
	Sample   string `json:"sample_text"`
}

// Record is the unified result of processing one uploaded meeting.
// Summary is non-empty only when insight generation succeeded; SummaryErr
// carries the user-visible error string otherwise, so a missing summary is
// never confused with a failed one.
type Record struct {
	ID         string    `json:"id"`
	Transcript []Segment `json:"transcript"`
	Summary    string    `json:"summary"`
	SummaryErr string    `json:"summary_error,omitempty"`
	Speakers   []Profile `json:"speakers"`
}

// PlainTranscript joins all segment texts with newlines, no headers.
func (r *Record) PlainTranscript() string {
	texts := make([]string, 0, len(r.Transcript))
	for _, seg := range r.Transcript {
		texts = append(texts, seg.Text)
	}
	return strings.Join(texts, "\n")
}

// TimestampLabel formats a start offset as zero-padded MM:SS.
func TimestampLabel(start float64) string {
	total := int(start)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
