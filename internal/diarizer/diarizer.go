package diarizer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

// Attribute runs diarization over the audio and aggregates the resulting
// turns into profiles. Any diarization failure degrades to a single
// "Speaker 1" fallback profile; errors never propagate to the pipeline.
func (d *implAttributor) Attribute(ctx context.Context, audioPath string, transcript []meeting.Segment) []meeting.Profile {
	turns, err := d.diarize(ctx, audioPath)
	if err != nil {
		d.logger.Warn(ctx, "Diarization unavailable, using single-speaker fallback: %v", err)
		return fallbackProfiles(transcript)
	}

	d.logger.Info(ctx, "Diarization produced %d turns", len(turns))
	return buildProfiles(turns, transcript)
}

// diarize invokes the pyannote helper script, which prints speaker turns as
// JSON on stdout.
func (d *implAttributor) diarize(ctx context.Context, audioPath string) ([]meeting.Turn, error) {
	if d.cfg.Diarize.ScriptPath == "" {
		return nil, fmt.Errorf("diarization script not configured")
	}

	args := []string{d.cfg.Diarize.ScriptPath, "--audio", audioPath}
	if d.cfg.Diarize.AuthToken != "" {
		args = append(args, "--token", d.cfg.Diarize.AuthToken)
	}

	out, err := d.executor.Execute(ctx, d.cfg.Diarize.Python, args...)
	if err != nil {
		return nil, fmt.Errorf("run diarization helper: %w", err)
	}

	var parsed struct {
		Turns []meeting.Turn `json:"turns"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("parse diarization output: %w", err)
	}

	return parsed.Turns, nil
}

// buildProfiles aggregates turns per speaker identity. Speakers are named in
// first-appearance order; durations are summed per turn after integer
// truncation.
func buildProfiles(turns []meeting.Turn, transcript []meeting.Segment) []meeting.Profile {
	type agg struct {
		duration int
		segments int
	}

	order := make([]string, 0)
	byID := make(map[string]*agg)

	for _, turn := range turns {
		a, ok := byID[turn.Speaker]
		if !ok {
			a = &agg{}
			byID[turn.Speaker] = a
			order = append(order, turn.Speaker)
		}
		a.duration += int(turn.End - turn.Start)
		a.segments++
	}

	profiles := make([]meeting.Profile, 0, len(order))
	claimed := make(map[int]bool)

	for i, id := range order {
		a := byID[id]
		duration, segments := a.duration, a.segments
		profiles = append(profiles, meeting.Profile{
			Name:     fmt.Sprintf("Speaker %d", i+1),
			Duration: &duration,
			Segments: &segments,
			Sample:   claimSample(transcript, claimed),
		})
	}

	return profiles
}

// claimSample picks the first non-empty text among the first three transcript
// segments not already claimed by an earlier speaker.
func claimSample(transcript []meeting.Segment, claimed map[int]bool) string {
	limit := len(transcript)
	if limit > 3 {
		limit = 3
	}
	for i := 0; i < limit; i++ {
		if claimed[i] || transcript[i].Text == "" {
			continue
		}
		claimed[i] = true
		return transcript[i].Text
	}
	return ""
}

// fallbackProfiles returns the single synthetic profile used when diarization
// is unavailable. Unknown counts are nil, not zero.
func fallbackProfiles(transcript []meeting.Segment) []meeting.Profile {
	sample := ""
	if len(transcript) > 0 {
		sample = transcript[0].Text
	}
	return []meeting.Profile{{
		Name:   "Speaker 1",
		Sample: sample,
	}}
}
