package diarizer

import (
	"context"
	"errors"
	"testing"

	"github.com/nguyentantai21042004/visionmeet/internal/config"
	"github.com/nguyentantai21042004/visionmeet/internal/logger"
	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

type fakeExecutor struct {
	stdout string
	err    error
	args   []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.args = args
	return f.stdout, f.err
}

func testConfig(scriptPath string) *config.Config {
	cfg := &config.Config{}
	cfg.Diarize.ScriptPath = scriptPath
	cfg.Diarize.Python = "python3"
	return cfg
}

func sampleTranscript() []meeting.Segment {
	return []meeting.Segment{
		meeting.NewSegment(0, 2, "good morning everyone"),
		meeting.NewSegment(2, 5, "thanks for joining"),
		meeting.NewSegment(5, 9, "let's review the roadmap"),
		meeting.NewSegment(9, 12, "never sampled"),
	}
}

func TestAttributeAggregation(t *testing.T) {
	exec := &fakeExecutor{stdout: `{"turns": [
		{"speaker": "SPEAKER_00", "start": 0.0, "end": 4.8},
		{"speaker": "SPEAKER_01", "start": 4.8, "end": 7.3},
		{"speaker": "SPEAKER_00", "start": 7.3, "end": 10.0}
	]}`}

	a := New(testConfig("diarize.py"), exec, logger.New("error"))
	profiles := a.Attribute(context.Background(), "audio.wav", sampleTranscript())

	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}

	first := profiles[0]
	if first.Name != "Speaker 1" {
		t.Errorf("name = %q, want Speaker 1", first.Name)
	}
	// int(4.8) + int(2.7) = 4 + 2, per-turn truncation before summing
	if first.Duration == nil || *first.Duration != 6 {
		t.Errorf("duration = %v, want 6", first.Duration)
	}
	if first.Segments == nil || *first.Segments != 2 {
		t.Errorf("segments = %v, want 2", first.Segments)
	}

	second := profiles[1]
	if second.Name != "Speaker 2" {
		t.Errorf("name = %q, want Speaker 2", second.Name)
	}
	if second.Duration == nil || *second.Duration != 2 {
		t.Errorf("duration = %v, want 2", second.Duration)
	}
}

func TestAttributeSampleAssignment(t *testing.T) {
	exec := &fakeExecutor{stdout: `{"turns": [
		{"speaker": "A", "start": 0, "end": 3},
		{"speaker": "B", "start": 3, "end": 6},
		{"speaker": "C", "start": 6, "end": 9},
		{"speaker": "D", "start": 9, "end": 12}
	]}`}

	a := New(testConfig("diarize.py"), exec, logger.New("error"))
	profiles := a.Attribute(context.Background(), "audio.wav", sampleTranscript())

	// First-come-first-served over the first three segments only
	wantSamples := []string{"good morning everyone", "thanks for joining", "let's review the roadmap", ""}
	for i, want := range wantSamples {
		if profiles[i].Sample != want {
			t.Errorf("profile %d sample = %q, want %q", i, profiles[i].Sample, want)
		}
	}
}

func TestAttributeSkipsEmptySampleText(t *testing.T) {
	exec := &fakeExecutor{stdout: `{"turns": [{"speaker": "A", "start": 0, "end": 3}]}`}

	transcript := []meeting.Segment{
		meeting.NewSegment(0, 1, ""),
		meeting.NewSegment(1, 2, "first real words"),
	}

	a := New(testConfig("diarize.py"), exec, logger.New("error"))
	profiles := a.Attribute(context.Background(), "audio.wav", transcript)

	if profiles[0].Sample != "first real words" {
		t.Errorf("sample = %q, want first non-empty text", profiles[0].Sample)
	}
}

func TestAttributeFallbackOnError(t *testing.T) {
	tests := []struct {
		name string
		exec *fakeExecutor
		cfg  *config.Config
	}{
		{"helper fails", &fakeExecutor{err: errors.New("no module named pyannote")}, testConfig("diarize.py")},
		{"bad helper output", &fakeExecutor{stdout: "Traceback (most recent call last)"}, testConfig("diarize.py")},
		{"script not configured", &fakeExecutor{}, testConfig("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.cfg, tt.exec, logger.New("error"))
			profiles := a.Attribute(context.Background(), "audio.wav", sampleTranscript())

			if len(profiles) != 1 {
				t.Fatalf("got %d profiles, want exactly 1 fallback", len(profiles))
			}
			p := profiles[0]
			if p.Name != "Speaker 1" {
				t.Errorf("name = %q, want Speaker 1", p.Name)
			}
			if p.Duration != nil || p.Segments != nil {
				t.Errorf("fallback counts should be unknown, got %v/%v", p.Duration, p.Segments)
			}
			if p.Sample != "good morning everyone" {
				t.Errorf("sample = %q, want first segment text", p.Sample)
			}
		})
	}
}

func TestAttributeFallbackEmptyTranscript(t *testing.T) {
	a := New(testConfig(""), &fakeExecutor{}, logger.New("error"))
	profiles := a.Attribute(context.Background(), "audio.wav", nil)

	if len(profiles) != 1 || profiles[0].Sample != "" {
		t.Errorf("fallback on empty transcript = %+v, want single profile with empty sample", profiles)
	}
}
