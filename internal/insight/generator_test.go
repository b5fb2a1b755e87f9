package insight

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/visionmeet/internal/config"
	"github.com/nguyentantai21042004/visionmeet/internal/logger"
)

type fakeBackend struct {
	prompt     string
	systemRole string
	reply      string
	err        error
}

func (f *fakeBackend) Generate(ctx context.Context, prompt, systemRole string) (string, error) {
	f.prompt = prompt
	f.systemRole = systemRole
	return f.reply, f.err
}

func TestSummarizePrompt(t *testing.T) {
	backend := &fakeBackend{reply: "## Executive Summary\nWe shipped."}
	g := NewWithBackend(backend, logger.New("error"))

	got, err := g.Summarize(context.Background(), "alice: hello\nbob: hi")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != backend.reply {
		t.Errorf("Summarize() = %q, want backend reply verbatim", got)
	}

	for _, want := range []string{"Executive Summary", "Key Decisions", "Action Items", "Topics Discussed", "alice: hello"} {
		if !strings.Contains(backend.prompt, want) {
			t.Errorf("summary prompt missing %q", want)
		}
	}
	if !strings.Contains(backend.systemRole, "meeting analyst") {
		t.Errorf("system role = %q, want meeting analyst role", backend.systemRole)
	}
}

func TestSummarizeReturnsBackendError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("401 invalid api key")}
	g := NewWithBackend(backend, logger.New("error"))

	_, err := g.Summarize(context.Background(), "transcript")
	if err == nil {
		t.Fatal("Summarize() expected backend error to surface")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want underlying backend error", err)
	}
}

func TestExtractionPrompts(t *testing.T) {
	backend := &fakeBackend{reply: "1. Ship it - Alice - Friday"}
	g := NewWithBackend(backend, logger.New("error"))

	if _, err := g.ActionItems(context.Background(), "some prior summary"); err != nil {
		t.Fatalf("ActionItems() error = %v", err)
	}
	if !strings.Contains(backend.prompt, "action items") || !strings.Contains(backend.prompt, "some prior summary") {
		t.Errorf("action items prompt = %q", backend.prompt)
	}

	if _, err := g.KeyDecisions(context.Background(), "raw transcript text"); err != nil {
		t.Fatalf("KeyDecisions() error = %v", err)
	}
	if !strings.Contains(backend.prompt, "decisions") || !strings.Contains(backend.prompt, "raw transcript text") {
		t.Errorf("key decisions prompt = %q", backend.prompt)
	}
}

func TestNewBackendSelection(t *testing.T) {
	tests := []struct {
		name    string
		llm     config.LLMConfig
		wantErr bool
	}{
		{"groq with key", config.LLMConfig{Provider: config.ProviderGroq, GroqAPIKey: "gsk_x", GroqModel: "llama-3.3-70b-versatile"}, false},
		{"groq without key", config.LLMConfig{Provider: config.ProviderGroq}, true},
		{"gemini with keys", config.LLMConfig{Provider: config.ProviderGemini, GeminiAPIKeys: []string{"k1", "k2"}, GeminiModel: "gemini-2.5-flash"}, false},
		{"gemini without keys", config.LLMConfig{Provider: config.ProviderGemini}, true},
		{"unknown provider", config.LLMConfig{Provider: "llamafile"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{LLM: tt.llm}
			_, err := New(cfg, logger.New("error"))
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
