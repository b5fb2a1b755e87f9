package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/visionmeet/internal/logger"
)

func dropRecording(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"standup.mp4", true},
		{"standup.MP4", true},
		{"notes.wav", true},
		{"call.m4a", true},
		{"notes.txt", false},
		{"standup.mp4.part", false},
	}

	for _, tt := range tests {
		if got := isMediaFile(tt.path); got != tt.want {
			t.Errorf("isMediaFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestStartProcessesDroppedRecording(t *testing.T) {
	inbox := t.TempDir()
	processed := make(chan string, 1)

	handler := func(ctx context.Context, filePath string) error {
		processed <- filepath.Base(filePath)
		return nil
	}

	w, err := New(inbox, handler, logger.New("error"), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	dropRecording(t, inbox, "standup.mp4")

	select {
	case name := <-processed:
		if name != "standup.mp4" {
			t.Errorf("processed %q, want standup.mp4", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("recording was never handed to the handler")
	}
}

func TestCancelDuringSemaphoreWaitDrainsInFlight(t *testing.T) {
	inbox := t.TempDir()
	started := make(chan struct{}, 2)
	release := make(chan struct{})

	handler := func(ctx context.Context, filePath string) error {
		started <- struct{}{}
		<-release
		return nil
	}

	w, err := New(inbox, handler, logger.New("error"), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// First recording occupies the only semaphore slot and blocks.
	dropRecording(t, inbox, "first.mp4")
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("first recording never started")
	}

	// Second recording leaves the watcher blocked on the semaphore; cancel
	// while it waits there.
	dropRecording(t, inbox, "second.mp4")
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		t.Fatalf("Start() returned %v while a meeting was still in flight", err)
	case <-time.After(1200 * time.Millisecond):
	}

	close(release)

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start() did not return after the in-flight meeting finished")
	}
}
