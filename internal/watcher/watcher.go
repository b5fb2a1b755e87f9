package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/visionmeet/internal/logger"
)

// mediaExtensions lists the recording containers accepted from the inbox,
// both video and audio.
var mediaExtensions = []string{
	".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v",
	".mp3", ".wav", ".m4a",
}

type implWatcher struct {
	inboxDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start begins monitoring the inbox for new recordings. Each recording is
// handed to the handler; concurrency is bounded by the semaphore.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)
	w.logger.Info(ctx, "Accepted formats: %s", strings.Join(mediaExtensions, ", "))

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if !isMediaFile(event.Name) {
					w.logger.Debug(ctx, "Ignoring non-media file: %s", event.Name)
					continue
				}

				w.logger.Info(ctx, "New recording detected: %s", event.Name)

				// Small delay so the file is fully written before processing
				time.Sleep(500 * time.Millisecond)

				select {
				case w.semaphore <- struct{}{}:
					w.wg.Add(1)
					go func(filePath string) {
						defer w.wg.Done()
						defer func() { <-w.semaphore }()

						if err := w.handler(ctx, filePath); err != nil {
							w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
						}
					}(event.Name)
				case <-ctx.Done():
					return w.drain(ctx)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// drain waits for in-flight meetings to finish before reporting the
// cancellation. Every exit path taken after ctx is done goes through here so
// a shutdown never abandons a run mid-pipeline.
func (w *implWatcher) drain(ctx context.Context) error {
	w.logger.Info(ctx, "Waiting for in-flight meetings to finish...")
	w.wg.Wait()
	w.logger.Info(ctx, "Inbox watcher stopped")
	return ctx.Err()
}

// Stop closes the underlying file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isMediaFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range mediaExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
