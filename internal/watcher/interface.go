package watcher

import "context"

// Watcher monitors the inbox directory for newly dropped recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one dropped recording.
type EventHandler func(ctx context.Context, filePath string) error
