package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 200 * time.Millisecond

// Watch calls onChange after the file at path is written, created or renamed
// into place. Bursts of events within a short window trigger one call. Watch
// blocks until ctx is done.
//
// The parent directory is watched so editors that replace the file are seen.
func Watch(ctx context.Context, path string, onChange func(), logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve seed path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("seed watcher error", zap.Error(err))
		case <-timer.C:
			onChange()
		}
	}
}
