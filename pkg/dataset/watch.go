package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces bursts of write events from editors and
// copy tools into a single reload.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watch reloads path into the session whenever it is written or recreated.
// It watches the parent directory so that atomic renames are seen. Reload
// failures are logged by the session and keep the previous snapshot. Watch
// blocks until ctx is done.
func (s *Session) Watch(ctx context.Context, path string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	err = watcher.Add(filepath.Dir(absPath))
	if err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	s.logger.InfoContext(ctx, "watching dataset", "path", absPath)

	var timer *time.Timer

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			eventPath, _ := filepath.Abs(event.Name)
			if eventPath != absPath {
				continue
			}

			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(debounce, func() {
				s.logger.InfoContext(ctx, "dataset changed, reloading", "path", absPath)

				_, _ = s.Load(ctx, path)
			})
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			s.logger.WarnContext(ctx, "dataset watcher error", "error", werr)
		}
	}
}
