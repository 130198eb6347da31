package slot

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watch reports modifications of f made by other processes, including
// deletion of the file. Writes made
// through f itself are filtered out by content hash. The returned channel is
// closed when ctx is cancelled or the watcher fails.
func Watch(ctx context.Context, f *File, logger *slog.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Atomic writes replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(f.path)
	events := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		defer close(events)

		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				if !f.changed() {
					continue
				}
				select {
				case events <- struct{}{}:
				default:
					// a reload is already pending
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("slot: watch error", "path", f.path, "error", err)
			}
		}
	}()

	return events, nil
}
