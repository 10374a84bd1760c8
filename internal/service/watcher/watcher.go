package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/logger"
)

const DefaultDebounce = 500 * time.Millisecond

type Reloader interface {
	Reload(ctx context.Context) *model.Snapshot
}

// watcher reloads the snapshot when the source file is created, rewritten,
// renamed into place or removed. Bursts of events within the debounce window
// trigger a single reload.
type watcher struct {
	path     string
	debounce time.Duration
	reloader Reloader
}

func NewWatcher(path string, debounce time.Duration, reloader Reloader) *watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		reloader: reloader,
	}
}

// Run blocks until ctx is done. The parent directory is watched, so the file
// itself may come and go.
func (w *watcher) Run(ctx context.Context) error {
	const op = "watcher.Run"

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("%s: watch %s: %w", op, dir, err)
	}

	logger.Info(ctx, "Watching inventory source", logger.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			logger.Debug(ctx, "Inventory source changed", logger.String("op", ev.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "File watcher error", logger.ErrorF(err))

		case <-timer.C:
			snap := w.reloader.Reload(ctx)
			logger.Info(ctx, "Reloaded after source change", logger.Int("records", snap.Len()))
		}
	}
}

func (w *watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}
