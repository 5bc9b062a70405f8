package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher calls a handler whenever a single file changes on disk.
// The parent directory is watched so rename-on-save editors are seen too.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// NewFileWatcher creates a watcher for path
func NewFileWatcher(path string, logger *zap.Logger) *FileWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		abs = filepath.Clean(path)
	}
	return &FileWatcher{path: abs, debounce: DefaultDebounce, logger: logger}
}

// Path returns the absolute path being watched
func (w *FileWatcher) Path() string {
	return w.path
}

// SetDebounce changes the quiet period before the handler runs
func (w *FileWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is cancelled, calling onChange after each settled
// write or create of the file. Handler errors are logged and do not stop
// the watch.
func (w *FileWatcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Debug("watching file", zap.String("path", w.path))

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
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
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timerCh:
			timerCh = nil
			if err := onChange(ctx); err != nil {
				w.logger.Warn("reload failed", zap.String("path", w.path), zap.Error(err))
			}
		}
	}
}
