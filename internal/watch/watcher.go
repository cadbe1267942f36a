package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mgpai22/vsplit/internal/logging"
)

const defaultDebounce = 300 * time.Millisecond

// called after the watched file settles
type Handler func(ctx context.Context) error

// Watcher re-runs a handler whenever a single file changes.
type Watcher struct {
	path     string
	handler  Handler
	logger   *logging.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// New watches the directory holding path, since editors often replace a
// file instead of writing it in place.
func New(path string, handler Handler, logger *logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		handler:  handler,
		logger:   logger,
		watcher:  fsw,
		debounce: defaultDebounce,
	}, nil
}

// Start blocks until ctx is done. Handler errors are logged and do not
// stop the watcher.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Infow("Watching config for changes", "config", w.path)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debugw("Config changed", "event", event.Op.String())
				settle = time.After(w.debounce)
			}

		case <-settle:
			settle = nil
			w.logger.Infow("Config updated, re-running split", "config", w.path)
			if err := w.handler(ctx); err != nil {
				w.logger.Errorw("Split failed", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warnw("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
