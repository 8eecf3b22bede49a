package txtshot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
)

const watchDebounce = 100 * time.Millisecond

// Watch calls fn every time the file at path is written, created or renamed, until ctx is done.
// The parent directory is watched so that editors replacing the file are noticed.
// Events that arrive close together are coalesced into a single call.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(context.Context) error) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching transcript", slog.String("path", path))

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("failed to watch transcript", slog.String("error", err.Error()))
		case <-timer:
			timer = nil
			logger.Info("transcript changed", slog.String("path", path))
			if err := fn(ctx); err != nil {
				logger.Error("failed to render transcript", slog.String("error", err.Error()))
			}
		}
	}
}
