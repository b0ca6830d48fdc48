// Package fswatch merges chapter documents into the master index as they land in a directory.
package fswatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// MergeFunc merges the chapter document at path.
type MergeFunc func(ctx context.Context, path string) error

// Watcher feeds new and rewritten chapter documents to a MergeFunc, one at a time.
type Watcher struct {
	dir     string
	merge   MergeFunc
	exclude map[string]struct{}
	logger  *zap.Logger
}

// New creates a Watcher for dir.
func New(dir string, merge MergeFunc, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{dir: dir, merge: merge, exclude: map[string]struct{}{}, logger: logger}
}

// WithExclude ignores events for the given files.
func (w *Watcher) WithExclude(paths ...string) *Watcher {
	for _, p := range paths {
		if p == "" {
			continue
		}
		w.exclude[absPath(p)] = struct{}{}
	}
	return w
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
// Events are handled serially, so merges never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching for chapter documents", zap.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			path, ok := w.handleEvent(ev)
			if !ok {
				continue
			}
			if err := w.merge(ctx, path); err != nil {
				w.logger.Error("merge failed", zap.String("path", path), zap.Error(err))
				continue
			}
			w.logger.Info("merged", zap.String("path", path))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// handleEvent reports whether ev should trigger a merge and for which file.
// Only creates and writes of visible *.json files count. Temp files from
// atomic writes are ignored; the rename that publishes them shows up as a
// create of the final name.
func (w *Watcher) handleEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || !strings.EqualFold(filepath.Ext(base), ".json") {
		return "", false
	}
	if _, skip := w.exclude[absPath(ev.Name)]; skip {
		return "", false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return ev.Name, true
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
