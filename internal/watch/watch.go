// Package watch rebuilds the site when its sources change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc is called once per settled burst of changes.
type RebuildFunc func(ctx context.Context) error

// Watcher watches directories recursively, plus individual files, and calls
// a rebuild function after changes. Rebuilds run on the watcher goroutine,
// so they never overlap.
type Watcher struct {
	roots    []string
	files    map[string]bool
	debounce time.Duration
	rebuild  RebuildFunc
	logger   *slog.Logger
}

// New returns a watcher over paths. Directories are watched recursively;
// regular files are watched through their parent directory.
func New(paths []string, debounce time.Duration, rebuild RebuildFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		files:    make(map[string]bool),
		debounce: debounce,
		rebuild:  rebuild,
		logger:   logger,
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if isDir(p) {
			w.roots = append(w.roots, p)
		} else {
			w.files[p] = true
		}
	}
	return w
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, root := range w.roots {
		w.logger.Info("watching directory", "path", root)
		w.addRecursive(fw, root)
	}
	for file := range w.files {
		dir := filepath.Dir(file)
		if err := fw.Add(dir); err != nil {
			w.logger.Warn("failed to watch file", "path", file, "error", err)
			continue
		}
		w.logger.Info("watching file", "path", file)
	}

	return w.loop(ctx, fw.Events, fw.Errors, func(dir string) {
		w.logger.Info("new directory created, adding to watcher", "path", dir)
		w.addRecursive(fw, dir)
	})
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("error walking directory", "path", p, "error", err)
			return nil
		}
		if d.IsDir() {
			if err := fw.Add(p); err != nil {
				w.logger.Warn("failed to watch directory", "path", p, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		w.logger.Warn("error during directory walk", "path", root, "error", err)
	}
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onNewDir func(string)) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
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

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				onNewDir(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case <-fire:
			fire = nil
			w.logger.Info("rebuilding site due to changes")
			if err := w.rebuild(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				w.logger.Error("rebuild failed", "error", err)
			} else {
				w.logger.Info("site rebuilt")
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	for _, root := range w.roots {
		if name == root || strings.HasPrefix(name, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
