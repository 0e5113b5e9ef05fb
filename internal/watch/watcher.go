// Package watch triggers debounced rebuilds when the configuration file or the
// content tree changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// DefaultDebounce coalesces editor save bursts into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Options selects what to watch.
type Options struct {
	ConfigPath string // optional; its directory is watched and events filtered by name
	ContentDir string
	Extensions []string // content file extensions that trigger rebuilds; empty means any file
	Debounce   time.Duration
}

// ChangeFunc is called after a quiet period following one or more changes.
// Calls never overlap.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher monitors the config file and the content tree.
type Watcher struct {
	opts     Options
	watcher  *fsnotify.Watcher
	onChange ChangeFunc
	trigger  chan []string
}

// New creates a watcher and registers every directory of the content tree.
func New(opts Options, onChange ChangeFunc) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	w := &Watcher{opts: opts, watcher: fw, onChange: onChange, trigger: make(chan []string, 1)}

	if opts.ConfigPath != "" {
		abs, err := filepath.Abs(opts.ConfigPath)
		if err == nil {
			w.opts.ConfigPath = abs
			err = fw.Add(filepath.Dir(abs))
		}
		if err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch config directory").
				WithContext("path", opts.ConfigPath).
				Build()
		}
	}
	if opts.ContentDir != "" {
		abs, err := filepath.Abs(opts.ContentDir)
		if err == nil {
			w.opts.ContentDir = abs
			err = w.addTree(abs)
		}
		if err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch content directory").
				WithContext("path", opts.ContentDir).
				Build()
		}
	}
	return w, nil
}

// addTree watches root and all its subdirectories; fsnotify is not recursive.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// Run processes events until ctx is canceled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("Watching for changes",
		slog.String("config", w.opts.ConfigPath),
		slog.String("content", w.opts.ContentDir))

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.changeLoop(loopCtx)
	}()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending []string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		_ = w.watcher.Close()
		cancel()
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if !slices.Contains(pending, event.Name) {
				pending = append(pending, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.enqueue(pending)
			pending = nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// enqueue hands a batch to the change loop, merging with a batch still waiting.
func (w *Watcher) enqueue(changed []string) {
	for {
		select {
		case w.trigger <- changed:
			return
		case prev := <-w.trigger:
			for _, p := range prev {
				if !slices.Contains(changed, p) {
					changed = append(changed, p)
				}
			}
		}
	}
}

func (w *Watcher) changeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case changed := <-w.trigger:
			slices.Sort(changed)
			w.onChange(ctx, changed)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.opts.ConfigPath != "" && event.Name == w.opts.ConfigPath {
		return true
	}
	if w.opts.ContentDir == "" || !within(w.opts.ContentDir, event.Name) {
		return false
	}
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipDir(info.Name()) {
				if err := w.addTree(event.Name); err != nil {
					slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			return true
		}
	}
	if len(w.opts.Extensions) == 0 {
		return true
	}
	return slices.Contains(w.opts.Extensions, strings.ToLower(filepath.Ext(event.Name)))
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
