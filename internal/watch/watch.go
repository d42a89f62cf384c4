// Package watch re-runs a compilation when the schema package changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// ErrStarted is returned when Run is called more than once.
var ErrStarted = errors.New("watch: already started")

// Watcher calls OnChange after Go sources or the go.mod of a directory tree
// change. Events arriving within the debounce period are coalesced, and a
// callback is never started while a previous one is still running.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func(ctx context.Context, changed []string) error
	logger   *log.Logger
	fsw      *fsnotify.Watcher
	started  atomic.Bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New watches dir and every directory below it. The onChange callback
// receives the changed paths relative to dir, sorted.
func New(dir string, onChange func(ctx context.Context, changed []string) error, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve directory: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	w := &Watcher{
		dir:      abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	if err := w.addTree(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is cancelled. It returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrStarted
	}
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close watcher", "err", err)
		}
	}()

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous run in progress, retrying")
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()
		if len(changed) == 0 || w.onChange == nil {
			return
		}
		if err := w.onChange(ctx, changed); err != nil {
			w.logger.Error("re-run failed", "err", err)
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := w.addTree(evt.Name); err != nil {
						w.logger.Warn("watch new directory", "dir", evt.Name, "err", err)
					}
					continue
				}
			}
			rel, err := filepath.Rel(w.dir, evt.Name)
			if err != nil || !relevant(rel) {
				continue
			}
			w.logger.Debug("schema changed", "file", rel, "op", evt.Op.String())
			mu.Lock()
			pending[filepath.ToSlash(rel)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

// addTree adds dir and its non-hidden subdirectories to the watcher.
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && hidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %q: %w", dir, err)
	}
	return nil
}

// relevant reports whether a change to the file affects the compilation.
func relevant(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if hidden(part) {
			return false
		}
	}
	base := filepath.Base(rel)
	return base == "go.mod" || (strings.HasSuffix(base, ".go") && !strings.HasSuffix(base, "_test.go"))
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
