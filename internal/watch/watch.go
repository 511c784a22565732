// Package watch replays a file every time it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/lineship/internal/ports"
	"github.com/bft-labs/lineship/pkg/log"
)

// DefaultDebounce is the quiet period after the last change before a replay starts.
const DefaultDebounce = 250 * time.Millisecond

// Runner performs one replay of the watched file.
type Runner func(ctx context.Context) error

// Watcher runs a Runner once at start and again after each debounced
// write or create of the watched file. Replays never overlap.
type Watcher struct {
	path     string
	debounce time.Duration
	run      Runner
	logger   ports.Logger

	mu      sync.Mutex
	timer   *time.Timer
	trigger chan struct{}
}

// New creates a Watcher for path. A non-positive debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, run Runner, logger ports.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		run:      run,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
	}
}

// Run blocks until ctx is done. Replay errors are logged and do not stop
// the watcher. It returns an error only when the watch cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Watch the directory so editors that replace the file are still seen.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	defer w.stopTimer()

	w.replay(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", ports.Err(err))

		case <-w.trigger:
			w.replay(ctx)
		}
	}
}

func (w *Watcher) replay(ctx context.Context) {
	w.logger.Info("replaying file", ports.String("path", w.path))
	if err := w.run(ctx); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}
		w.logger.Error("replay failed", ports.String("path", w.path), ports.Err(err))
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
