// Package watcher notifies callers when a deck's source files change
// on disk, so a loaded deck can be re-parsed on edit.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/harvey-slides/harvey/internal/domain/ports"
)

// DeckWatcher implements file watching with fsnotify, debouncing
// bursts of events from editors that write files in several steps.
type DeckWatcher struct {
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	events  chan ports.FileChangeEvent
	watched map[string]bool
	started bool
	stopped bool
	done    chan struct{}
}

// NewDeckWatcher creates a watcher with the given debounce interval.
// A nil logger falls back to slog.Default.
func NewDeckWatcher(debounce time.Duration, logger *slog.Logger) (*DeckWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &DeckWatcher{
		debounce: debounce,
		logger:   logger,
		watcher:  fsw,
		events:   make(chan ports.FileChangeEvent, 16),
		watched:  make(map[string]bool),
		done:     make(chan struct{}),
	}, nil
}

// Watch starts watching the given files. The parent directories are
// registered with fsnotify so that delete-and-rename save strategies
// are still observed; events for unwatched siblings are filtered out.
func (w *DeckWatcher) Watch(ctx context.Context, paths ...string) (<-chan ports.FileChangeEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil, fmt.Errorf("watcher already stopped")
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	if !w.started {
		w.started = true
		go w.loop(ctx)
	}

	w.logger.Info("deck watcher started",
		"files", len(w.watched),
		"debounce_ms", w.debounce.Milliseconds(),
	)
	return w.events, nil
}

// Stop stops the watcher and closes the event channel.
func (w *DeckWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	close(w.events)
	return err
}

func (w *DeckWatcher) loop(ctx context.Context) {
	defer close(w.done)

	pending := make(map[string]ports.FileChangeEvent)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, relevant := w.classify(ev)
			if !relevant {
				continue
			}
			pending[change.Path] = change
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			for _, change := range pending {
				select {
				case w.events <- change:
				default:
					w.logger.Warn("dropping change event", "path", change.Path)
				}
			}
			pending = make(map[string]ports.FileChangeEvent)
			fire = nil
		}
	}
}

// classify maps an fsnotify event onto a change event for a watched
// file; events for other files in the watched directories are not
// relevant.
func (w *DeckWatcher) classify(ev fsnotify.Event) (ports.FileChangeEvent, bool) {
	w.mu.Lock()
	relevant := w.watched[ev.Name]
	w.mu.Unlock()
	if !relevant {
		return ports.FileChangeEvent{}, false
	}

	change := ports.FileChangeEvent{
		Path:      ev.Name,
		Timestamp: time.Now(),
	}
	switch {
	case ev.Op.Has(fsnotify.Create):
		change.Type = ports.Created
	case ev.Op.Has(fsnotify.Write):
		change.Type = ports.Modified
	case ev.Op.Has(fsnotify.Remove):
		change.Type = ports.Deleted
	case ev.Op.Has(fsnotify.Rename):
		change.Type = ports.Renamed
	default:
		return ports.FileChangeEvent{}, false
	}
	return change, true
}
