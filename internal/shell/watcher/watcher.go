// Package watcher reports changes to the shell's configuration files.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 100 * time.Millisecond

// Event is a debounced change to a watched file.
type Event struct {
	Name string // base name, e.g. "settings.yaml"
	Path string
	Op   fsnotify.Op
}

// Watcher watches a directory for changes to a fixed set of file names.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	logger     *zap.Logger
	dir        string
	files      map[string]bool
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once

	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for the named files inside dir.
func New(dir string, logger *zap.Logger, files ...string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	names := make(map[string]bool, len(files))
	for _, f := range files {
		names[f] = true
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		logger:     logger,
		dir:        dir,
		files:      names,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Done is closed once Stop has been called.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Start begins watching. The directory must exist.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for _, t := range w.debounce {
			t.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// handleEvent filters and debounces a raw fsnotify event. Create and Rename
// matter as much as Write: settings are saved via temp file and rename.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	name := filepath.Base(event.Name)
	if !w.files[name] {
		return
	}

	w.debounceEvent(event.Name, func() {
		w.logger.Debug("config file changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
		select {
		case w.eventsChan <- Event{Name: name, Path: event.Name, Op: event.Op}:
		case <-w.done:
		}
	})
}

func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}
