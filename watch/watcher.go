/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package watch feeds file-system changes to the token index.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"bennypowers.dev/tokenindex/internal/logger"
)

// DefaultDebounce groups bursts of events for one path.
const DefaultDebounce = 200 * time.Millisecond

// ErrStopped is returned when starting a watcher that was already stopped.
var ErrStopped = errors.New("watcher already stopped")

// Target receives one call per settled change. *index.Index satisfies it.
type Target interface {
	OnFileChange(path string)
}

// Filter decides which paths are sources. *config.Config satisfies it.
type Filter interface {
	Matches(path string) bool
	Ignored(path string) bool
}

// Watcher watches root directories recursively and reindexes changed sources.
type Watcher struct {
	watcher  *fsnotify.Watcher
	target   Target
	filter   Filter
	debounce time.Duration

	timers  map[string]*time.Timer
	timerMu sync.Mutex

	stop    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// New creates a watcher. A zero debounce uses DefaultDebounce.
func New(target Target, filter Filter, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  w,
		target:   target,
		filter:   filter,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		stop:     make(chan struct{}),
	}, nil
}

// Start watches every root and its subdirectories, then handles events in
// the background until Stop.
func (w *Watcher) Start(roots ...string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return ErrStopped
	}
	w.mu.Unlock()

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		if err := w.addTree(abs); err != nil {
			return fmt.Errorf("watching %s: %w", abs, err)
		}
		logger.Debug("watching %s", abs)
	}

	go w.loop()
	return nil
}

// Stop cancels pending reindexes and closes the watcher. It is idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stop)

	w.timerMu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	clear(w.timers)
	w.timerMu.Unlock()

	return w.watcher.Close()
}

// Pending reports how many paths are waiting for their debounce to settle.
func (w *Watcher) Pending() int {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	return len(w.timers)
}

func (w *Watcher) addTree(root string) error {
	if err := w.watcher.Add(root); err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() || path == root {
			return nil
		}
		if w.filter.Ignored(path) || w.filter.Ignored(path+"/") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			logger.Warn("failed to watch %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) && isDir(path) {
		if !w.filter.Ignored(path + "/") {
			if err := w.addTree(path); err != nil {
				logger.Warn("failed to watch %s: %v", path, err)
			}
		}
		return
	}

	if !w.filter.Matches(path) {
		return
	}

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create),
		event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// Removed and renamed files fail to read, which purges them.
		logger.Debug("%s %s", event.Op, path)
		w.schedule(path)
	}
}

// schedule reindexes path once no further events arrive within the debounce window.
func (w *Watcher) schedule(path string) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.timerMu.Lock()
		delete(w.timers, path)
		w.timerMu.Unlock()

		w.target.OnFileChange(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
