/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package watch

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokenindex/config"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) OnFileChange(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.paths)
}

func newWatcher(t *testing.T, root string) (*Watcher, *recorder) {
	t.Helper()
	rec := &recorder{}
	cfg := (&config.Config{Files: []string{"**/*.css"}, Roots: []string{root}}).WithDefaults()
	w, err := New(rec, cfg, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w, rec
}

func TestHandle_DebouncesBursts(t *testing.T) {
	root := t.TempDir()
	w, rec := newWatcher(t, root)
	path := filepath.Join(root, "a.css")

	for range 5 {
		w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})
	}

	assert.Eventually(t, func() bool { return len(rec.seen()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{path}, rec.seen())
	assert.Zero(t, w.Pending())
}

func TestHandle_FiltersPaths(t *testing.T) {
	root := t.TempDir()
	w, rec := newWatcher(t, root)

	w.handle(fsnotify.Event{Name: filepath.Join(root, "notes.txt"), Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: filepath.Join(root, "node_modules", "x.css"), Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: filepath.Join(root, "a.css"), Op: fsnotify.Chmod})

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.seen())
}

func TestHandle_RemoveTriggersReindex(t *testing.T) {
	root := t.TempDir()
	w, rec := newWatcher(t, root)
	path := filepath.Join(root, "gone.css")

	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove})

	assert.Eventually(t, func() bool { return slices.Equal(rec.seen(), []string{path}) }, time.Second, 5*time.Millisecond)
}

func TestStop_CancelsPending(t *testing.T) {
	root := t.TempDir()
	rec := &recorder{}
	cfg := (&config.Config{Files: []string{"*.css"}, Roots: []string{root}}).WithDefaults()
	w, err := New(rec, cfg, time.Hour)
	require.NoError(t, err)

	w.handle(fsnotify.Event{Name: filepath.Join(root, "a.css"), Op: fsnotify.Write})
	require.Equal(t, 1, w.Pending())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.Zero(t, w.Pending())
	assert.ErrorIs(t, w.Start(root), ErrStopped)
}

func TestStart_WatchesFileWrites(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "styles")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	w, rec := newWatcher(t, root)
	require.NoError(t, w.Start(root))

	path := filepath.Join(sub, "tokens.css")
	require.NoError(t, os.WriteFile(path, []byte(":root { --a: 1px; }"), 0o644))

	assert.Eventually(t, func() bool { return slices.Contains(rec.seen(), path) }, 5*time.Second, 10*time.Millisecond)
}
