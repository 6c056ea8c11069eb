// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches shader files for changes. Changes are collected in
// the background, and handed out by [Watcher.Poll] on the goroutine
// that owns the graphics context, which can then reload the programs
// using the changed files.
type Watcher struct {
	watcher *fsnotify.Watcher

	// files are the watched files, by cleaned path.
	files map[string]bool

	mu      sync.Mutex
	changed map[string]bool
	done    chan struct{}

	closeOnce sync.Once
}

// NewWatcher returns a new watcher watching no files.
func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err)
	}
	wt := &Watcher{watcher: w, files: map[string]bool{}, changed: map[string]bool{}, done: make(chan struct{})}
	go wt.watch()
	return wt, nil
}

// Add watches the given files. Their directories are watched,
// so that files replaced by editors keep being watched.
func (wt *Watcher) Add(files ...string) error {
	for _, fn := range files {
		fn = filepath.Clean(fn)
		if wt.watched(fn) {
			continue
		}
		dir := filepath.Dir(fn)
		if !slices.Contains(wt.watcher.WatchList(), dir) {
			if err := wt.watcher.Add(dir); err != nil {
				return errors.Wrap(err)
			}
		}
		wt.mu.Lock()
		wt.files[fn] = true
		wt.mu.Unlock()
	}
	return nil
}

func (wt *Watcher) watch() {
	watch := wt.watcher
	for {
		select {
		case <-wt.done:
			return
		case event, ok := <-watch.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fn := filepath.Clean(event.Name)
			if !wt.watched(fn) {
				continue
			}
			slog.Debug("shaders: file changed", "file", fn)
			wt.mu.Lock()
			wt.changed[fn] = true
			wt.mu.Unlock()
		case err, ok := <-watch.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// watched returns whether fn is one of the watched files.
func (wt *Watcher) watched(fn string) bool {
	wt.mu.Lock()
	defer wt.mu.Unlock()
	return wt.files[fn]
}

// Poll returns the files that changed since the last call, sorted.
func (wt *Watcher) Poll() []string {
	wt.mu.Lock()
	defer wt.mu.Unlock()
	if len(wt.changed) == 0 {
		return nil
	}
	files := make([]string, 0, len(wt.changed))
	for fn := range wt.changed {
		files = append(files, fn)
	}
	clear(wt.changed)
	slices.Sort(files)
	return files
}

// Close stops watching. Closing again does nothing.
func (wt *Watcher) Close() error {
	var err error
	wt.closeOnce.Do(func() {
		close(wt.done)
		err = errors.Wrap(wt.watcher.Close())
	})
	return err
}
