// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package snippets

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher notifies the app layer when the backing snippets.toml
// changes on disk outside of jiq, so a hand-edit (or a second jiq
// instance saving a snippet) can be picked up via State.Reload
// without restarting. The original has no equivalent — snippets.rs
// only loads once at startup — this is a DOMAIN STACK addition giving
// fsnotify a home, since no other jiq component needs a file watch.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// WatchFile starts watching the directory containing path (fsnotify
// watches directories, not bare files, so renames-over-existing-file
// saves are still observed) and returns a Watcher whose Events
// channel reports every change in that directory, not only path.
func WatchFile(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{fsw: fsw}, nil
}

// Events fires an event whenever the watched directory reports a
// filesystem change; callers filter by path themselves.
func (w *Watcher) Events() <-chan fsnotify.Event { return w.fsw.Events }

// Errors surfaces watcher-internal errors (e.g. an inotify queue
// overflow), mirrored straight through from fsnotify.
func (w *Watcher) Errors() <-chan error { return w.fsw.Errors }

// Close stops the watch.
func (w *Watcher) Close() error { return w.fsw.Close() }
