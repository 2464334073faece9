// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watcher reloads a configuration file whenever it changes, and
// delivers the new options on [Watcher.Changes]. Only the latest
// options are kept if they are not received in time.
type Watcher struct {
	path    string
	watch   *fsnotify.Watcher
	changes chan *Options
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the configuration file at the given path.
// The directory of the file is watched, so that the file may be
// replaced as editors do.
func Watch(path string) (*Watcher, error) {
	fp, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config.Watch: %w", err)
	}
	fp, err = filepath.Abs(fp)
	if err != nil {
		return nil, fmt.Errorf("config.Watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config.Watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(fp)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config.Watch: %w", err)
	}
	w := &Watcher{path: fp, watch: fw, changes: make(chan *Options, 1), errs: make(chan error, 1), done: make(chan struct{})}
	go w.run()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Changes returns the channel on which reloaded options are delivered.
func (w *Watcher) Changes() <-chan *Options {
	return w.changes
}

// Errors returns the channel on which failures to reload are delivered.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watch.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watch.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			opts, err := Load(w.path)
			if err != nil {
				latest(w.errs, err)
				continue
			}
			latest(w.changes, opts)
		case err, ok := <-w.watch.Errors:
			if !ok {
				return
			}
			latest(w.errs, err)
		}
	}
}

// latest sends v on the buffered channel c, replacing a value that has
// not been received yet. There must be only one sender.
func latest[T any](c chan T, v T) {
	select {
	case c <- v:
		return
	default:
	}
	select {
	case <-c:
	default:
	}
	c <- v
}
