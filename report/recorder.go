// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"log/slog"
	"sync"
)

// Entry is one message captured by a [Recorder].
type Entry struct {
	Level slog.Level
	Msg   string
	Err   error
}

// Recorder is a [Reporter] that keeps every message in memory,
// which is mostly useful in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (rc *Recorder) add(level slog.Level, msg string, err error) {
	rc.mu.Lock()
	rc.entries = append(rc.entries, Entry{Level: level, Msg: msg, Err: err})
	rc.mu.Unlock()
}

func (rc *Recorder) Message(msg string)            { rc.add(slog.LevelInfo, msg, nil) }
func (rc *Recorder) Warning(msg string, err error) { rc.add(slog.LevelWarn, msg, err) }
func (rc *Recorder) Error(msg string, err error)   { rc.add(slog.LevelError, msg, err) }

// Entries returns a copy of all of the recorded entries.
func (rc *Recorder) Entries() []Entry {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]Entry(nil), rc.entries...)
}

// Count returns the number of recorded entries at the given level.
func (rc *Recorder) Count(level slog.Level) int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	n := 0
	for _, e := range rc.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Reset removes all recorded entries.
func (rc *Recorder) Reset() {
	rc.mu.Lock()
	rc.entries = nil
	rc.mu.Unlock()
}
