// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report provides the pluggable error reporting sink that every
// part of the scene-graph runtime uses for non-fatal diagnostics.
// Components never call through a nil [Reporter]: [OrDefault] substitutes
// the default console reporter whenever nil is supplied.
package report

import (
	"fmt"
	"log/slog"
	"os"
)

// Reporter is a sink for non-fatal diagnostics. Implementations
// may be called from more than one goroutine.
type Reporter interface {

	// Message reports an informational message.
	Message(msg string)

	// Warning reports a recoverable problem, with an optional cause.
	Warning(msg string, err error)

	// Error reports a problem that caused some work to be abandoned,
	// with an optional cause.
	Error(msg string, err error)
}

// UserLevel is the verbosity level that the user has selected for
// what messages should be shown by [Default] reporters. Messages at
// levels at or above this level will be shown.
var UserLevel = slog.LevelWarn

// LevelFromFlags returns the [slog.Level] corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel returns the level named by s, which is one of
// debug, info, warn or error (case insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(s)); err != nil {
		return UserLevel, fmt.Errorf("report.ParseLevel: %w", err)
	}
	return lv, nil
}

// Default returns a new console reporter writing to [os.Stderr]
// at [UserLevel].
func Default() Reporter {
	return NewConsole(os.Stderr, true)
}

// OrDefault returns r, or [Default] if r is nil.
func OrDefault(r Reporter) Reporter {
	if r == nil {
		return Default()
	}
	return r
}

// Guard calls fun with r and returns r. If fun panics while reporting,
// the panic is swallowed and [Discard] is returned so that the caller
// can replace its misbehaving reporter.
func Guard(r Reporter, fun func(r Reporter)) (res Reporter) {
	res = r
	defer func() {
		if recover() != nil {
			res = Discard
		}
	}()
	fun(r)
	return
}

// PanicError converts a recovered panic value into an error.
func PanicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}

type discard struct{}

func (discard) Message(msg string)            {}
func (discard) Warning(msg string, err error) {}
func (discard) Error(msg string, err error)   {}

// Discard is a [Reporter] that drops everything.
var Discard Reporter = discard{}
