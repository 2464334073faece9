// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import "log/slog"

// Logger is a [Reporter] that sends everything to a structured
// [slog.Logger], with the cause under the "err" key.
type Logger struct {

	// Log is the logger to write to. If it is nil, [slog.Default] is used.
	Log *slog.Logger
}

// NewLogger returns a new [Logger] for the given logger.
func NewLogger(log *slog.Logger) *Logger {
	return &Logger{Log: log}
}

func (lr *Logger) logger() *slog.Logger {
	if lr.Log == nil {
		return slog.Default()
	}
	return lr.Log
}

func (lr *Logger) Message(msg string) {
	lr.logger().Info(msg)
}

func (lr *Logger) Warning(msg string, err error) {
	if err != nil {
		lr.logger().Warn(msg, "err", err)
		return
	}
	lr.logger().Warn(msg)
}

func (lr *Logger) Error(msg string, err error) {
	if err != nil {
		lr.logger().Error(msg, "err", err)
		return
	}
	lr.logger().Error(msg)
}
