// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/muesli/termenv"
)

// Console is a [Reporter] that prints one line per message to a writer,
// with the severity label colored when the writer is a terminal.
type Console struct {

	// Level is the minimum level of messages that are printed.
	Level slog.Level

	out *termenv.Output
	mu  sync.Mutex
}

// NewConsole returns a new [Console] writing to w at [UserLevel].
// If color is false, no escape sequences are ever written.
func NewConsole(w io.Writer, color bool) *Console {
	var opts []termenv.OutputOption
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Console{Level: UserLevel, out: termenv.NewOutput(w, opts...)}
}

func (c *Console) print(level slog.Level, label, color, msg string, err error) {
	if level < c.Level {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	tag := c.out.String(label).Foreground(c.out.Color(color)).Bold()
	if err != nil {
		fmt.Fprintf(c.out, "%s: %s: %v\n", tag, msg, err)
		return
	}
	fmt.Fprintf(c.out, "%s: %s\n", tag, msg)
}

func (c *Console) Message(msg string) {
	c.print(slog.LevelInfo, "INFO", "4", msg, nil)
}

func (c *Console) Warning(msg string, err error) {
	c.print(slog.LevelWarn, "WARNING", "3", msg, err)
}

func (c *Console) Error(msg string, err error) {
	c.print(slog.LevelError, "ERROR", "1", msg, err)
}
