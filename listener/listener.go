// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package listener provides the fan-out of "field changed" notifications
// from scene nodes to any number of interested parties.
//
// A set of listeners is represented by an immutable binary cons structure,
// the [Multicaster]. [Add] and [Remove] return a new head and never modify
// an existing chain, so a dispatch that is in progress keeps using the
// snapshot it started with even if the registration changes underneath it.
package listener

import (
	"fmt"
	"sync/atomic"

	"cogentcore.org/x3d/report"
)

// Node is the capability of receiving field change notifications
// from a scene node. Implementations must be comparable (typically
// pointers), so that they can be removed again.
type Node interface {

	// FieldChanged is called after the field with the given index
	// has been written.
	FieldChanged(index int)
}

var reporter atomic.Pointer[report.Reporter]

// SetReporter sets the reporter that receives failures from listener
// deliveries. A nil reporter restores [report.Default].
func SetReporter(r report.Reporter) {
	r = report.OrDefault(r)
	reporter.Store(&r)
}

// Reporter returns the reporter that receives failures from listener deliveries.
func Reporter() report.Reporter {
	if r := reporter.Load(); r != nil {
		return *r
	}
	SetReporter(nil)
	return *reporter.Load()
}

// Multicaster is one cell of an immutable listener chain.
// It holds exactly two listeners, either of which may itself
// be a Multicaster.
type Multicaster struct {
	a, b Node
}

// Add returns a listener chain that delivers to both a and b.
// It returns b if a is nil and a if b is nil, and never modifies
// either argument.
func Add(a, b Node) Node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &Multicaster{a: a, b: b}
}

// Remove returns the chain list with target removed. It returns nil
// if list is target, and list itself if target is not part of it.
// Only the cells on the path to target are rebuilt.
func Remove(list, target Node) Node {
	if list == nil || list == target {
		return nil
	}
	if m, ok := list.(*Multicaster); ok {
		return m.remove(target)
	}
	return list
}

func (m *Multicaster) remove(target Node) Node {
	if target == m.a {
		return m.b
	}
	if target == m.b {
		return m.a
	}
	a := Remove(m.a, target)
	b := Remove(m.b, target)
	if a == m.a && b == m.b {
		return m
	}
	return Add(a, b)
}

// FieldChanged delivers the notification to both halves of the cell.
// A failure in one half does not prevent delivery to the other.
func (m *Multicaster) FieldChanged(index int) {
	Dispatch(m.a, index)
	Dispatch(m.b, index)
}

// Dispatch delivers a field change notification to the given chain,
// recovering from and reporting any panic raised by a listener.
// It does nothing if l is nil.
func Dispatch(l Node, index int) {
	if l == nil {
		return
	}
	if m, ok := l.(*Multicaster); ok {
		m.FieldChanged(index)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			Reporter().Warning(fmt.Sprintf("listener.Dispatch: listener %T failed on field %d", l, index), report.PanicError(r))
		}
	}()
	l.FieldChanged(index)
}

// Len returns the number of leaf listeners in the given chain.
func Len(l Node) int {
	switch x := l.(type) {
	case nil:
		return 0
	case *Multicaster:
		return Len(x.a) + Len(x.b)
	default:
		return 1
	}
}
