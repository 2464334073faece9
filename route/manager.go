// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package route evaluates ROUTEs: it listens for changes of the source
// fields of its routes and forwards the changed values to the
// destination fields, following the resulting cascade of events.
package route

import (
	"fmt"
	"slices"

	"cogentcore.org/x3d/node"
	"cogentcore.org/x3d/report"
)

// DefaultMaxDepth is the default limit on the number of generations
// of events in one cascade.
const DefaultMaxDepth = 64

// Route is a ROUTE from an output field of one node to an input field
// of another.
type Route struct {
	Src      node.Node
	SrcField int
	Dst      node.Node
	DstField int
}

func (r *Route) String() string {
	return fmt.Sprintf("ROUTE %s.%s TO %s.%s", r.Src.NodeName(), fieldName(r.Src, r.SrcField), r.Dst.NodeName(), fieldName(r.Dst, r.DstField))
}

func fieldName(n node.Node, index int) string {
	if d := n.FieldDeclaration(index); d != nil {
		return d.Name
	}
	return fmt.Sprint(index)
}

// sourceWatcher queues the routes of one source node when its fields change.
type sourceWatcher struct {
	m   *Manager
	src node.Node
}

func (w *sourceWatcher) FieldChanged(index int) {
	for _, r := range w.m.routes[w.src] {
		if r.SrcField == index {
			w.m.pending = append(w.m.pending, r)
		}
	}
}

// Manager holds a set of routes and evaluates the events on them.
type Manager struct {

	// MaxDepth is the maximum number of generations of events in one
	// cascade; 0 means no limit. Events beyond it are dropped with a warning.
	MaxDepth int

	routes   map[node.Node][]*Route
	watchers map[node.Node]*sourceWatcher
	pending  []*Route
	reporter report.Reporter
}

// New returns a new Manager with [DefaultMaxDepth].
func New() *Manager {
	return &Manager{MaxDepth: DefaultMaxDepth, routes: map[node.Node][]*Route{}, watchers: map[node.Node]*sourceWatcher{}}
}

// SetErrorReporter sets the reporter for failed deliveries.
// A nil reporter restores [report.Default].
func (m *Manager) SetErrorReporter(r report.Reporter) {
	m.reporter = r
}

// Add adds a route from the field srcField of src to the field dstField
// of dst. The source field must be readable and the destination field
// writable by routes, and both must have the same type unless either
// is of unknown type, as are the fields of an unbound import.
func (m *Manager) Add(src node.Node, srcField int, dst node.Node, dstField int) (*Route, error) {
	if src == nil || dst == nil {
		return nil, fmt.Errorf("route.Manager.Add: nil node")
	}
	sd := src.FieldDeclaration(srcField)
	if sd == nil {
		return nil, &node.FieldError{NodeName: src.NodeName(), Index: srcField, Err: node.ErrFieldUnknown}
	}
	dd := dst.FieldDeclaration(dstField)
	if dd == nil {
		return nil, &node.FieldError{NodeName: dst.NodeName(), Index: dstField, Err: node.ErrFieldUnknown}
	}
	if !sd.Access.CanRead() {
		return nil, &node.FieldError{NodeName: src.NodeName(), Field: sd.Name, Index: srcField, Err: fmt.Errorf("%w: %v field is not a route source", node.ErrAccessDenied, sd.Access)}
	}
	if !dd.Access.CanWrite() {
		return nil, &node.FieldError{NodeName: dst.NodeName(), Field: dd.Name, Index: dstField, Err: fmt.Errorf("%w: %v field is not a route destination", node.ErrAccessDenied, dd.Access)}
	}
	if sd.Type != dd.Type && sd.Type != node.UnknownField && dd.Type != node.UnknownField {
		return nil, &node.FieldError{NodeName: dst.NodeName(), Field: dd.Name, Index: dstField, Err: fmt.Errorf("%w: %v routed to %v", node.ErrValueInvalid, sd.Type, dd.Type)}
	}
	r := &Route{Src: src, SrcField: srcField, Dst: dst, DstField: dstField}
	if m.routes == nil {
		m.routes = map[node.Node][]*Route{}
		m.watchers = map[node.Node]*sourceWatcher{}
	}
	if _, has := m.watchers[src]; !has {
		w := &sourceWatcher{m: m, src: src}
		m.watchers[src] = w
		src.AddNodeListener(w)
	}
	m.routes[src] = append(m.routes[src], r)
	return r, nil
}

// Remove removes the route. Events already queued on it are dropped.
func (m *Manager) Remove(r *Route) {
	rs := m.routes[r.Src]
	i := slices.Index(rs, r)
	if i < 0 {
		return
	}
	rs = slices.Delete(rs, i, i+1)
	m.pending = slices.DeleteFunc(m.pending, func(p *Route) bool { return p == r })
	if len(rs) > 0 {
		m.routes[r.Src] = rs
		return
	}
	delete(m.routes, r.Src)
	if w, ok := m.watchers[r.Src]; ok {
		r.Src.RemoveNodeListener(w)
		delete(m.watchers, r.Src)
	}
}

// RemoveNode removes every route from or to the node.
func (m *Manager) RemoveNode(n node.Node) {
	for _, r := range m.Routes() {
		if r.Src == n || r.Dst == n {
			m.Remove(r)
		}
	}
}

// Routes returns all of the routes, grouped by source node.
func (m *Manager) Routes() []*Route {
	var all []*Route
	for _, rs := range m.routes {
		all = append(all, rs...)
	}
	return all
}

// Pending returns the number of events waiting to be processed.
func (m *Manager) Pending() int {
	return len(m.pending)
}

// Process delivers all pending events and the events that they cause in
// turn, in generations. Each route delivers at most once per call, which
// breaks loops of routes. It returns the number of events delivered.
func (m *Manager) Process(time float64) int {
	fired := map[*Route]bool{}
	n := 0
	for depth := 0; len(m.pending) > 0; depth++ {
		if m.MaxDepth > 0 && depth >= m.MaxDepth {
			msg := fmt.Sprintf("route.Manager.Process: cascade deeper than %d, dropping %d events", m.MaxDepth, len(m.pending))
			report.OrDefault(m.reporter).Warning(msg, nil)
			m.pending = nil
			break
		}
		batch := m.pending
		m.pending = nil
		for _, r := range batch {
			if fired[r] {
				continue
			}
			fired[r] = true
			if err := r.Src.SendRoute(time, r.SrcField, r.Dst, r.DstField); err != nil {
				report.OrDefault(m.reporter).Warning(fmt.Sprintf("route.Manager.Process: %v", r), err)
				continue
			}
			n++
		}
	}
	return n
}
