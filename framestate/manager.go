// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package framestate provides [Manager], which collects the structural
// changes of the scene graph during one frame, such as nodes and scenes
// being added and removed, so that they can be processed together once
// the event cascade of the frame has settled.
//
// Producers register changes as they happen; consumers read the buckets
// they care about after [Manager.FrameFinished] and drain them. Every
// getter returns a non-nil slice, which is empty when there is nothing
// to do.
package framestate

import (
	"fmt"
	"slices"

	"cogentcore.org/x3d/node"
	"cogentcore.org/x3d/report"
	"cogentcore.org/x3d/scene"
)

// Listener is notified once at the end of a frame, after all of the
// events of the frame have been processed.
type Listener interface {
	AllEventsComplete()
}

// bucket is an insertion ordered set of nodes.
type bucket struct {
	nodes []node.Node
	set   map[node.Node]struct{}
}

func (b *bucket) add(n node.Node) {
	if _, has := b.set[n]; has {
		return
	}
	if b.set == nil {
		b.set = map[node.Node]struct{}{}
	}
	b.set[n] = struct{}{}
	b.nodes = append(b.nodes, n)
}

func (b *bucket) list() []node.Node {
	if len(b.nodes) == 0 {
		return []node.Node{}
	}
	return slices.Clone(b.nodes)
}

func (b *bucket) clear() {
	b.nodes = nil
	b.set = nil
}

// Manager buffers the structural changes of one frame.
// The zero value is ready to use, and listens for no types.
type Manager struct {
	listenFor [node.TypesN]bool

	added   [node.TypesN]bucket
	removed [node.TypesN]bucket

	addedScenes   []*scene.Scene
	removedScenes []*scene.Scene
	addedProtos   []*scene.ExternProto

	// endOfFrame are the listeners for the end of this frame, in
	// registration order without duplicates.
	endOfFrame []Listener

	reporter report.Reporter
}

// New returns a new Manager that listens for the given node types.
func New(types ...node.Types) *Manager {
	m := &Manager{}
	m.ListenFor(types...)
	return m
}

// SetErrorReporter sets the reporter for failures of end-of-frame
// listeners. A nil reporter restores [report.Default].
func (m *Manager) SetErrorReporter(r report.Reporter) {
	m.reporter = report.OrDefault(r)
}

// warn reports through the reporter, replacing it with [report.Discard]
// if it fails.
func (m *Manager) warn(msg string, err error) {
	m.reporter = report.Guard(report.OrDefault(m.reporter), func(r report.Reporter) {
		r.Warning(msg, err)
	})
}

// ListenFor adds the given node types to the buckets that are tracked.
// Nodes of types that are not listened for are not recorded.
func (m *Manager) ListenFor(types ...node.Types) {
	for _, t := range types {
		if t >= 0 && t < node.TypesN {
			m.listenFor[t] = true
		}
	}
}

// RemoveListenFor stops tracking the given node types. Nodes already
// recorded for them are kept until cleared.
func (m *Manager) RemoveListenFor(types ...node.Types) {
	for _, t := range types {
		if t >= 0 && t < node.TypesN {
			m.listenFor[t] = false
		}
	}
}

// IsListeningFor returns whether the node type is tracked.
func (m *Manager) IsListeningFor(t node.Types) bool {
	return t >= 0 && t < node.TypesN && m.listenFor[t]
}

// record adds the node to each tracked bucket of its types.
func (m *Manager) record(buckets *[node.TypesN]bucket, n node.Node) {
	if n == nil {
		return
	}
	if t := n.PrimaryType(); m.IsListeningFor(t) {
		buckets[t].add(n)
	}
	for _, t := range n.SecondaryTypes() {
		if m.IsListeningFor(t) {
			buckets[t].add(n)
		}
	}
}

// RegisterAddedNode records a node that has been added to the scene graph.
func (m *Manager) RegisterAddedNode(n node.Node) {
	m.record(&m.added, n)
}

// RegisterAddedNodes records nodes that have been added to the scene graph.
func (m *Manager) RegisterAddedNodes(ns []node.Node) {
	for _, n := range ns {
		m.record(&m.added, n)
	}
}

// RegisterRemovedNode records a node that has been removed from the
// scene graph. The caller updates its reference counts beforehand.
func (m *Manager) RegisterRemovedNode(n node.Node) {
	m.record(&m.removed, n)
}

// RegisterRemovedNodes records nodes that have been removed from the
// scene graph. The caller updates their reference counts beforehand.
func (m *Manager) RegisterRemovedNodes(ns []node.Node) {
	for _, n := range ns {
		m.record(&m.removed, n)
	}
}

func addScene(list []*scene.Scene, s *scene.Scene) []*scene.Scene {
	if s == nil || slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

func (m *Manager) RegisterAddedScene(s *scene.Scene) {
	m.addedScenes = addScene(m.addedScenes, s)
}

func (m *Manager) RegisterRemovedScene(s *scene.Scene) {
	m.removedScenes = addScene(m.removedScenes, s)
}

// RegisterAddedExternProto records an EXTERNPROTO declaration that
// needs its body loaded.
func (m *Manager) RegisterAddedExternProto(p *scene.ExternProto) {
	if p == nil || slices.Contains(m.addedProtos, p) {
		return
	}
	m.addedProtos = append(m.addedProtos, p)
}

// AddedNodes returns the nodes of the given type added this frame.
func (m *Manager) AddedNodes(t node.Types) []node.Node {
	if t < 0 || t >= node.TypesN {
		return []node.Node{}
	}
	return m.added[t].list()
}

// RemovedNodes returns the nodes of the given type removed this frame.
func (m *Manager) RemovedNodes(t node.Types) []node.Node {
	if t < 0 || t >= node.TypesN {
		return []node.Node{}
	}
	return m.removed[t].list()
}

func (m *Manager) AddedSensors() []node.Node   { return m.AddedNodes(node.SensorNodeType) }
func (m *Manager) RemovedSensors() []node.Node { return m.RemovedNodes(node.SensorNodeType) }

func (m *Manager) AddedScripts() []node.Node   { return m.AddedNodes(node.ScriptNodeType) }
func (m *Manager) RemovedScripts() []node.Node { return m.RemovedNodes(node.ScriptNodeType) }

func (m *Manager) AddedBindables() []node.Node   { return m.AddedNodes(node.BindableNodeType) }
func (m *Manager) RemovedBindables() []node.Node { return m.RemovedNodes(node.BindableNodeType) }

func (m *Manager) AddedTerrains() []node.Node   { return m.AddedNodes(node.TerrainNodeType) }
func (m *Manager) RemovedTerrains() []node.Node { return m.RemovedNodes(node.TerrainNodeType) }

func (m *Manager) AddedExternalSync() []node.Node {
	return m.AddedNodes(node.ExternalSynchronizedNodeType)
}

func (m *Manager) RemovedExternalSync() []node.Node {
	return m.RemovedNodes(node.ExternalSynchronizedNodeType)
}

// AddedURLNodes returns the nodes that load content from URLs added this frame.
func (m *Manager) AddedURLNodes() []node.Node   { return m.AddedNodes(node.ExternalNodeType) }
func (m *Manager) RemovedURLNodes() []node.Node { return m.RemovedNodes(node.ExternalNodeType) }

func (m *Manager) AddedViewDependents() []node.Node {
	return m.AddedNodes(node.ViewDependentNodeType)
}

func (m *Manager) RemovedViewDependents() []node.Node {
	return m.RemovedNodes(node.ViewDependentNodeType)
}

func (m *Manager) AddedScenes() []*scene.Scene {
	return append([]*scene.Scene{}, m.addedScenes...)
}

func (m *Manager) RemovedScenes() []*scene.Scene {
	return append([]*scene.Scene{}, m.removedScenes...)
}

func (m *Manager) AddedExternProtos() []*scene.ExternProto {
	return append([]*scene.ExternProto{}, m.addedProtos...)
}

// ClearAddedNodes empties all of the added node buckets.
func (m *Manager) ClearAddedNodes() {
	for i := range m.added {
		m.added[i].clear()
	}
}

// ClearRemovedNodes empties all of the removed node buckets.
func (m *Manager) ClearRemovedNodes() {
	for i := range m.removed {
		m.removed[i].clear()
	}
}

func (m *Manager) ClearAddedScenes()       { m.addedScenes = nil }
func (m *Manager) ClearRemovedScenes()     { m.removedScenes = nil }
func (m *Manager) ClearAddedExternProtos() { m.addedProtos = nil }

// Clear empties every bucket. The set of types listened for is kept,
// and so are the end-of-frame listeners.
func (m *Manager) Clear() {
	m.ClearAddedNodes()
	m.ClearRemovedNodes()
	m.ClearAddedScenes()
	m.ClearRemovedScenes()
	m.ClearAddedExternProtos()
}

// AddEndOfThisFrameListener registers a listener to be notified once by
// the next [Manager.FrameFinished]. Registering the same listener again
// before then has no effect.
func (m *Manager) AddEndOfThisFrameListener(l Listener) {
	if l == nil || slices.Contains(m.endOfFrame, l) {
		return
	}
	m.endOfFrame = append(m.endOfFrame, l)
}

// NumEndOfFrameListeners returns the number of listeners waiting
// for the end of this frame.
func (m *Manager) NumEndOfFrameListeners() int {
	return len(m.endOfFrame)
}

// FrameFinished notifies every end-of-frame listener once and removes
// them. Listeners registered during the notification are kept for the
// next call. A listener that panics is reported and does not prevent
// the notification of the others.
func (m *Manager) FrameFinished() {
	ls := m.endOfFrame
	m.endOfFrame = nil
	for _, l := range ls {
		m.notify(l)
	}
}

func (m *Manager) notify(l Listener) {
	defer func() {
		if r := recover(); r != nil {
			m.warn(fmt.Sprintf("framestate.Manager.FrameFinished: listener %T failed", l), report.PanicError(r))
		}
	}()
	l.AllEventsComplete()
}
