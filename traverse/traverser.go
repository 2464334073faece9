// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package traverse provides [Traverser], which walks a scene graph depth
// first and reports every node to an observer, together with whether
// the node has already been seen (a USE of a DEF'd node).
package traverse

import (
	"errors"
	"fmt"

	"cogentcore.org/x3d/node"
	"cogentcore.org/x3d/report"
)

// ErrAlreadyTraversing is returned when a traversal is started while
// another one is in progress on the same [Traverser].
var ErrAlreadyTraversing = errors.New("traverse: already traversing")

// Resolver is a node that stands in for another node, such as an
// IMPORT. The traversal descends through the real node, and not at all
// while RealNode returns nil.
type Resolver interface {
	RealNode() node.Node
}

// DetailObserver receives one call per node encounter, to the method
// for the primary type of the node. parent is nil for the root of a
// traversal without a parent. field is the index of the field of parent
// that holds child, or -1 for the root. used is true if child has
// already been reported in this traversal.
type DetailObserver interface {
	ObservedGroupingNode(parent, child node.Node, field int, used bool)
	ObservedShape(parent, child node.Node, field int, used bool)
	ObservedAppearance(parent, child node.Node, field int, used bool)
	ObservedMaterial(parent, child node.Node, field int, used bool)
	ObservedTexture(parent, child node.Node, field int, used bool)
	ObservedSound(parent, child node.Node, field int, used bool)
	ObservedAudioClip(parent, child node.Node, field int, used bool)
	ObservedInterpolator(parent, child node.Node, field int, used bool)
	ObservedPointingSensor(parent, child node.Node, field int, used bool)
	ObservedDragSensor(parent, child node.Node, field int, used bool)
	ObservedKeySensor(parent, child node.Node, field int, used bool)
	ObservedEnvironmentalSensor(parent, child node.Node, field int, used bool)

	// ObservedSensor is called for sensors of no more specific category,
	// such as time sensors.
	ObservedSensor(parent, child node.Node, field int, used bool)
	ObservedInline(parent, child node.Node, field int, used bool)
	ObservedLight(parent, child node.Node, field int, used bool)
	ObservedBindable(parent, child node.Node, field int, used bool)
	ObservedScript(parent, child node.Node, field int, used bool)
	ObservedProtoInstance(parent, child node.Node, field int, used bool)
	ObservedCustom(parent, child node.Node, field int, used bool)

	// ObservedMisc is called for every other node, such as geometry.
	ObservedMisc(parent, child node.Node, field int, used bool)
}

// SimpleObserver receives one call per node encounter, regardless of
// the type of the node. The arguments are as for [DetailObserver].
type SimpleObserver interface {
	ObservedNode(parent, child node.Node, field int, used bool)
}

// BaseObserver implements [DetailObserver] with methods that do nothing,
// for embedding in observers that only care about some types.
type BaseObserver struct{}

func (BaseObserver) ObservedGroupingNode(parent, child node.Node, field int, used bool)        {}
func (BaseObserver) ObservedShape(parent, child node.Node, field int, used bool)               {}
func (BaseObserver) ObservedAppearance(parent, child node.Node, field int, used bool)          {}
func (BaseObserver) ObservedMaterial(parent, child node.Node, field int, used bool)            {}
func (BaseObserver) ObservedTexture(parent, child node.Node, field int, used bool)             {}
func (BaseObserver) ObservedSound(parent, child node.Node, field int, used bool)               {}
func (BaseObserver) ObservedAudioClip(parent, child node.Node, field int, used bool)           {}
func (BaseObserver) ObservedInterpolator(parent, child node.Node, field int, used bool)        {}
func (BaseObserver) ObservedPointingSensor(parent, child node.Node, field int, used bool)      {}
func (BaseObserver) ObservedDragSensor(parent, child node.Node, field int, used bool)          {}
func (BaseObserver) ObservedKeySensor(parent, child node.Node, field int, used bool)           {}
func (BaseObserver) ObservedEnvironmentalSensor(parent, child node.Node, field int, used bool) {}
func (BaseObserver) ObservedSensor(parent, child node.Node, field int, used bool)              {}
func (BaseObserver) ObservedInline(parent, child node.Node, field int, used bool)              {}
func (BaseObserver) ObservedLight(parent, child node.Node, field int, used bool)               {}
func (BaseObserver) ObservedBindable(parent, child node.Node, field int, used bool)            {}
func (BaseObserver) ObservedScript(parent, child node.Node, field int, used bool)              {}
func (BaseObserver) ObservedProtoInstance(parent, child node.Node, field int, used bool)       {}
func (BaseObserver) ObservedCustom(parent, child node.Node, field int, used bool)              {}
func (BaseObserver) ObservedMisc(parent, child node.Node, field int, used bool)                {}

// Traverser walks scene graphs. Nodes are reported once per encounter,
// but the children of a node are only visited on its first encounter,
// so shared subgraphs and cycles created by USE are walked only once.
//
// The set of visited nodes is kept across calls to [Traverser.TraverseGraph]
// until [Traverser.Reset] is called.
type Traverser struct {
	observer DetailObserver
	simple   SimpleObserver
	reporter report.Reporter
	visited  map[node.Node]struct{}
	inUse    bool
}

// New returns a new Traverser without an observer.
func New() *Traverser {
	return &Traverser{visited: map[node.Node]struct{}{}}
}

// SetObserver sets the detail observer, and clears the simple observer.
func (t *Traverser) SetObserver(o DetailObserver) {
	t.observer = o
	t.simple = nil
}

// SetSimpleObserver sets the simple observer, and clears the detail observer.
func (t *Traverser) SetSimpleObserver(o SimpleObserver) {
	t.simple = o
	t.observer = nil
}

// SetErrorReporter sets the reporter for observer failures.
// A nil reporter restores [report.Default].
func (t *Traverser) SetErrorReporter(r report.Reporter) {
	t.reporter = r
}

// Reset forgets all of the nodes visited so far.
func (t *Traverser) Reset() {
	clear(t.visited)
}

// TraverseGraph walks the graph rooted at source. See
// [Traverser.TraverseGraphWithParent].
func (t *Traverser) TraverseGraph(source node.Node) error {
	return t.TraverseGraphWithParent(nil, source)
}

// TraverseGraphWithParent walks the graph rooted at source, reporting
// parent as the parent of source. It does nothing if there is no
// observer or source is nil, and returns [ErrAlreadyTraversing] if it
// is called during a traversal, including from an observer.
func (t *Traverser) TraverseGraphWithParent(parent, source node.Node) error {
	if t.inUse {
		return ErrAlreadyTraversing
	}
	if source == nil || (t.observer == nil && t.simple == nil) {
		return nil
	}
	if t.visited == nil {
		t.visited = map[node.Node]struct{}{}
	}
	t.inUse = true
	defer func() { t.inUse = false }()
	t.visit(parent, source, -1)
	return nil
}

func (t *Traverser) visit(parent, child node.Node, field int) {
	_, used := t.visited[child]
	if !used {
		t.visited[child] = struct{}{}
	}
	t.notify(parent, child, field, used)
	if used {
		return
	}
	src := child
	if r, ok := child.(Resolver); ok {
		if src = r.RealNode(); src == nil {
			return
		}
	}
	for _, fi := range descendFields(src) {
		v, err := src.FieldValue(fi)
		if err != nil {
			continue
		}
		for _, k := range v.NodeList() {
			if k != nil {
				t.visit(src, k, fi)
			}
		}
	}
}

// descendFields returns the indexes of the node fields to visit below n.
func descendFields(n node.Node) []int {
	var names []string
	switch n.PrimaryType() {
	case node.GroupingNodeType:
		names = []string{"children"}
	case node.ShapeNodeType:
		names = []string{"appearance", "geometry"}
	case node.AppearanceNodeType:
		names = []string{"material", "texture", "textureTransform"}
	case node.SoundNodeType:
		names = []string{"source"}
	case node.ScriptNodeType, node.ProtoInstanceNodeType:
		var idxs []int
		for _, fi := range n.NodeFieldIndices() {
			if d := n.FieldDeclaration(fi); d != nil && !d.Access.IsEvent() {
				idxs = append(idxs, fi)
			}
		}
		return idxs
	default:
		return nil
	}
	idxs := make([]int, 0, len(names))
	for _, nm := range names {
		if fi := n.FieldIndex(nm); fi != node.NotFound {
			idxs = append(idxs, fi)
		}
	}
	return idxs
}

// notify reports the encounter to the observer, recovering from and
// reporting any panic.
func (t *Traverser) notify(parent, child node.Node, field int, used bool) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("traverse.Traverser: observer failed on %s", child.NodeName())
			report.OrDefault(t.reporter).Warning(msg, report.PanicError(r))
		}
	}()
	if t.simple != nil {
		t.simple.ObservedNode(parent, child, field, used)
		return
	}
	o := t.observer
	switch child.PrimaryType() {
	case node.GroupingNodeType:
		o.ObservedGroupingNode(parent, child, field, used)
	case node.ShapeNodeType:
		o.ObservedShape(parent, child, field, used)
	case node.AppearanceNodeType:
		o.ObservedAppearance(parent, child, field, used)
	case node.MaterialNodeType:
		o.ObservedMaterial(parent, child, field, used)
	case node.TextureNodeType:
		o.ObservedTexture(parent, child, field, used)
	case node.SoundNodeType:
		o.ObservedSound(parent, child, field, used)
	case node.AudioClipNodeType:
		o.ObservedAudioClip(parent, child, field, used)
	case node.InterpolatorNodeType:
		o.ObservedInterpolator(parent, child, field, used)
	case node.PointingSensorNodeType:
		o.ObservedPointingSensor(parent, child, field, used)
	case node.DragSensorNodeType:
		o.ObservedDragSensor(parent, child, field, used)
	case node.KeySensorNodeType:
		o.ObservedKeySensor(parent, child, field, used)
	case node.EnvironmentalSensorNodeType:
		o.ObservedEnvironmentalSensor(parent, child, field, used)
	case node.SensorNodeType, node.TimeDependentNodeType:
		o.ObservedSensor(parent, child, field, used)
	case node.InlineNodeType:
		o.ObservedInline(parent, child, field, used)
	case node.LightNodeType:
		o.ObservedLight(parent, child, field, used)
	case node.BindableNodeType:
		o.ObservedBindable(parent, child, field, used)
	case node.ScriptNodeType:
		o.ObservedScript(parent, child, field, used)
	case node.ProtoInstanceNodeType:
		o.ObservedProtoInstance(parent, child, field, used)
	case node.CustomNodeType:
		o.ObservedCustom(parent, child, field, used)
	default:
		o.ObservedMisc(parent, child, field, used)
	}
}
