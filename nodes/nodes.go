// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nodes provides a set of standard X3D node types built on
// [node.Base]. Each type has a static field table built once at package
// initialization. Use [New] to create a node by its X3D name.
package nodes

import (
	"fmt"
	"slices"
	"sort"

	"cogentcore.org/x3d/node"
)

var registry = map[string]func() node.Node{}

func register(name string, fun func() node.Node) {
	registry[name] = fun
}

// New returns a new node of the type with the given X3D name.
func New(name string) (node.Node, error) {
	fun, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("nodes.New: unknown node type %q", name)
	}
	return fun(), nil
}

// Names returns the X3D names of all of the node types known to [New], sorted.
func Names() []string {
	nms := make([]string, 0, len(registry))
	for nm := range registry {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	return nms
}

// FieldSpec declares a field of a node type whose fields are only known
// at runtime, such as a Script or a prototype instance.
type FieldSpec struct {
	Name    string
	Access  node.Access
	Type    node.FieldType
	Default *node.FieldData
}

func addSpecs(ft *node.FieldTable, specs []FieldSpec) error {
	for _, s := range specs {
		if ft.Index(s.Name) != node.NotFound {
			return fmt.Errorf("field %q is already defined", s.Name)
		}
		if s.Type == node.UnknownField {
			return fmt.Errorf("field %q has no type", s.Name)
		}
		ft.Add(s.Name, s.Access, s.Type, s.Default)
	}
	return nil
}

func addMetadata(ft *node.FieldTable) {
	ft.Add("metadata", node.InputOutput, node.SFNode, nil)
}

func addBounds(ft *node.FieldTable) {
	ft.Add("bboxCenter", node.InitializeOnly, node.SFVec3f, node.NewFloats(0, 0, 0)).Validate = finite
	ft.Add("bboxSize", node.InitializeOnly, node.SFVec3f, node.NewFloats(-1, -1, -1)).Validate = finite
}

// loadable implements [node.External] for node types with a "url" field.
type loadable struct {
	base     *node.Base
	urlIndex int
	state    node.LoadState
}

func (l *loadable) initLoadable(b *node.Base) {
	l.base = b
	l.urlIndex = b.FieldIndex("url")
}

func (l *loadable) URLs() []string {
	return slices.Clone(l.base.Strings(l.urlIndex))
}

func (l *loadable) LoadState() node.LoadState {
	return l.state
}

func (l *loadable) SetLoadState(ls node.LoadState) {
	l.state = ls
}

// urlUpdated resets the load state when the url changes.
func (l *loadable) urlUpdated(index int) {
	if index == l.urlIndex {
		l.state = node.NotLoaded
	}
}
