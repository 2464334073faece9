// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import (
	"slices"

	"cogentcore.org/x3d/node"
)

func addGroupingFields(ft *node.FieldTable) {
	addMetadata(ft)
	ft.Add("children", node.InputOutput, node.MFNode, nil)
	ft.Add("addChildren", node.InputOnly, node.MFNode, nil)
	ft.Add("removeChildren", node.InputOnly, node.MFNode, nil)
	addBounds(ft)
}

var groupTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Group", node.GroupingNodeType)
	addGroupingFields(ft)
	return ft
}()

var transformTable = func() *node.FieldTable {
	ft := groupTable.Extend("Transform", node.GroupingNodeType)
	ft.Add("center", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, 0)).Validate = finite
	ft.Add("rotation", node.InputOutput, node.SFRotation, node.NewFloats(0, 0, 1, 0)).Validate = rotation
	ft.Add("scale", node.InputOutput, node.SFVec3f, node.NewFloats(1, 1, 1)).Validate = finite
	ft.Add("scaleOrientation", node.InputOutput, node.SFRotation, node.NewFloats(0, 0, 1, 0)).Validate = rotation
	ft.Add("translation", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, 0)).Validate = finite
	return ft
}()

var switchTable = func() *node.FieldTable {
	ft := groupTable.Extend("Switch", node.GroupingNodeType)
	ft.Add("whichChoice", node.InputOutput, node.SFInt32, node.NewInt(-1)).Validate = atLeastMinusOne
	return ft
}()

func init() {
	register("Group", func() node.Node { return NewGroup() })
	register("Transform", func() node.Node { return NewTransform() })
	register("Switch", func() node.Node { return NewSwitch() })
}

// Grouping is the common implementation of grouping nodes, which hold
// their children in the "children" field and support the addChildren
// and removeChildren events.
type Grouping struct {
	node.Base
	childrenIndex, addIndex, removeIndex int
}

func (g *Grouping) initGrouping(this node.Node, ft *node.FieldTable) {
	g.Init(this, ft)
	g.childrenIndex = ft.Index("children")
	g.addIndex = ft.Index("addChildren")
	g.removeIndex = ft.Index("removeChildren")
}

// Children returns the current children.
func (g *Grouping) Children() []node.Node {
	return g.Nodes(g.childrenIndex)
}

// AddChild appends a child, as the addChildren event does.
func (g *Grouping) AddChild(kids ...node.Node) error {
	return g.SetValue(g.addIndex, node.NewNodes(kids...))
}

func (g *Grouping) FieldUpdated(index int) error {
	switch index {
	case g.addIndex:
		kids := g.Children()
		for _, k := range g.Nodes(index) {
			if k != nil && !slices.Contains(kids, k) {
				kids = append(kids, k)
			}
		}
		return g.SetValue(g.childrenIndex, node.NewNodes(kids...))
	case g.removeIndex:
		rm := g.Nodes(index)
		kids := slices.DeleteFunc(g.Children(), func(k node.Node) bool {
			return slices.Contains(rm, k)
		})
		return g.SetValue(g.childrenIndex, node.NewNodes(kids...))
	}
	return nil
}

// Group is the basic grouping node.
type Group struct {
	Grouping
}

func NewGroup() *Group {
	g := &Group{}
	g.initGrouping(g, groupTable)
	return g
}

// Transform is a grouping node that defines a coordinate system for its children.
type Transform struct {
	Grouping
}

func NewTransform() *Transform {
	t := &Transform{}
	t.initGrouping(t, transformTable)
	return t
}

// Translation returns the current translation.
func (t *Transform) Translation() [3]float32 {
	var v [3]float32
	copy(v[:], t.Floats(t.FieldIndex("translation")))
	return v
}

// Switch is a grouping node that shows at most one of its children.
type Switch struct {
	Grouping
}

func NewSwitch() *Switch {
	s := &Switch{}
	s.initGrouping(s, switchTable)
	return s
}

// Choice returns the selected child, or nil.
func (s *Switch) Choice() node.Node {
	c := int(s.Int(s.FieldIndex("whichChoice")))
	kids := s.Children()
	if c < 0 || c >= len(kids) {
		return nil
	}
	return kids[c]
}
