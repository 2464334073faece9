// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"slices"
	"strings"
)

// NotFound is the index returned for a field name that a node does not have.
const NotFound = -1

// FieldTable is the static description of the fields of one node type:
// an ordered list of declarations with a map from field name to index.
// Indexes are dense (0..N-1) and never renumbered once assigned, so a
// table is built once, typically at package initialization, and shared
// by every instance of the type.
type FieldTable struct {

	// NodeName is the X3D name of the node type, such as "Transform".
	NodeName string

	// Primary is the primary category of the node type.
	Primary Types

	// Secondary are the additional categories of the node type.
	Secondary []Types

	decls      []*FieldDeclaration
	indexes    map[string]int
	nodeFields []int
}

// NewFieldTable returns a new empty table for the given node type.
func NewFieldTable(nodeName string, primary Types, secondary ...Types) *FieldTable {
	return &FieldTable{NodeName: nodeName, Primary: primary, Secondary: secondary, indexes: map[string]int{}}
}

// Extend returns a new table for another node type that starts with
// all of the fields of this table, at the same indexes.
func (ft *FieldTable) Extend(nodeName string, primary Types, secondary ...Types) *FieldTable {
	nt := NewFieldTable(nodeName, primary, secondary...)
	for _, d := range ft.decls {
		c := *d
		nt.add(&c)
	}
	return nt
}

// Add adds a new field with the given declaration at the next index,
// and returns its declaration so that a validator can be attached.
// It panics if a field with the same name already exists, which is
// a programming error in the node type definition.
func (ft *FieldTable) Add(name string, access Access, typ FieldType, def *FieldData) *FieldDeclaration {
	if _, has := ft.indexes[name]; has {
		panic("node.FieldTable.Add: duplicate field " + ft.NodeName + "." + name)
	}
	d := &FieldDeclaration{Name: name, Access: access, Type: typ, Default: def}
	ft.add(d)
	return d
}

func (ft *FieldTable) add(d *FieldDeclaration) {
	if ft.indexes == nil {
		ft.indexes = map[string]int{}
	}
	d.Index = len(ft.decls)
	ft.indexes[d.Name] = d.Index
	ft.decls = append(ft.decls, d)
	if d.Type.IsNode() {
		ft.nodeFields = append(ft.nodeFields, d.Index)
	}
}

// Len returns the number of fields.
func (ft *FieldTable) Len() int {
	if ft == nil {
		return 0
	}
	return len(ft.decls)
}

// Index returns the index of the field with the given name, or [NotFound].
// The implicit event names of inputOutput fields, "set_<name>" and
// "<name>_changed", resolve to the field itself.
func (ft *FieldTable) Index(name string) int {
	if ft == nil {
		return NotFound
	}
	if idx, ok := ft.indexes[name]; ok {
		return idx
	}
	base, ok := strings.CutPrefix(name, "set_")
	if !ok {
		base, ok = strings.CutSuffix(name, "_changed")
	}
	if !ok {
		return NotFound
	}
	if idx, ok := ft.indexes[base]; ok && ft.decls[idx].Access == InputOutput {
		return idx
	}
	return NotFound
}

// Declaration returns the declaration at the given index, or nil.
func (ft *FieldTable) Declaration(idx int) *FieldDeclaration {
	if ft == nil || idx < 0 || idx >= len(ft.decls) {
		return nil
	}
	return ft.decls[idx]
}

// Declarations returns the declarations in index order.
// The result must not be modified.
func (ft *FieldTable) Declarations() []*FieldDeclaration {
	return ft.decls
}

// NodeFieldIndices returns the indexes of all SFNode and MFNode fields.
// The result must not be modified.
func (ft *FieldTable) NodeFieldIndices() []int {
	if ft == nil {
		return nil
	}
	return ft.nodeFields
}

// HasType returns whether t is the primary or a secondary type of the table.
func (ft *FieldTable) HasType(t Types) bool {
	return ft.Primary == t || slices.Contains(ft.Secondary, t)
}
