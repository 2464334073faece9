// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "fmt"

// Flags are bit flags for the core state of a node.
type Flags int64

const (
	// DEFFlag indicates that the node has been DEF'd.
	DEFFlag Flags = 1 << iota

	// SetupFinishedFlag indicates that the setup phase is over.
	SetupFinishedFlag
)

// Has returns whether all of the given flags are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Base implements the [Node] interface from a [FieldTable], storing one
// [FieldData] per field. All concrete node types embed it and must call
// [Base.Init] with their table before use.
type Base struct {
	RefCounts
	Notifier

	// This is the node as its true underlying type, which allows
	// Base to call the optional [SetupFinisher] and [FieldUpdater]
	// methods of the concrete type.
	This Node

	table   *FieldTable
	name    string
	flags   Flags
	values  []FieldData
	changed []bool

	// scratch is returned by FieldValue and overwritten by every read.
	scratch FieldData
}

// Init initializes the node for the given table, setting every field to
// its declared default. this is the node as its true underlying type.
func (b *Base) Init(this Node, table *FieldTable) {
	b.This = this
	b.table = table
	n := table.Len()
	b.values = make([]FieldData, n)
	b.changed = make([]bool, n)
	for i, d := range table.decls {
		if d.Default != nil {
			b.values[i] = d.Default.Clone()
		} else {
			b.values[i] = FieldData{Type: d.Type.DataType()}
		}
	}
}

func (b *Base) String() string {
	if b.name != "" {
		return "DEF " + b.name + " " + b.NodeName()
	}
	return b.NodeName()
}

// Table returns the field table of the node.
func (b *Base) Table() *FieldTable {
	return b.table
}

func (b *Base) NodeName() string {
	if b.table == nil {
		return "?"
	}
	return b.table.NodeName
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) SetName(name string) {
	b.name = name
}

func (b *Base) PrimaryType() Types {
	return b.table.Primary
}

func (b *Base) SecondaryTypes() []Types {
	return b.table.Secondary
}

func (b *Base) HasType(t Types) bool {
	return b.table.HasType(t)
}

func (b *Base) NumFields() int {
	return b.table.Len()
}

func (b *Base) FieldIndex(name string) int {
	return b.table.Index(name)
}

func (b *Base) FieldDeclaration(index int) *FieldDeclaration {
	return b.table.Declaration(index)
}

func (b *Base) NodeFieldIndices() []int {
	return b.table.NodeFieldIndices()
}

func (b *Base) fieldError(index int, err error) error {
	fe := &FieldError{NodeName: b.NodeName(), Index: index, Err: err}
	if d := b.table.Declaration(index); d != nil {
		fe.Field = d.Name
	}
	return fe
}

func (b *Base) FieldValue(index int) (*FieldData, error) {
	if index < 0 || index >= len(b.values) {
		return nil, b.fieldError(index, ErrFieldUnknown)
	}
	b.scratch = b.values[index]
	return &b.scratch, nil
}

func (b *Base) SetValue(index int, value *FieldData) error {
	d := b.table.Declaration(index)
	if d == nil {
		return b.fieldError(index, ErrFieldUnknown)
	}
	switch {
	case d.Access == OutputOnly:
		return b.fieldError(index, fmt.Errorf("%w: outputOnly field", ErrAccessDenied))
	case d.Access == InitializeOnly && b.IsSetupFinished():
		return b.fieldError(index, fmt.Errorf("%w: initializeOnly field after setup", ErrAccessDenied))
	}
	return b.store(d, value)
}

// SetOutput writes the field at the given index regardless of its access.
// It is used by node implementations to generate outputOnly events.
func (b *Base) SetOutput(index int, value *FieldData) error {
	d := b.table.Declaration(index)
	if d == nil {
		return b.fieldError(index, ErrFieldUnknown)
	}
	return b.store(d, value)
}

func (b *Base) store(d *FieldDeclaration, value *FieldData) error {
	if err := d.Check(value); err != nil {
		return b.fieldError(d.Index, err)
	}
	b.values[d.Index] = value.Clone()
	b.changed[d.Index] = true
	var err error
	if fu, ok := b.This.(FieldUpdater); ok {
		err = fu.FieldUpdated(d.Index)
	}
	b.FireFieldChanged(d.Index)
	if err != nil {
		return b.fieldError(d.Index, err)
	}
	return nil
}

// Value returns the stored value of the field at the given index,
// or nil. Unlike [Base.FieldValue] it is not a copy; it is meant for
// node implementations and must not be modified.
func (b *Base) Value(index int) *FieldData {
	if index < 0 || index >= len(b.values) {
		return nil
	}
	return &b.values[index]
}

func (b *Base) HasFieldChanged(index int) bool {
	if index < 0 || index >= len(b.changed) {
		return false
	}
	c := b.changed[index]
	b.changed[index] = false
	return c
}

func (b *Base) SendRoute(time float64, srcIndex int, dest Node, destIndex int) error {
	v, err := b.This.FieldValue(srcIndex)
	if err != nil {
		return err
	}
	if dest == nil {
		return fmt.Errorf("%s.SendRoute: nil destination", b.NodeName())
	}
	return dest.SetValue(destIndex, v)
}

func (b *Base) SetDEF() {
	b.flags |= DEFFlag
}

func (b *Base) IsDEF() bool {
	return b.flags.Has(DEFFlag)
}

func (b *Base) SetupFinished() {
	if b.flags.Has(SetupFinishedFlag) {
		return
	}
	b.flags |= SetupFinishedFlag
	if sf, ok := b.This.(SetupFinisher); ok {
		sf.OnSetupFinished()
	}
}

func (b *Base) IsSetupFinished() bool {
	return b.flags.Has(SetupFinishedFlag)
}
