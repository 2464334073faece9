// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"fmt"
	"strings"
)

// Access is the access category of a field.
type Access int32

const (
	// InitializeOnly fields (VRML "field") may only be written
	// before the node is set up.
	InitializeOnly Access = iota

	// InputOutput fields (VRML "exposedField") can be read, written
	// and routed in both directions.
	InputOutput

	// InputOnly fields (VRML "eventIn") receive events.
	InputOnly

	// OutputOnly fields (VRML "eventOut") send events.
	OutputOnly

	AccessN
)

var accessNames = [...]string{"initializeOnly", "inputOutput", "inputOnly", "outputOnly"}

func (a Access) String() string {
	if a < 0 || a >= AccessN {
		return "invalid"
	}
	return accessNames[a]
}

// CanRead returns whether the field can be the source of a ROUTE.
func (a Access) CanRead() bool {
	return a == InputOutput || a == OutputOnly
}

// CanWrite returns whether the field can be the destination of a ROUTE.
func (a Access) CanWrite() bool {
	return a == InputOutput || a == InputOnly
}

// IsEvent returns whether the field is a pure event (eventIn or eventOut).
func (a Access) IsEvent() bool {
	return a == InputOnly || a == OutputOnly
}

// FieldType is the declared X3D type of a field.
type FieldType int32

const (
	// UnknownField is the type of fields whose declaration is not yet
	// known, such as those requested from an unbound import proxy.
	UnknownField FieldType = iota
	SFBool
	MFBool
	SFInt32
	MFInt32
	// SFLong and MFLong are 64 bit integer fields used by extension nodes.
	SFLong
	MFLong
	SFFloat
	MFFloat
	SFDouble
	MFDouble
	SFTime
	MFTime
	SFString
	MFString
	SFVec2f
	MFVec2f
	SFVec3f
	MFVec3f
	SFColor
	MFColor
	SFRotation
	MFRotation
	SFNode
	MFNode

	FieldTypeN
)

var fieldTypeNames = [...]string{"Unknown", "SFBool", "MFBool", "SFInt32", "MFInt32", "SFLong", "MFLong",
	"SFFloat", "MFFloat", "SFDouble", "MFDouble", "SFTime", "MFTime", "SFString", "MFString",
	"SFVec2f", "MFVec2f", "SFVec3f", "MFVec3f", "SFColor", "MFColor", "SFRotation", "MFRotation",
	"SFNode", "MFNode"}

var fieldDataTypes = [...]DataType{NoData, BooleanData, BooleanArrayData, IntData, IntArrayData, LongData, LongArrayData,
	FloatData, FloatArrayData, DoubleData, DoubleArrayData, DoubleData, DoubleArrayData, StringData, StringArrayData,
	FloatArrayData, FloatArrayData, FloatArrayData, FloatArrayData, FloatArrayData, FloatArrayData, FloatArrayData, FloatArrayData,
	NodeData, NodeArrayData}

func (ft FieldType) String() string {
	if ft < 0 || ft >= FieldTypeN {
		return "invalid"
	}
	return fieldTypeNames[ft]
}

// ParseFieldType returns the field type with the given X3D name, such as "SFVec3f".
func ParseFieldType(s string) (FieldType, error) {
	for i, nm := range fieldTypeNames {
		if i > 0 && nm == s {
			return FieldType(i), nil
		}
	}
	return UnknownField, fmt.Errorf("node.ParseFieldType: unknown field type %q", s)
}

// DataType returns the [FieldData] type used to carry values of this field type.
func (ft FieldType) DataType() DataType {
	if ft < 0 || ft >= FieldTypeN {
		return NoData
	}
	return fieldDataTypes[ft]
}

// TupleSize returns the number of scalars in one element of the type:
// 2 for vec2f, 3 for vec3f and color, 4 for rotation and 1 otherwise.
func (ft FieldType) TupleSize() int {
	switch ft {
	case SFVec2f, MFVec2f:
		return 2
	case SFVec3f, MFVec3f, SFColor, MFColor:
		return 3
	case SFRotation, MFRotation:
		return 4
	}
	return 1
}

// IsNode returns whether the type holds node values.
func (ft FieldType) IsNode() bool {
	return ft == SFNode || ft == MFNode
}

// IsMulti returns whether the type is an MF type.
func (ft FieldType) IsMulti() bool {
	return ft != UnknownField && strings.HasPrefix(ft.String(), "MF")
}

// FieldDeclaration describes one field of a node type.
type FieldDeclaration struct {

	// Name is the field name.
	Name string

	// Index is the stable index of the field within its node type.
	Index int

	// Access is the access category of the field.
	Access Access

	// Type is the declared field type.
	Type FieldType

	// Default is the initial value of the field, or nil for the zero value.
	Default *FieldData

	// Validate, if non-nil, checks a value of the right shape
	// before it is written, for range checks.
	Validate func(v *FieldData) error
}

func (fd *FieldDeclaration) String() string {
	return fmt.Sprintf("%s %s %s", fd.Access, fd.Type, fd.Name)
}

// Check returns an error wrapping [ErrValueInvalid] if v does not have
// the shape of this field's type or fails its validator.
func (fd *FieldDeclaration) Check(v *FieldData) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrValueInvalid)
	}
	want := fd.Type.DataType()
	if v.Type != want {
		return fmt.Errorf("%w: got %v for %v", ErrValueInvalid, v.Type, fd.Type)
	}
	if v.Type.IsArray() {
		if v.Count < 0 || v.Count > v.Len() {
			return fmt.Errorf("%w: count %d with %d elements", ErrValueInvalid, v.Count, v.Len())
		}
		ts := fd.Type.TupleSize()
		switch {
		case ts > 1 && !fd.Type.IsMulti() && v.Count != ts:
			return fmt.Errorf("%w: %v needs %d values, got %d", ErrValueInvalid, fd.Type, ts, v.Count)
		case v.Count%ts != 0:
			return fmt.Errorf("%w: %v count %d is not a multiple of %d", ErrValueInvalid, fd.Type, v.Count, ts)
		}
	}
	if fd.Validate != nil {
		if err := fd.Validate(v); err != nil {
			return fmt.Errorf("%w: %w", ErrValueInvalid, err)
		}
	}
	return nil
}
