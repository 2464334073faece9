// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "slices"

// DataType is the discriminant of a [FieldData].
type DataType int32

const (
	// NoData indicates a cleared value with no meaningful payload.
	NoData DataType = iota
	BooleanData
	IntData
	LongData
	FloatData
	DoubleData
	StringData
	NodeData
	BooleanArrayData
	IntArrayData
	LongArrayData
	FloatArrayData
	DoubleArrayData
	StringArrayData
	NodeArrayData

	DataTypeN
)

var dataTypeNames = [...]string{"none", "boolean", "int", "long", "float", "double", "string", "node",
	"boolean array", "int array", "long array", "float array", "double array", "string array", "node array"}

func (dt DataType) String() string {
	if dt < 0 || dt >= DataTypeN {
		return "invalid"
	}
	return dataTypeNames[dt]
}

// IsArray returns whether the data type is one of the array forms.
func (dt DataType) IsArray() bool {
	return dt >= BooleanArrayData && dt < DataTypeN
}

// FieldData is the value of exactly one field, as a tagged union.
// Only the payload slot selected by Type is meaningful.
//
// For array types, Count is the number of valid elements in the payload,
// measured in scalar units: an SFVec3f is a FloatArrayData with Count 3,
// and an MFVec3f of two vectors has Count 6.
//
// A FieldData returned by [Node.FieldValue] is the node's scratch value:
// it is overwritten by the next read on that node, and its array payloads
// alias node storage, so they must not be modified.
type FieldData struct {
	Type  DataType
	Count int

	Bool   bool
	Int    int32
	Long   int64
	Float  float32
	Double float64
	String string
	Node   Node

	Bools   []bool
	Ints    []int32
	Longs   []int64
	Floats  []float32
	Doubles []float64
	Strings []string
	Nodes   []Node
}

// Clear resets the value to [NoData], dropping all payload references.
func (fd *FieldData) Clear() {
	*fd = FieldData{}
}

// Len returns the length of the array payload selected by Type,
// or 1 for a scalar and 0 for [NoData].
func (fd *FieldData) Len() int {
	switch fd.Type {
	case NoData:
		return 0
	case BooleanArrayData:
		return len(fd.Bools)
	case IntArrayData:
		return len(fd.Ints)
	case LongArrayData:
		return len(fd.Longs)
	case FloatArrayData:
		return len(fd.Floats)
	case DoubleArrayData:
		return len(fd.Doubles)
	case StringArrayData:
		return len(fd.Strings)
	case NodeArrayData:
		return len(fd.Nodes)
	}
	return 1
}

// Clone returns a copy of the value whose array payloads are new
// slices holding the first Count elements. Node references are shared.
func (fd *FieldData) Clone() FieldData {
	c := FieldData{Type: fd.Type, Count: fd.Count}
	switch fd.Type {
	case BooleanData:
		c.Bool = fd.Bool
	case IntData:
		c.Int = fd.Int
	case LongData:
		c.Long = fd.Long
	case FloatData:
		c.Float = fd.Float
	case DoubleData:
		c.Double = fd.Double
	case StringData:
		c.String = fd.String
	case NodeData:
		c.Node = fd.Node
	case BooleanArrayData:
		c.Bools = slices.Clone(fd.Bools[:fd.Count])
	case IntArrayData:
		c.Ints = slices.Clone(fd.Ints[:fd.Count])
	case LongArrayData:
		c.Longs = slices.Clone(fd.Longs[:fd.Count])
	case FloatArrayData:
		c.Floats = slices.Clone(fd.Floats[:fd.Count])
	case DoubleArrayData:
		c.Doubles = slices.Clone(fd.Doubles[:fd.Count])
	case StringArrayData:
		c.Strings = slices.Clone(fd.Strings[:fd.Count])
	case NodeArrayData:
		c.Nodes = slices.Clone(fd.Nodes[:fd.Count])
	}
	return c
}

// NodeList returns the node payload as a list: the single node for
// [NodeData] (empty if nil), the first Count nodes for [NodeArrayData],
// and nil for any other type. The result is always a new slice.
func (fd *FieldData) NodeList() []Node {
	switch fd.Type {
	case NodeData:
		if fd.Node == nil {
			return nil
		}
		return []Node{fd.Node}
	case NodeArrayData:
		return slices.Clone(fd.Nodes[:fd.Count])
	}
	return nil
}

func NewBool(v bool) *FieldData      { return &FieldData{Type: BooleanData, Count: 1, Bool: v} }
func NewInt(v int32) *FieldData      { return &FieldData{Type: IntData, Count: 1, Int: v} }
func NewLong(v int64) *FieldData     { return &FieldData{Type: LongData, Count: 1, Long: v} }
func NewFloat(v float32) *FieldData  { return &FieldData{Type: FloatData, Count: 1, Float: v} }
func NewDouble(v float64) *FieldData { return &FieldData{Type: DoubleData, Count: 1, Double: v} }
func NewString(v string) *FieldData  { return &FieldData{Type: StringData, Count: 1, String: v} }
func NewNode(v Node) *FieldData      { return &FieldData{Type: NodeData, Count: 1, Node: v} }

func NewBools(v ...bool) *FieldData {
	return &FieldData{Type: BooleanArrayData, Count: len(v), Bools: v}
}

func NewInts(v ...int32) *FieldData {
	return &FieldData{Type: IntArrayData, Count: len(v), Ints: v}
}

func NewLongs(v ...int64) *FieldData {
	return &FieldData{Type: LongArrayData, Count: len(v), Longs: v}
}

// NewFloats returns a float array value. It is also the value form
// of the tuple types SFVec2f, SFVec3f, SFColor and SFRotation.
func NewFloats(v ...float32) *FieldData {
	return &FieldData{Type: FloatArrayData, Count: len(v), Floats: v}
}

func NewDoubles(v ...float64) *FieldData {
	return &FieldData{Type: DoubleArrayData, Count: len(v), Doubles: v}
}

func NewStrings(v ...string) *FieldData {
	return &FieldData{Type: StringArrayData, Count: len(v), Strings: v}
}

func NewNodes(v ...Node) *FieldData {
	return &FieldData{Type: NodeArrayData, Count: len(v), Nodes: v}
}
