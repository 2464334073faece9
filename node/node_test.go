// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "cogentcore.org/x3d/node"
)

var testTable = func() *FieldTable {
	ft := NewFieldTable("TestNode", GroupingNodeType, BindableNodeType)
	ft.Add("children", InputOutput, MFNode, nil)
	ft.Add("size", InitializeOnly, SFVec3f, NewFloats(1, 1, 1))
	ft.Add("enabled", InputOutput, SFBool, NewBool(true))
	ft.Add("fraction", InputOnly, SFFloat, nil)
	ft.Add("value", OutputOnly, SFFloat, nil)
	ft.Add("points", InputOutput, MFVec3f, NewFloats())
	ft.Add("proxy", InputOutput, SFNode, nil)
	ft.Add("scale", InputOutput, SFFloat, NewFloat(1)).Validate = func(v *FieldData) error {
		if v.Float <= 0 {
			return assert.AnError
		}
		return nil
	}
	return ft
}()

type testNode struct {
	Base
	updated []int
}

func newTestNode() *testNode {
	n := &testNode{}
	n.Init(n, testTable)
	return n
}

// FieldUpdated doubles every fraction into value, and sets scale to
// the number of point coordinates.
func (n *testNode) FieldUpdated(index int) error {
	n.updated = append(n.updated, index)
	switch index {
	case n.FieldIndex("fraction"):
		return n.SetOutput(n.FieldIndex("value"), NewFloat(2*n.Float(index)))
	case n.FieldIndex("points"):
		return n.SetValue(n.FieldIndex("scale"), NewFloat(float32(n.Value(index).Count)))
	}
	return nil
}

type recorder struct{ changed []int }

func (r *recorder) FieldChanged(index int) { r.changed = append(r.changed, index) }

func TestFieldIndexStability(t *testing.T) {
	n := newTestNode()
	for i, d := range testTable.Declarations() {
		idx := n.FieldIndex(d.Name)
		assert.Equal(t, i, idx)
		assert.Equal(t, idx, n.FieldIndex(d.Name))
		assert.Equal(t, d.Name, n.FieldDeclaration(idx).Name)
	}
	assert.Equal(t, NotFound, n.FieldIndex("nope"))
	assert.Nil(t, n.FieldDeclaration(99))
	assert.Equal(t, []int{0, 6}, n.NodeFieldIndices())
	assert.Equal(t, 8, n.NumFields())
}

func TestImplicitEventNames(t *testing.T) {
	n := newTestNode()
	assert.Equal(t, 2, n.FieldIndex("set_enabled"))
	assert.Equal(t, 2, n.FieldIndex("enabled_changed"))
	assert.Equal(t, NotFound, n.FieldIndex("set_size"), "initializeOnly fields have no events")
}

func TestDefaults(t *testing.T) {
	n := newTestNode()
	v, err := n.FieldValue(1)
	require.NoError(t, err)
	assert.Equal(t, FloatArrayData, v.Type)
	assert.Equal(t, 3, v.Count)
	assert.Equal(t, []float32{1, 1, 1}, v.Floats)

	v, err = n.FieldValue(0)
	require.NoError(t, err)
	assert.Equal(t, NodeArrayData, v.Type)
	assert.Equal(t, 0, v.Count)
}

func TestHasFieldChanged(t *testing.T) {
	n := newTestNode()
	idx := n.FieldIndex("enabled")
	assert.False(t, n.HasFieldChanged(idx))
	require.NoError(t, n.SetValue(idx, NewBool(false)))
	assert.True(t, n.HasFieldChanged(idx))
	assert.False(t, n.HasFieldChanged(idx))
	assert.False(t, n.HasFieldChanged(-1))
}

func TestSetValueErrors(t *testing.T) {
	n := newTestNode()
	assert.ErrorIs(t, n.SetValue(42, NewBool(true)), ErrFieldUnknown)
	_, err := n.FieldValue(-1)
	assert.ErrorIs(t, err, ErrFieldUnknown)

	assert.ErrorIs(t, n.SetValue(2, NewFloat(1)), ErrValueInvalid)
	assert.ErrorIs(t, n.SetValue(2, nil), ErrValueInvalid)
	assert.ErrorIs(t, n.SetValue(1, NewFloats(1, 2)), ErrValueInvalid)
	assert.ErrorIs(t, n.SetValue(5, NewFloats(1, 2, 3, 4)), ErrValueInvalid)
	assert.ErrorIs(t, n.SetValue(7, NewFloat(-1)), ErrValueInvalid)
	bad := NewFloats(1, 2, 3)
	bad.Count = 6
	assert.ErrorIs(t, n.SetValue(5, bad), ErrValueInvalid)

	assert.ErrorIs(t, n.SetValue(4, NewFloat(1)), ErrAccessDenied)

	require.NoError(t, n.SetValue(1, NewFloats(2, 2, 2)))
	n.SetupFinished()
	err = n.SetValue(1, NewFloats(3, 3, 3))
	assert.ErrorIs(t, err, ErrAccessDenied)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "size", fe.Field)
	assert.Equal(t, "TestNode", fe.NodeName)
	assert.NoError(t, n.SetValue(2, NewBool(false)), "inputOutput fields stay writable")
}

func TestValueIsCopied(t *testing.T) {
	n := newTestNode()
	pts := []float32{1, 2, 3, 4, 5, 6}
	require.NoError(t, n.SetValue(5, NewFloats(pts...)))
	pts[0] = 99
	v, err := n.FieldValue(5)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v.Floats[0])
	assert.Equal(t, 6, v.Count)
}

func TestScratchIsReused(t *testing.T) {
	n := newTestNode()
	a, err := n.FieldValue(2)
	require.NoError(t, err)
	b, err := n.FieldValue(7)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, FloatData, a.Type)
}

func TestListenersAndUpdater(t *testing.T) {
	n := newTestNode()
	r := &recorder{}
	n.AddNodeListener(r)
	require.NoError(t, n.SetValue(3, NewFloat(0.25)))
	assert.Equal(t, []int{4, 3}, r.changed)
	assert.Equal(t, []int{3, 4}, n.updated)
	assert.Equal(t, float32(0.5), n.Float(4))

	n.RemoveNodeListener(r)
	require.NoError(t, n.SetValue(2, NewBool(false)))
	assert.Len(t, r.changed, 2)
}

func TestUpdaterError(t *testing.T) {
	n := newTestNode()
	r := &recorder{}
	n.AddNodeListener(r)
	require.NoError(t, n.SetValue(5, NewFloats(1, 2, 3)))
	assert.Equal(t, float32(3), n.Float(7))

	err := n.SetValue(5, NewFloats())
	assert.ErrorIs(t, err, ErrValueInvalid)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "points", fe.Field)
	assert.Equal(t, 0, n.Value(5).Count, "the written value stays stored")
	assert.Equal(t, float32(3), n.Float(7))
	assert.Equal(t, []int{7, 5, 5}, r.changed)
}

func TestSendRoute(t *testing.T) {
	src, dst := newTestNode(), newTestNode()
	require.NoError(t, src.SetValue(3, NewFloat(0.5)))
	require.NoError(t, src.SendRoute(0, 4, dst, 3))
	assert.Equal(t, float32(1), dst.Float(3))
	assert.Equal(t, float32(2), dst.Float(4))
	assert.ErrorIs(t, src.SendRoute(0, 99, dst, 3), ErrFieldUnknown)
	assert.ErrorIs(t, src.SendRoute(0, 2, dst, 3), ErrValueInvalid)
	assert.Error(t, src.SendRoute(0, 2, nil, 3))
}

func TestNodeFields(t *testing.T) {
	parent, a, b := newTestNode(), newTestNode(), newTestNode()
	require.NoError(t, parent.SetValue(0, NewNodes(a, b)))
	require.NoError(t, parent.SetValue(6, NewNode(a)))
	assert.Equal(t, []Node{a, b}, parent.Nodes(0))
	assert.Equal(t, []Node{a}, parent.Nodes(6))
	require.NoError(t, parent.SetValue(6, NewNode(nil)))
	assert.Empty(t, parent.Nodes(6))
}

func TestRefCounts(t *testing.T) {
	n := newTestNode()
	assert.Nil(t, n.LayerIDs())
	n.UpdateRefCount(2, true)
	n.UpdateRefCount(0, true)
	n.UpdateRefCount(0, true)
	assert.Equal(t, []int{0, 2}, n.LayerIDs())
	assert.Equal(t, 2, n.RefCount(0))

	n.UpdateRefCount(0, false)
	assert.Nil(t, n.RemovedLayerIDs())
	n.UpdateRefCount(0, false)
	n.UpdateRefCount(0, false)
	assert.Equal(t, 0, n.RefCount(0))
	assert.Equal(t, []int{0}, n.RemovedLayerIDs())
	assert.Equal(t, []int{2}, n.LayerIDs())

	n.UpdateRefCount(2, false)
	assert.Nil(t, n.LayerIDs())
	assert.Equal(t, []int{0, 2}, n.RemovedLayerIDs())
	n.ClearRemovedLayerIDs()
	assert.Nil(t, n.RemovedLayerIDs())
}

func TestFlags(t *testing.T) {
	n := newTestNode()
	assert.False(t, n.IsDEF())
	n.SetDEF()
	n.SetName("T1")
	assert.True(t, n.IsDEF())
	assert.Equal(t, "DEF T1 TestNode", n.String())
	assert.True(t, n.HasType(BindableNodeType))
	assert.False(t, n.HasType(ShapeNodeType))
}

func TestParse(t *testing.T) {
	ft, err := ParseFieldType("MFRotation")
	require.NoError(t, err)
	assert.Equal(t, MFRotation, ft)
	assert.Equal(t, 4, ft.TupleSize())
	assert.True(t, ft.IsMulti())
	_, err = ParseFieldType("SFWhatever")
	assert.Error(t, err)

	ty, err := ParseTypes("X3DSensorNode")
	require.NoError(t, err)
	assert.Equal(t, SensorNodeType, ty)
	_, err = ParseTypes("X3DNothing")
	assert.Error(t, err)
}
