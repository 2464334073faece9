// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/x3d/node"
	. "cogentcore.org/x3d/nodes"
)

func TestNew(t *testing.T) {
	for _, nm := range Names() {
		n, err := New(nm)
		require.NoError(t, err, nm)
		assert.Equal(t, nm, n.NodeName())
		for i := range n.NumFields() {
			d := n.FieldDeclaration(i)
			require.NotNil(t, d)
			assert.Equal(t, i, n.FieldIndex(d.Name), "%s.%s", nm, d.Name)
			_, err := n.FieldValue(i)
			assert.NoError(t, err)
		}
	}
	_, err := New("Teapot")
	assert.Error(t, err)
}

func TestTransformValidation(t *testing.T) {
	tr := NewTransform()
	rot := tr.FieldIndex("rotation")
	assert.NoError(t, tr.SetValue(rot, node.NewFloats(0, 1, 0, 1.57)))
	assert.ErrorIs(t, tr.SetValue(rot, node.NewFloats(0, 0, 0, 1)), node.ErrValueInvalid)
	nan := float32(math.NaN())
	assert.ErrorIs(t, tr.SetValue(tr.FieldIndex("translation"), node.NewFloats(nan, 0, 0)), node.ErrValueInvalid)

	require.NoError(t, tr.SetValue(tr.FieldIndex("set_translation"), node.NewFloats(1, 2, 3)))
	assert.Equal(t, [3]float32{1, 2, 3}, tr.Translation())

	tr.SetupFinished()
	assert.ErrorIs(t, tr.SetValue(tr.FieldIndex("bboxSize"), node.NewFloats(1, 1, 1)), node.ErrAccessDenied)
}

func TestMaterialRanges(t *testing.T) {
	m := NewMaterial()
	assert.NoError(t, m.SetValue(m.FieldIndex("diffuseColor"), node.NewFloats(1, 0, 0.5)))
	assert.ErrorIs(t, m.SetValue(m.FieldIndex("diffuseColor"), node.NewFloats(1.5, 0, 0)), node.ErrValueInvalid)
	assert.ErrorIs(t, m.SetValue(m.FieldIndex("transparency"), node.NewFloat(-0.1)), node.ErrValueInvalid)
}

func TestGroupingEvents(t *testing.T) {
	g := NewGroup()
	a, b, c := NewShape(), NewShape(), NewShape()
	require.NoError(t, g.AddChild(a, b))
	require.NoError(t, g.AddChild(b, c))
	assert.Equal(t, []node.Node{a, b, c}, g.Children())

	require.NoError(t, g.SetValue(g.FieldIndex("removeChildren"), node.NewNodes(b)))
	assert.Equal(t, []node.Node{a, c}, g.Children())
	assert.True(t, g.HasFieldChanged(g.FieldIndex("children")))
}

func TestSwitch(t *testing.T) {
	s := NewSwitch()
	a, b := NewGroup(), NewGroup()
	require.NoError(t, s.AddChild(a, b))
	assert.Nil(t, s.Choice())
	require.NoError(t, s.SetValue(s.FieldIndex("whichChoice"), node.NewInt(1)))
	assert.Same(t, b, s.Choice())
	assert.ErrorIs(t, s.SetValue(s.FieldIndex("whichChoice"), node.NewInt(-2)), node.ErrValueInvalid)
}

func TestPositionInterpolator(t *testing.T) {
	p := NewPositionInterpolator()
	require.NoError(t, p.SetValue(p.FieldIndex("key"), node.NewFloats(0, 0.5, 1)))
	require.NoError(t, p.SetValue(p.FieldIndex("keyValue"), node.NewFloats(0, 0, 0, 10, 0, 0, 10, 20, 0)))
	frac := p.FieldIndex("set_fraction")
	out := p.FieldIndex("value_changed")

	cases := []struct {
		f    float32
		want []float32
	}{
		{-1, []float32{0, 0, 0}},
		{0.25, []float32{5, 0, 0}},
		{0.75, []float32{10, 10, 0}},
		{2, []float32{10, 20, 0}},
	}
	for _, c := range cases {
		require.NoError(t, p.SetValue(frac, node.NewFloat(c.f)))
		v, err := p.FieldValue(out)
		require.NoError(t, err)
		assert.InDeltaSlice(t, c.want, v.Floats[:v.Count], 1e-6, "fraction %v", c.f)
	}
	assert.ErrorIs(t, p.SetValue(out, node.NewFloats(1, 1, 1)), node.ErrAccessDenied)
}

func TestScalarInterpolator(t *testing.T) {
	s := NewScalarInterpolator()
	require.NoError(t, s.SetValue(s.FieldIndex("key"), node.NewFloats(0, 1)))
	require.NoError(t, s.SetValue(s.FieldIndex("keyValue"), node.NewFloats(2, 4)))
	require.NoError(t, s.SetValue(s.FieldIndex("set_fraction"), node.NewFloat(0.5)))
	assert.Equal(t, float32(3), s.Float(s.FieldIndex("value_changed")))
}

func TestTimeSensor(t *testing.T) {
	ts := NewTimeSensor()
	require.NoError(t, ts.SetValue(ts.FieldIndex("cycleInterval"), node.NewDouble(2)))
	require.NoError(t, ts.SetValue(ts.FieldIndex("startTime"), node.NewDouble(10)))
	frac := ts.FieldIndex("fraction_changed")

	require.NoError(t, ts.Tick(5))
	assert.False(t, ts.IsActive())
	require.NoError(t, ts.Tick(11))
	assert.True(t, ts.IsActive())
	assert.Equal(t, float32(0.5), ts.Float(frac))
	assert.Equal(t, 11.0, ts.Double(ts.FieldIndex("cycleTime")))
	require.NoError(t, ts.Tick(13))
	assert.False(t, ts.IsActive())
	assert.Equal(t, float32(1), ts.Float(frac))

	require.NoError(t, ts.SetValue(ts.FieldIndex("loop"), node.NewBool(true)))
	require.NoError(t, ts.Tick(15))
	assert.True(t, ts.IsActive())
	assert.InDelta(t, 0.5, ts.Float(frac), 1e-6)

	assert.ErrorIs(t, ts.SetValue(ts.FieldIndex("cycleInterval"), node.NewDouble(0)), node.ErrValueInvalid)
}

func TestInlineLoadState(t *testing.T) {
	in := NewInline()
	var ext node.External = in
	assert.Equal(t, node.NotLoaded, ext.LoadState())
	require.NoError(t, in.SetValue(in.FieldIndex("url"), node.NewStrings("a.x3d", "b.x3d")))
	assert.Equal(t, []string{"a.x3d", "b.x3d"}, ext.URLs())
	ext.SetLoadState(node.LoadComplete)
	assert.True(t, in.ShouldLoad())
	require.NoError(t, in.SetValue(in.FieldIndex("url"), node.NewStrings("c.x3d")))
	assert.Equal(t, node.NotLoaded, ext.LoadState())
	assert.True(t, in.HasType(node.ExternalNodeType))
}

func TestScript(t *testing.T) {
	s, err := NewScript(
		FieldSpec{Name: "speed", Access: node.InputOutput, Type: node.SFFloat, Default: node.NewFloat(1)},
		FieldSpec{Name: "target", Access: node.InitializeOnly, Type: node.SFNode},
	)
	require.NoError(t, err)
	assert.Equal(t, node.ScriptNodeType, s.PrimaryType())
	speed := s.FieldIndex("speed")
	assert.NotEqual(t, node.NotFound, speed)
	assert.Equal(t, float32(1), s.Float(speed))
	assert.Contains(t, s.NodeFieldIndices(), s.FieldIndex("target"))

	_, err = NewScript(FieldSpec{Name: "url", Access: node.InputOutput, Type: node.MFString})
	assert.Error(t, err)
	_, err = NewScript(FieldSpec{Name: "x", Access: node.InputOutput})
	assert.Error(t, err)
}

func TestProtoInstance(t *testing.T) {
	p, err := NewProtoInstance("Spinner",
		FieldSpec{Name: "body", Access: node.InputOutput, Type: node.MFNode},
		FieldSpec{Name: "rate", Access: node.InputOnly, Type: node.SFFloat},
	)
	require.NoError(t, err)
	assert.Equal(t, "Spinner", p.NodeName())
	assert.Equal(t, node.ProtoInstanceNodeType, p.PrimaryType())
	assert.Len(t, p.NodeFieldIndices(), 2)
}

func TestViewpointBind(t *testing.T) {
	v := NewViewpoint()
	require.NoError(t, v.SetValue(v.FieldIndex("set_bind"), node.NewBool(true)))
	assert.True(t, v.Bool(v.FieldIndex("isBound")))
	assert.ErrorIs(t, v.SetValue(v.FieldIndex("fieldOfView"), node.NewFloat(4)), node.ErrValueInvalid)
	assert.True(t, v.HasType(node.ViewDependentNodeType))
}
