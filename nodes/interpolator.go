// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import "cogentcore.org/x3d/node"

var positionInterpolatorTable = func() *node.FieldTable {
	ft := node.NewFieldTable("PositionInterpolator", node.InterpolatorNodeType)
	addMetadata(ft)
	ft.Add("set_fraction", node.InputOnly, node.SFFloat, node.NewFloat(0)).Validate = finite
	ft.Add("key", node.InputOutput, node.MFFloat, nil).Validate = finite
	ft.Add("keyValue", node.InputOutput, node.MFVec3f, nil).Validate = finite
	ft.Add("value_changed", node.OutputOnly, node.SFVec3f, node.NewFloats(0, 0, 0))
	return ft
}()

var scalarInterpolatorTable = func() *node.FieldTable {
	ft := node.NewFieldTable("ScalarInterpolator", node.InterpolatorNodeType)
	addMetadata(ft)
	ft.Add("set_fraction", node.InputOnly, node.SFFloat, node.NewFloat(0)).Validate = finite
	ft.Add("key", node.InputOutput, node.MFFloat, nil).Validate = finite
	ft.Add("keyValue", node.InputOutput, node.MFFloat, nil).Validate = finite
	ft.Add("value_changed", node.OutputOnly, node.SFFloat, node.NewFloat(0))
	return ft
}()

func init() {
	register("PositionInterpolator", func() node.Node { return NewPositionInterpolator() })
	register("ScalarInterpolator", func() node.Node { return NewScalarInterpolator() })
}

// interpolator is the common implementation of linear interpolators
// over keyValue tuples of a fixed size.
type interpolator struct {
	node.Base

	// tuple is the number of scalars in one key value.
	tuple int

	fraction, key, keyValue, valueChanged int
}

func (ip *interpolator) initInterpolator(this node.Node, ft *node.FieldTable, tuple int) {
	ip.Init(this, ft)
	ip.tuple = tuple
	ip.fraction = ft.Index("set_fraction")
	ip.key = ft.Index("key")
	ip.keyValue = ft.Index("keyValue")
	ip.valueChanged = ft.Index("value_changed")
}

func (ip *interpolator) FieldUpdated(index int) error {
	if index != ip.fraction {
		return nil
	}
	v := ip.interpolate(ip.Float(index))
	if v == nil {
		return nil
	}
	if ip.tuple == 1 {
		return ip.SetOutput(ip.valueChanged, node.NewFloat(v[0]))
	}
	return ip.SetOutput(ip.valueChanged, node.NewFloats(v...))
}

// interpolate returns the value for fraction f, or nil if there are no
// keys or too few key values.
func (ip *interpolator) interpolate(f float32) []float32 {
	keys := ip.Floats(ip.key)
	vals := ip.Floats(ip.keyValue)
	n := len(keys)
	if n == 0 || len(vals) < n*ip.tuple {
		return nil
	}
	at := func(i int) []float32 {
		return vals[i*ip.tuple : (i+1)*ip.tuple]
	}
	if f <= keys[0] {
		return append([]float32(nil), at(0)...)
	}
	if f >= keys[n-1] {
		return append([]float32(nil), at(n-1)...)
	}
	i := 0
	for i < n-2 && f >= keys[i+1] {
		i++
	}
	t := (f - keys[i]) / (keys[i+1] - keys[i])
	a, b := at(i), at(i+1)
	res := make([]float32, ip.tuple)
	for j := range res {
		res[j] = a[j] + t*(b[j]-a[j])
	}
	return res
}

// PositionInterpolator linearly interpolates between SFVec3f key values.
type PositionInterpolator struct {
	interpolator
}

func NewPositionInterpolator() *PositionInterpolator {
	p := &PositionInterpolator{}
	p.initInterpolator(p, positionInterpolatorTable, 3)
	return p
}

// ScalarInterpolator linearly interpolates between SFFloat key values.
type ScalarInterpolator struct {
	interpolator
}

func NewScalarInterpolator() *ScalarInterpolator {
	s := &ScalarInterpolator{}
	s.initInterpolator(s, scalarInterpolatorTable, 1)
	return s
}
