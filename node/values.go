// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

// Typed accessors for node implementations. They return the zero value
// for an invalid index or a field of another type. Slice results alias
// node storage and must not be modified.

func (b *Base) Bool(index int) bool {
	if v := b.Value(index); v != nil {
		return v.Bool
	}
	return false
}

func (b *Base) Int(index int) int32 {
	if v := b.Value(index); v != nil {
		return v.Int
	}
	return 0
}

func (b *Base) Float(index int) float32 {
	if v := b.Value(index); v != nil {
		return v.Float
	}
	return 0
}

func (b *Base) Double(index int) float64 {
	if v := b.Value(index); v != nil {
		return v.Double
	}
	return 0
}

func (b *Base) Floats(index int) []float32 {
	if v := b.Value(index); v != nil {
		return v.Floats[:v.Count]
	}
	return nil
}

func (b *Base) Strings(index int) []string {
	if v := b.Value(index); v != nil {
		return v.Strings[:v.Count]
	}
	return nil
}

// Nodes returns the children held by an SFNode or MFNode field.
// The result is a new slice.
func (b *Base) Nodes(index int) []Node {
	if v := b.Value(index); v != nil {
		return v.NodeList()
	}
	return nil
}
