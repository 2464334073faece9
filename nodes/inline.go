// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import "cogentcore.org/x3d/node"

var inlineTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Inline", node.InlineNodeType, node.ExternalNodeType)
	addMetadata(ft)
	ft.Add("load", node.InputOutput, node.SFBool, node.NewBool(true))
	ft.Add("url", node.InputOutput, node.MFString, nil)
	addBounds(ft)
	return ft
}()

func init() {
	register("Inline", func() node.Node { return NewInline() })
}

// Inline embeds the scene of another file. The content is loaded
// outside of the event model; only its state is kept here.
type Inline struct {
	node.Base
	loadable
}

func NewInline() *Inline {
	in := &Inline{}
	in.Init(in, inlineTable)
	in.initLoadable(&in.Base)
	return in
}

// ShouldLoad returns whether the content is wanted.
func (in *Inline) ShouldLoad() bool {
	return in.Bool(in.FieldIndex("load"))
}

func (in *Inline) FieldUpdated(index int) error {
	in.urlUpdated(index)
	return nil
}
