// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import "cogentcore.org/x3d/node"

func addBindableFields(ft *node.FieldTable) {
	addMetadata(ft)
	ft.Add("set_bind", node.InputOnly, node.SFBool, node.NewBool(false))
	ft.Add("bindTime", node.OutputOnly, node.SFTime, node.NewDouble(0))
	ft.Add("isBound", node.OutputOnly, node.SFBool, node.NewBool(false))
}

var viewpointTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Viewpoint", node.BindableNodeType, node.ViewDependentNodeType)
	addBindableFields(ft)
	ft.Add("description", node.InputOutput, node.SFString, nil)
	ft.Add("fieldOfView", node.InputOutput, node.SFFloat, node.NewFloat(0.7854)).Validate = fieldOfView
	ft.Add("jump", node.InputOutput, node.SFBool, node.NewBool(true))
	ft.Add("orientation", node.InputOutput, node.SFRotation, node.NewFloats(0, 0, 1, 0)).Validate = rotation
	ft.Add("position", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, 10)).Validate = finite
	return ft
}()

var backgroundTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Background", node.BindableNodeType)
	addBindableFields(ft)
	ft.Add("groundAngle", node.InputOutput, node.MFFloat, nil).Validate = finite
	ft.Add("groundColor", node.InputOutput, node.MFColor, nil).Validate = unitRange
	ft.Add("skyAngle", node.InputOutput, node.MFFloat, nil).Validate = finite
	ft.Add("skyColor", node.InputOutput, node.MFColor, node.NewFloats(0, 0, 0)).Validate = unitRange
	return ft
}()

func init() {
	register("Viewpoint", func() node.Node { return NewViewpoint() })
	register("Background", func() node.Node { return NewBackground() })
}

// bindable reflects set_bind events into isBound. Keeping the stack
// of bound nodes is up to the browser.
type bindable struct {
	node.Base
}

func (b *bindable) FieldUpdated(index int) error {
	if index != b.FieldIndex("set_bind") {
		return nil
	}
	return b.SetOutput(b.FieldIndex("isBound"), node.NewBool(b.Bool(index)))
}

type Viewpoint struct {
	bindable
}

func NewViewpoint() *Viewpoint {
	v := &Viewpoint{}
	v.Init(v, viewpointTable)
	return v
}

type Background struct {
	bindable
}

func NewBackground() *Background {
	b := &Background{}
	b.Init(b, backgroundTable)
	return b
}
