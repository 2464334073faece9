// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import "cogentcore.org/x3d/node"

var directionalLightTable = func() *node.FieldTable {
	ft := node.NewFieldTable("DirectionalLight", node.LightNodeType)
	addMetadata(ft)
	ft.Add("ambientIntensity", node.InputOutput, node.SFFloat, node.NewFloat(0)).Validate = unitRange
	ft.Add("color", node.InputOutput, node.SFColor, node.NewFloats(1, 1, 1)).Validate = unitRange
	ft.Add("direction", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, -1)).Validate = finite
	ft.Add("global", node.InputOutput, node.SFBool, node.NewBool(false))
	ft.Add("intensity", node.InputOutput, node.SFFloat, node.NewFloat(1)).Validate = unitRange
	ft.Add("on", node.InputOutput, node.SFBool, node.NewBool(true))
	return ft
}()

func init() {
	register("DirectionalLight", func() node.Node { return NewDirectionalLight() })
}

type DirectionalLight struct {
	node.Base
}

func NewDirectionalLight() *DirectionalLight {
	l := &DirectionalLight{}
	l.Init(l, directionalLightTable)
	return l
}
