// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import "cogentcore.org/x3d/node"

var shapeTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Shape", node.ShapeNodeType)
	addMetadata(ft)
	ft.Add("appearance", node.InputOutput, node.SFNode, nil)
	ft.Add("geometry", node.InputOutput, node.SFNode, nil)
	addBounds(ft)
	return ft
}()

var appearanceTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Appearance", node.AppearanceNodeType)
	addMetadata(ft)
	ft.Add("material", node.InputOutput, node.SFNode, nil)
	ft.Add("texture", node.InputOutput, node.SFNode, nil)
	ft.Add("textureTransform", node.InputOutput, node.SFNode, nil)
	return ft
}()

var materialTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Material", node.MaterialNodeType)
	addMetadata(ft)
	ft.Add("ambientIntensity", node.InputOutput, node.SFFloat, node.NewFloat(0.2)).Validate = unitRange
	ft.Add("diffuseColor", node.InputOutput, node.SFColor, node.NewFloats(0.8, 0.8, 0.8)).Validate = unitRange
	ft.Add("emissiveColor", node.InputOutput, node.SFColor, node.NewFloats(0, 0, 0)).Validate = unitRange
	ft.Add("shininess", node.InputOutput, node.SFFloat, node.NewFloat(0.2)).Validate = unitRange
	ft.Add("specularColor", node.InputOutput, node.SFColor, node.NewFloats(0, 0, 0)).Validate = unitRange
	ft.Add("transparency", node.InputOutput, node.SFFloat, node.NewFloat(0)).Validate = unitRange
	return ft
}()

var imageTextureTable = func() *node.FieldTable {
	ft := node.NewFieldTable("ImageTexture", node.TextureNodeType, node.ExternalNodeType)
	addMetadata(ft)
	ft.Add("url", node.InputOutput, node.MFString, nil)
	ft.Add("repeatS", node.InitializeOnly, node.SFBool, node.NewBool(true))
	ft.Add("repeatT", node.InitializeOnly, node.SFBool, node.NewBool(true))
	return ft
}()

var textureTransformTable = func() *node.FieldTable {
	ft := node.NewFieldTable("TextureTransform", node.TextureTransformNodeType)
	addMetadata(ft)
	ft.Add("center", node.InputOutput, node.SFVec2f, node.NewFloats(0, 0)).Validate = finite
	ft.Add("rotation", node.InputOutput, node.SFFloat, node.NewFloat(0)).Validate = finite
	ft.Add("scale", node.InputOutput, node.SFVec2f, node.NewFloats(1, 1)).Validate = finite
	ft.Add("translation", node.InputOutput, node.SFVec2f, node.NewFloats(0, 0)).Validate = finite
	return ft
}()

var boxTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Box", node.GeometryNodeType)
	addMetadata(ft)
	ft.Add("size", node.InitializeOnly, node.SFVec3f, node.NewFloats(2, 2, 2)).Validate = positive
	ft.Add("solid", node.InitializeOnly, node.SFBool, node.NewBool(true))
	return ft
}()

var sphereTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Sphere", node.GeometryNodeType)
	addMetadata(ft)
	ft.Add("radius", node.InitializeOnly, node.SFFloat, node.NewFloat(1)).Validate = positive
	ft.Add("solid", node.InitializeOnly, node.SFBool, node.NewBool(true))
	return ft
}()

func init() {
	register("Shape", func() node.Node { return NewShape() })
	register("Appearance", func() node.Node { return NewAppearance() })
	register("Material", func() node.Node { return NewMaterial() })
	register("ImageTexture", func() node.Node { return NewImageTexture() })
	register("TextureTransform", func() node.Node { return NewTextureTransform() })
	register("Box", func() node.Node { return NewBox() })
	register("Sphere", func() node.Node { return NewSphere() })
}

// Shape combines an appearance with a geometry.
type Shape struct {
	node.Base
}

func NewShape() *Shape {
	s := &Shape{}
	s.Init(s, shapeTable)
	return s
}

type Appearance struct {
	node.Base
}

func NewAppearance() *Appearance {
	a := &Appearance{}
	a.Init(a, appearanceTable)
	return a
}

type Material struct {
	node.Base
}

func NewMaterial() *Material {
	m := &Material{}
	m.Init(m, materialTable)
	return m
}

// ImageTexture is a texture loaded from an image URL.
type ImageTexture struct {
	node.Base
	loadable
}

func NewImageTexture() *ImageTexture {
	t := &ImageTexture{}
	t.Init(t, imageTextureTable)
	t.initLoadable(&t.Base)
	return t
}

func (t *ImageTexture) FieldUpdated(index int) error {
	t.urlUpdated(index)
	return nil
}

type TextureTransform struct {
	node.Base
}

func NewTextureTransform() *TextureTransform {
	t := &TextureTransform{}
	t.Init(t, textureTransformTable)
	return t
}

type Box struct {
	node.Base
}

func NewBox() *Box {
	b := &Box{}
	b.Init(b, boxTable)
	return b
}

type Sphere struct {
	node.Base
}

func NewSphere() *Sphere {
	s := &Sphere{}
	s.Init(s, sphereTable)
	return s
}
