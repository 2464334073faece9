// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import (
	"fmt"

	"cogentcore.org/x3d/node"
)

func init() {
	register("Script", func() node.Node {
		s, _ := NewScript()
		return s
	})
}

// Script is a node whose behavior is implemented by a scripting engine.
// Besides its standard fields it has the fields declared in its body,
// so every Script has its own field table.
type Script struct {
	node.Base
	loadable
}

// NewScript returns a new Script with the given additional fields.
func NewScript(fields ...FieldSpec) (*Script, error) {
	ft := node.NewFieldTable("Script", node.ScriptNodeType, node.ExternalNodeType)
	addMetadata(ft)
	ft.Add("url", node.InputOutput, node.MFString, nil)
	ft.Add("directOutput", node.InitializeOnly, node.SFBool, node.NewBool(false))
	ft.Add("mustEvaluate", node.InitializeOnly, node.SFBool, node.NewBool(false))
	if err := addSpecs(ft, fields); err != nil {
		return nil, fmt.Errorf("nodes.NewScript: %w", err)
	}
	s := &Script{}
	s.Init(s, ft)
	s.initLoadable(&s.Base)
	return s, nil
}

func (s *Script) FieldUpdated(index int) error {
	s.urlUpdated(index)
	return nil
}

// ProtoInstance is an instance of a PROTO or EXTERNPROTO declaration,
// exposing the interface fields of the declaration.
type ProtoInstance struct {
	node.Base
}

// NewProtoInstance returns a new instance of the named prototype
// with the given interface fields.
func NewProtoInstance(protoName string, fields ...FieldSpec) (*ProtoInstance, error) {
	ft := node.NewFieldTable(protoName, node.ProtoInstanceNodeType)
	addMetadata(ft)
	if err := addSpecs(ft, fields); err != nil {
		return nil, fmt.Errorf("nodes.NewProtoInstance: %s: %w", protoName, err)
	}
	p := &ProtoInstance{}
	p.Init(p, ft)
	return p, nil
}
