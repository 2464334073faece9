// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides [Scene], the naming space of one X3D file:
// its root node, DEF names, IMPORT and EXPORT tables, ROUTE declarations
// and EXTERNPROTO declarations.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"

	"cogentcore.org/x3d/node"
	"cogentcore.org/x3d/proxy"
)

// ErrDuplicateName is returned when a name is defined twice in one scene.
var ErrDuplicateName = errors.New("duplicate name")

// Route is a ROUTE declaration by node and field names.
type Route struct {
	FromNode, FromField string
	ToNode, ToField     string
}

func (r Route) String() string {
	return fmt.Sprintf("ROUTE %s.%s TO %s.%s", r.FromNode, r.FromField, r.ToNode, r.ToField)
}

// ExternProto is an EXTERNPROTO declaration, whose body is loaded
// from one of its URLs outside of the event model.
type ExternProto struct {

	// Name is the name of the prototype.
	Name string

	// URLs are the candidate locations of the body.
	URLs []string

	// State is the loading state of the body.
	State node.LoadState

	// Body is the loaded body, or nil.
	Body *Scene
}

// Scene is the naming space of one X3D file.
type Scene struct {

	// Version is the X3D or VRML version the scene is written in.
	Version *semver.Version

	// Root is the root grouping node of the scene.
	Root node.Node

	defs    map[string]node.Node
	exports map[string]node.Node
	imports []*proxy.Import
	routes  []Route
	protos  []*ExternProto
}

// New returns a new empty scene of the given version, such as "3.3".
func New(version string) (*Scene, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("scene.New: version %q: %w", version, err)
	}
	return &Scene{Version: v, defs: map[string]node.Node{}, exports: map[string]node.Node{}}, nil
}

// AddDEF gives the node the DEF name and marks it as DEF'd.
// A name that is already used is an error.
func (s *Scene) AddDEF(name string, n node.Node) error {
	if _, has := s.defs[name]; has {
		return fmt.Errorf("scene.Scene.AddDEF: %q: %w", name, ErrDuplicateName)
	}
	n.SetName(name)
	n.SetDEF()
	s.defs[name] = n
	return nil
}

// DEF returns the node with the given DEF name, or nil.
func (s *Scene) DEF(name string) node.Node {
	return s.defs[name]
}

// Node returns the node with the given name as used by ROUTE statements:
// a DEF'd node, or else an imported node. It returns nil if there is none.
func (s *Scene) Node(name string) node.Node {
	if n, ok := s.defs[name]; ok {
		return n
	}
	if p := s.Import(name); p != nil {
		return p
	}
	return nil
}

// Export makes the node available under the given name to scenes
// that include this one through an Inline.
func (s *Scene) Export(name string, n node.Node) {
	s.exports[name] = n
}

// Exported returns the node exported under the given name, or nil.
func (s *Scene) Exported(name string) node.Node {
	return s.exports[name]
}

// AddImport adds an IMPORT statement. The import name must not collide
// with another import or a DEF name.
func (s *Scene) AddImport(p *proxy.Import) error {
	if _, has := s.defs[p.ImportName]; has || s.Import(p.ImportName) != nil {
		return fmt.Errorf("scene.Scene.AddImport: %q: %w", p.ImportName, ErrDuplicateName)
	}
	s.imports = append(s.imports, p)
	return nil
}

// Import returns the import with the given import name, or nil.
func (s *Scene) Import(name string) *proxy.Import {
	for _, p := range s.imports {
		if p.ImportName == name {
			return p
		}
	}
	return nil
}

// Imports returns the imports in the order they were added.
func (s *Scene) Imports() []*proxy.Import {
	return slices.Clone(s.imports)
}

// BindImports binds every import from the Inline with the given DEF name
// to the nodes exported by its loaded content. It returns the names of
// the imports whose export the content does not have; those stay unbound.
func (s *Scene) BindImports(inlineDEF string, content *Scene) []string {
	var missing []string
	for _, p := range s.imports {
		if p.InlineDEF != inlineDEF {
			continue
		}
		n := content.Exported(p.ExportName)
		if n == nil {
			p.SetRealNode(nil)
			missing = append(missing, p.ImportName)
			continue
		}
		p.SetRealNode(n)
	}
	return missing
}

// UnbindImports unbinds every import from the Inline with the given DEF
// name, as when its content is unloaded.
func (s *Scene) UnbindImports(inlineDEF string) {
	for _, p := range s.imports {
		if p.InlineDEF == inlineDEF {
			p.SetRealNode(nil)
		}
	}
}

// AddRoute adds a ROUTE declaration between named nodes, which must
// be known by [Scene.Node].
func (s *Scene) AddRoute(fromNode, fromField, toNode, toField string) error {
	for _, nm := range []string{fromNode, toNode} {
		if s.Node(nm) == nil {
			return fmt.Errorf("scene.Scene.AddRoute: unknown node %q", nm)
		}
	}
	s.routes = append(s.routes, Route{FromNode: fromNode, FromField: fromField, ToNode: toNode, ToField: toField})
	return nil
}

// Routes returns the ROUTE declarations in the order they were added.
func (s *Scene) Routes() []Route {
	return slices.Clone(s.routes)
}

// AddExternProto adds an EXTERNPROTO declaration.
func (s *Scene) AddExternProto(p *ExternProto) error {
	if slices.ContainsFunc(s.protos, func(o *ExternProto) bool { return o.Name == p.Name }) {
		return fmt.Errorf("scene.Scene.AddExternProto: %q: %w", p.Name, ErrDuplicateName)
	}
	s.protos = append(s.protos, p)
	return nil
}

// ExternProtos returns the EXTERNPROTO declarations.
func (s *Scene) ExternProtos() []*ExternProto {
	return slices.Clone(s.protos)
}
