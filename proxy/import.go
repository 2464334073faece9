// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proxy provides [Import], the stand-in node for an X3D IMPORT
// statement. An Import can be routed to before the Inline content that
// exports the real node has been loaded, and forwards to the real node
// once it is bound.
package proxy

import (
	"fmt"
	"slices"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"cogentcore.org/x3d/node"
	"cogentcore.org/x3d/report"
)

// ImportNodeName is the node name of an unbound [Import].
const ImportNodeName = "IMPORT"

// SuggestionThreshold is the minimum similarity between an unresolved
// field name and a field of the real node for the latter to be suggested.
var SuggestionThreshold = 0.6

// Import is a node that stands in for a node exported from the content
// of an Inline. Field indexes are local to the Import and stay valid
// across rebinds: while unbound, every requested field name gets a new
// local index of unknown type, and when a real node is bound, every
// name requested so far is resolved against it.
type Import struct {

	// ImportName is the name under which the node is imported (the AS name).
	ImportName string

	// InlineDEF is the DEF name of the Inline the node is imported from.
	InlineDEF string

	// ExportName is the name under which the Inline content exports the node.
	ExportName string

	// FieldNames are the field names requested so far, by local index.
	FieldNames []string

	node.RefCounts
	node.Notifier

	real node.Node

	// localToReal maps local indexes to field indexes of the real node.
	localToReal map[int]int

	// realToLocal is the reverse of localToReal. Several local names
	// can resolve to the same real field, such as "set_x" and "x".
	realToLocal map[int][]int

	localIndex map[string]int
	decls      []*node.FieldDeclaration
	scratch    node.FieldData
	reporter   report.Reporter
	name       string
	flags      node.Flags
}

var _ node.Node = (*Import)(nil)

// New returns a new unbound Import.
func New(importName, inlineDEF, exportName string) *Import {
	p := &Import{ImportName: importName, InlineDEF: inlineDEF, ExportName: exportName}
	p.rebuild()
	return p
}

// rebuild rebuilds the name index and unknown declarations from FieldNames.
func (p *Import) rebuild() {
	p.localIndex = make(map[string]int, len(p.FieldNames))
	p.decls = make([]*node.FieldDeclaration, len(p.FieldNames))
	for i, nm := range p.FieldNames {
		p.localIndex[nm] = i
		p.decls[i] = unknownDecl(nm, i)
	}
	p.localToReal = nil
	p.realToLocal = nil
}

func unknownDecl(name string, index int) *node.FieldDeclaration {
	return &node.FieldDeclaration{Name: name, Index: index, Access: node.InputOutput, Type: node.UnknownField}
}

func (p *Import) String() string {
	return fmt.Sprintf("IMPORT %s.%s AS %s", p.InlineDEF, p.ExportName, p.ImportName)
}

// SetErrorReporter sets the reporter for binding warnings.
// A nil reporter restores [report.Default].
func (p *Import) SetErrorReporter(r report.Reporter) {
	p.reporter = r
}

// RealNode returns the bound real node, or nil.
func (p *Import) RealNode() node.Node {
	return p.real
}

// IsBound returns whether a real node is bound.
func (p *Import) IsBound() bool {
	return p.real != nil
}

// SetRealNode binds the Import to the given real node, or unbinds it if
// n is nil. Every field name requested so far is resolved against n;
// a name that n does not have is reported as a warning and stays inert
// until the next bind.
func (p *Import) SetRealNode(n node.Node) {
	if p.real != nil {
		p.real.RemoveNodeListener(p)
	}
	p.real = n
	p.localToReal = nil
	p.realToLocal = nil
	for i, nm := range p.FieldNames {
		p.decls[i] = unknownDecl(nm, i)
	}
	if n == nil {
		return
	}
	n.AddNodeListener(p)
	p.localToReal = make(map[int]int, len(p.FieldNames))
	p.realToLocal = make(map[int][]int, len(p.FieldNames))
	for i, nm := range p.FieldNames {
		if !p.resolve(i, nm) {
			p.warnUnresolved(nm)
		}
	}
}

// resolve maps the local field to the field of the same name of the real node.
func (p *Import) resolve(local int, name string) bool {
	ri := p.real.FieldIndex(name)
	if ri == node.NotFound {
		return false
	}
	p.localToReal[local] = ri
	p.realToLocal[ri] = append(p.realToLocal[ri], local)
	if d := p.real.FieldDeclaration(ri); d != nil {
		c := *d
		c.Name = name
		c.Index = local
		p.decls[local] = &c
	}
	return true
}

func (p *Import) warnUnresolved(name string) {
	msg := fmt.Sprintf("proxy.Import.SetRealNode: %s: field %q not found in %s", p.ImportName, name, p.real.NodeName())
	if s := p.suggest(name); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	report.OrDefault(p.reporter).Warning(msg, node.ErrFieldUnknown)
}

// suggest returns the field name of the real node most similar to name,
// or "" if none reaches [SuggestionThreshold].
func (p *Import) suggest(name string) string {
	lev := metrics.NewLevenshtein()
	best, bestSim := "", SuggestionThreshold
	for i := range p.real.NumFields() {
		d := p.real.FieldDeclaration(i)
		if d == nil {
			continue
		}
		if sim := strutil.Similarity(name, d.Name, lev); sim >= bestSim {
			best, bestSim = d.Name, sim
		}
	}
	return best
}

// realIndex returns the real field index for the local index, if bound and resolved.
func (p *Import) realIndex(local int) (int, bool) {
	if p.real == nil {
		return 0, false
	}
	ri, ok := p.localToReal[local]
	return ri, ok
}

func (p *Import) fieldError(index int, err error) error {
	return &node.FieldError{NodeName: p.NodeName(), Index: index, Err: err}
}

// FieldChanged is called by the real node as a change listener, re-firing
// changes of resolved fields to the listeners of the Import.
func (p *Import) FieldChanged(realIndex int) {
	for _, local := range p.realToLocal[realIndex] {
		p.FireFieldChanged(local)
	}
}

func (p *Import) NodeName() string {
	if p.real != nil {
		return p.real.NodeName()
	}
	return ImportNodeName
}

// Name returns the name set with SetName, or the import name.
func (p *Import) Name() string {
	if p.name != "" {
		return p.name
	}
	return p.ImportName
}

func (p *Import) SetName(name string) {
	p.name = name
}

func (p *Import) PrimaryType() node.Types {
	if p.real != nil {
		return p.real.PrimaryType()
	}
	return node.ImportNodeType
}

func (p *Import) SecondaryTypes() []node.Types {
	if p.real != nil {
		return p.real.SecondaryTypes()
	}
	return nil
}

func (p *Import) HasType(t node.Types) bool {
	if p.real != nil {
		return p.real.HasType(t)
	}
	return t == node.ImportNodeType
}

func (p *Import) NumFields() int {
	return len(p.FieldNames)
}

// FieldIndex returns the local index of the named field. While unbound,
// a new local index is assigned to a name seen for the first time.
// While bound, a new name gets a local index only if the real node
// has such a field.
func (p *Import) FieldIndex(name string) int {
	if idx, ok := p.localIndex[name]; ok {
		return idx
	}
	if p.real != nil && p.real.FieldIndex(name) == node.NotFound {
		return node.NotFound
	}
	idx := len(p.FieldNames)
	p.FieldNames = append(p.FieldNames, name)
	p.localIndex[name] = idx
	p.decls = append(p.decls, unknownDecl(name, idx))
	if p.real != nil {
		p.resolve(idx, name)
	}
	return idx
}

// FieldDeclaration returns the declaration of the local field: the
// declaration of the real field if resolved, and one of unknown type otherwise.
func (p *Import) FieldDeclaration(index int) *node.FieldDeclaration {
	if index < 0 || index >= len(p.decls) {
		return nil
	}
	return p.decls[index]
}

func (p *Import) NodeFieldIndices() []int {
	var idxs []int
	for i, d := range p.decls {
		if d.Type.IsNode() {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// FieldValue returns the value of the real field. For a field that is
// not resolved it returns the cleared scratch value.
func (p *Import) FieldValue(index int) (*node.FieldData, error) {
	if index < 0 || index >= len(p.FieldNames) {
		return nil, p.fieldError(index, node.ErrFieldUnknown)
	}
	if ri, ok := p.realIndex(index); ok {
		return p.real.FieldValue(ri)
	}
	p.scratch.Clear()
	return &p.scratch, nil
}

// SetValue writes the real field. Writes to a field that is not
// resolved are dropped.
func (p *Import) SetValue(index int, value *node.FieldData) error {
	if index < 0 || index >= len(p.FieldNames) {
		return p.fieldError(index, node.ErrFieldUnknown)
	}
	if ri, ok := p.realIndex(index); ok {
		return p.real.SetValue(ri, value)
	}
	return nil
}

func (p *Import) HasFieldChanged(index int) bool {
	if ri, ok := p.realIndex(index); ok {
		return p.real.HasFieldChanged(ri)
	}
	return false
}

func (p *Import) SendRoute(time float64, srcIndex int, dest node.Node, destIndex int) error {
	if ri, ok := p.realIndex(srcIndex); ok {
		return p.real.SendRoute(time, ri, dest, destIndex)
	}
	return nil
}

func (p *Import) SetDEF() {
	p.flags |= node.DEFFlag
}

func (p *Import) IsDEF() bool {
	return p.flags.Has(node.DEFFlag)
}

func (p *Import) SetupFinished() {
	p.flags |= node.SetupFinishedFlag
}

func (p *Import) IsSetupFinished() bool {
	return p.flags.Has(node.SetupFinishedFlag)
}

// Clone returns an unbound copy of the Import with the same names,
// DEF flag and local field indexes. The copy has no listeners or
// references, and resolves its fields again when it is bound.
func (p *Import) Clone() *Import {
	c := &Import{
		ImportName: p.ImportName,
		InlineDEF:  p.InlineDEF,
		ExportName: p.ExportName,
		FieldNames: slices.Clone(p.FieldNames),
		reporter:   p.reporter,
		name:       p.name,
		flags:      p.flags & node.DEFFlag,
	}
	c.rebuild()
	return c
}
