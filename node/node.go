// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node defines the contract that every VRML/X3D scene node satisfies:
// reflection-free field access by small integer index using the tagged
// [FieldData] value carrier, categorical type tags, per-layer reference
// counting and change notification. [Base] provides a table driven
// implementation that concrete node types embed.
package node

import "cogentcore.org/x3d/listener"

// Node is the polymorphic unit of the scene graph.
type Node interface {

	// NodeName returns the X3D name of the node type, such as "Transform".
	NodeName() string

	// Name returns the DEF name of the node, if any.
	Name() string

	// SetName sets the DEF name of the node.
	SetName(name string)

	// PrimaryType returns the primary category of the node.
	PrimaryType() Types

	// SecondaryTypes returns the additional categories of the node.
	// The result must not be modified.
	SecondaryTypes() []Types

	// HasType returns whether t is the primary or a secondary type.
	HasType(t Types) bool

	// NumFields returns the number of fields, which are indexed 0..N-1.
	NumFields() int

	// FieldIndex returns the stable index of the named field,
	// or [NotFound]. It never fails.
	FieldIndex(name string) int

	// FieldDeclaration returns the declaration of the field at the
	// given index, or nil if there is no such field.
	FieldDeclaration(index int) *FieldDeclaration

	// NodeFieldIndices returns the indexes of all SFNode and MFNode
	// fields, for traversal without per-field introspection.
	// The result must not be modified.
	NodeFieldIndices() []int

	// FieldValue returns the current value of the field at the given
	// index in the node's scratch [FieldData], which is overwritten by
	// the next read. It returns a [FieldError] wrapping [ErrFieldUnknown]
	// for an invalid index.
	FieldValue(index int) (*FieldData, error)

	// SetValue writes the field at the given index. It returns a
	// [FieldError] wrapping [ErrFieldUnknown] for an invalid index,
	// [ErrValueInvalid] for a value of the wrong shape or range, and
	// [ErrAccessDenied] for an initializeOnly field after setup has
	// finished or an outputOnly field. The value is copied.
	SetValue(index int, value *FieldData) error

	// HasFieldChanged returns whether the field has been written since
	// the last call, and clears the flag: a second call returns false.
	HasFieldChanged(index int) bool

	// SendRoute forwards the current value of the field srcIndex
	// to the field destIndex of dest.
	SendRoute(time float64, srcIndex int, dest Node, destIndex int) error

	// SetDEF marks the node as DEF'd, so that it may be USE'd elsewhere.
	SetDEF()

	// IsDEF returns whether the node has been marked as DEF'd.
	IsDEF() bool

	// SetupFinished marks the end of the setup phase. After it,
	// initializeOnly fields can no longer be written.
	SetupFinished()

	// IsSetupFinished returns whether [Node.SetupFinished] has been called.
	IsSetupFinished() bool

	// UpdateRefCount adds or removes one reference to the node
	// from the given layer.
	UpdateRefCount(layer int, add bool)

	// RefCount returns the reference count of the node in the given layer.
	RefCount(layer int) int

	// LayerIDs returns the layers currently referencing the node in
	// ascending order, or nil if it is not referenced at all.
	LayerIDs() []int

	// RemovedLayerIDs returns the layers whose last reference has been
	// dropped since the last [Node.ClearRemovedLayerIDs], or nil.
	RemovedLayerIDs() []int

	// ClearRemovedLayerIDs clears the list of removed layers.
	ClearRemovedLayerIDs()

	// AddNodeListener registers a listener for field changes.
	AddNodeListener(l listener.Node)

	// RemoveNodeListener removes a listener added by [Node.AddNodeListener].
	RemoveNodeListener(l listener.Node)
}

// External is implemented by nodes that load content from URLs.
// Loading happens outside the event model thread; only the state
// flag is kept on the node, and it is polled.
type External interface {
	Node

	// URLs returns the candidate URLs of the content.
	URLs() []string

	// LoadState returns the current loading state.
	LoadState() LoadState

	// SetLoadState sets the current loading state.
	SetLoadState(ls LoadState)
}

// SetupFinisher is implemented by node types that need to build derived
// state once their initializeOnly fields are final.
type SetupFinisher interface {
	OnSetupFinished()
}

// FieldUpdater is implemented by node types that react to writes,
// such as turning an inputOnly event into outputs. It is called after
// the value has been stored and before listeners are notified. An error
// is returned from the write that caused the update; the written value
// stays stored.
type FieldUpdater interface {
	FieldUpdated(index int) error
}
