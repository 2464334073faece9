// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "fmt"

// Types are the categories of scene nodes. Every node has one primary
// type and zero or more secondary types, which are used for fast
// categorical dispatch instead of dynamic type inspection.
type Types int32

const (
	UnknownNodeType Types = iota
	GroupingNodeType
	ShapeNodeType
	AppearanceNodeType
	MaterialNodeType
	TextureNodeType
	TextureTransformNodeType
	GeometryNodeType
	SoundNodeType
	AudioClipNodeType
	InterpolatorNodeType

	// SensorNodeType is any sensor; the more specific sensor
	// categories are usually the primary type.
	SensorNodeType
	PointingSensorNodeType
	DragSensorNodeType
	KeySensorNodeType
	EnvironmentalSensorNodeType
	TimeDependentNodeType

	InlineNodeType
	LightNodeType
	BindableNodeType

	// ViewDependentNodeType nodes need to know the current viewpoint.
	ViewDependentNodeType
	ScriptNodeType
	ProtoInstanceNodeType
	TerrainNodeType

	// ExternalSynchronizedNodeType nodes have state that is kept in
	// sync with something outside of the scene, such as a network peer.
	ExternalSynchronizedNodeType

	// ExternalNodeType nodes load content from URLs.
	ExternalNodeType

	// CustomNodeType is for application defined node types.
	CustomNodeType

	// ImportNodeType is the type of an unbound import proxy.
	ImportNodeType
	MiscNodeType

	TypesN
)

var typesNames = [...]string{"Unknown", "X3DGroupingNode", "X3DShapeNode", "X3DAppearanceNode", "X3DMaterialNode",
	"X3DTextureNode", "X3DTextureTransformNode", "X3DGeometryNode", "X3DSoundNode", "X3DSoundSourceNode",
	"X3DInterpolatorNode", "X3DSensorNode", "X3DPointingDeviceSensorNode", "X3DDragSensorNode",
	"X3DKeyDeviceSensorNode", "X3DEnvironmentalSensorNode", "X3DTimeDependentNode", "Inline",
	"X3DLightNode", "X3DBindableNode", "X3DViewDependentNode", "X3DScriptNode", "X3DPrototypeInstance",
	"X3DTerrainNode", "X3DNetworkSensorNode", "X3DUrlObject", "X3DCustomNode", "IMPORT", "X3DNode"}

func (t Types) String() string {
	if t < 0 || t >= TypesN {
		return fmt.Sprintf("Types(%d)", int32(t))
	}
	return typesNames[t]
}

// TypesValues returns all of the valid [Types] values.
func TypesValues() []Types {
	vs := make([]Types, TypesN)
	for i := range vs {
		vs[i] = Types(i)
	}
	return vs
}

// ParseTypes returns the [Types] value with the given name,
// as returned by [Types.String].
func ParseTypes(s string) (Types, error) {
	for i, nm := range typesNames {
		if nm == s {
			return Types(i), nil
		}
	}
	return UnknownNodeType, fmt.Errorf("node.ParseTypes: %q is not a valid node type", s)
}

// LoadState is the loading state of the external content of a node.
type LoadState int32

const (
	NotLoaded LoadState = iota
	Loading
	LoadComplete
	LoadFailed
)

var loadStateNames = [...]string{"not-loaded", "loading", "load-complete", "load-failed"}

func (ls LoadState) String() string {
	if ls < 0 || int(ls) >= len(loadStateNames) {
		return fmt.Sprintf("LoadState(%d)", int32(ls))
	}
	return loadStateNames[ls]
}
