// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import "cogentcore.org/x3d/node"

var soundTable = func() *node.FieldTable {
	ft := node.NewFieldTable("Sound", node.SoundNodeType)
	addMetadata(ft)
	ft.Add("source", node.InputOutput, node.SFNode, nil)
	ft.Add("direction", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, 1)).Validate = finite
	ft.Add("intensity", node.InputOutput, node.SFFloat, node.NewFloat(1)).Validate = unitRange
	ft.Add("location", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, 0)).Validate = finite
	ft.Add("maxBack", node.InputOutput, node.SFFloat, node.NewFloat(10)).Validate = finite
	ft.Add("maxFront", node.InputOutput, node.SFFloat, node.NewFloat(10)).Validate = finite
	ft.Add("minBack", node.InputOutput, node.SFFloat, node.NewFloat(1)).Validate = finite
	ft.Add("minFront", node.InputOutput, node.SFFloat, node.NewFloat(1)).Validate = finite
	ft.Add("priority", node.InputOutput, node.SFFloat, node.NewFloat(0)).Validate = unitRange
	ft.Add("spatialize", node.InitializeOnly, node.SFBool, node.NewBool(true))
	return ft
}()

var audioClipTable = func() *node.FieldTable {
	ft := node.NewFieldTable("AudioClip", node.AudioClipNodeType, node.TimeDependentNodeType, node.ExternalNodeType)
	addMetadata(ft)
	ft.Add("description", node.InputOutput, node.SFString, nil)
	ft.Add("loop", node.InputOutput, node.SFBool, node.NewBool(false))
	ft.Add("pitch", node.InputOutput, node.SFFloat, node.NewFloat(1)).Validate = positive
	ft.Add("startTime", node.InputOutput, node.SFTime, node.NewDouble(0))
	ft.Add("stopTime", node.InputOutput, node.SFTime, node.NewDouble(0))
	ft.Add("url", node.InputOutput, node.MFString, nil)
	ft.Add("duration_changed", node.OutputOnly, node.SFTime, node.NewDouble(-1))
	ft.Add("isActive", node.OutputOnly, node.SFBool, node.NewBool(false))
	return ft
}()

func init() {
	register("Sound", func() node.Node { return NewSound() })
	register("AudioClip", func() node.Node { return NewAudioClip() })
}

// Sound places a sound source in the scene.
type Sound struct {
	node.Base
}

func NewSound() *Sound {
	s := &Sound{}
	s.Init(s, soundTable)
	return s
}

// AudioClip is a sound source loaded from a URL.
type AudioClip struct {
	node.Base
	loadable
}

func NewAudioClip() *AudioClip {
	a := &AudioClip{}
	a.Init(a, audioClipTable)
	a.initLoadable(&a.Base)
	return a
}

func (a *AudioClip) FieldUpdated(index int) error {
	a.urlUpdated(index)
	return nil
}

// Tick updates isActive for the given time: the clip is active from
// startTime until stopTime, or forever when stopTime <= startTime.
func (a *AudioClip) Tick(time float64) error {
	start := a.Double(a.FieldIndex("startTime"))
	stop := a.Double(a.FieldIndex("stopTime"))
	active := time >= start && (stop <= start || time < stop)
	idx := a.FieldIndex("isActive")
	if active == a.Bool(idx) {
		return nil
	}
	return a.SetOutput(idx, node.NewBool(active))
}
