// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventmodel_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/x3d/config"
	. "cogentcore.org/x3d/eventmodel"
	"cogentcore.org/x3d/framestate"
	"cogentcore.org/x3d/node"
	"cogentcore.org/x3d/nodes"
	"cogentcore.org/x3d/proxy"
	"cogentcore.org/x3d/report"
	"cogentcore.org/x3d/scene"
)

type world struct {
	scene *scene.Scene
	clock *nodes.TimeSensor
	mover *nodes.PositionInterpolator
	box   *nodes.Transform
	shape *nodes.Shape
}

// newWorld returns a scene in which a time sensor moves a transform
// along x from 0 to 10 in 2 seconds. The shape is USE'd twice.
func newWorld(t *testing.T) *world {
	s, err := scene.New("3.3")
	require.NoError(t, err)
	w := &world{scene: s, clock: nodes.NewTimeSensor(), mover: nodes.NewPositionInterpolator(), box: nodes.NewTransform(), shape: nodes.NewShape()}
	require.NoError(t, w.clock.SetValue(w.clock.FieldIndex("cycleInterval"), node.NewDouble(2)))
	require.NoError(t, w.mover.SetValue(w.mover.FieldIndex("key"), node.NewFloats(0, 1)))
	require.NoError(t, w.mover.SetValue(w.mover.FieldIndex("keyValue"), node.NewFloats(0, 0, 0, 10, 0, 0)))
	require.NoError(t, w.box.AddChild(w.shape))

	root := nodes.NewGroup()
	other := nodes.NewTransform()
	require.NoError(t, other.AddChild(w.shape))
	require.NoError(t, root.AddChild(w.clock, w.mover, w.box, other))
	s.Root = root

	require.NoError(t, s.AddDEF("Clock", w.clock))
	require.NoError(t, s.AddDEF("Mover", w.mover))
	require.NoError(t, s.AddDEF("Box", w.box))
	require.NoError(t, s.AddRoute("Clock", "fraction_changed", "Mover", "set_fraction"))
	require.NoError(t, s.AddRoute("Mover", "value_changed", "Box", "set_translation"))
	return w
}

func newEvaluator(t *testing.T) (*Evaluator, *report.Recorder) {
	rec := &report.Recorder{}
	e, err := New(nil, rec)
	require.NoError(t, err)
	return e, rec
}

func TestFrames(t *testing.T) {
	e, rec := newEvaluator(t)
	w := newWorld(t)
	require.NoError(t, e.AddScene(w.scene, 0))
	assert.Equal(t, []*scene.Scene{w.scene}, e.Scenes())
	assert.Len(t, e.Routes().Routes(), 2)
	assert.True(t, w.clock.IsSetupFinished())
	assert.Equal(t, 2, w.shape.RefCount(0))
	assert.Equal(t, 1, w.box.RefCount(0))
	assert.Equal(t, []int{0}, w.box.LayerIDs())

	var frames []*framestate.Manager
	var sensors, scenes int
	e.OnFrame(func(fs *framestate.Manager) {
		frames = append(frames, fs)
		sensors += len(fs.AddedSensors())
		scenes += len(fs.AddedScenes())
	})

	assert.Equal(t, 2, e.EvaluateFrame(1))
	assert.Equal(t, [3]float32{5, 0, 0}, w.box.Translation())
	assert.Equal(t, 1.0, e.Time())
	assert.Equal(t, 1, sensors)
	assert.Equal(t, 1, scenes)
	assert.Empty(t, e.FrameState().AddedSensors(), "cleared after the frame")

	e.EvaluateFrame(1.5)
	assert.Equal(t, [3]float32{7.5, 0, 0}, w.box.Translation())
	assert.Equal(t, 1, sensors)
	assert.Len(t, frames, 2)
	assert.Zero(t, rec.Count(slog.LevelWarn))
}

func TestRemoveScene(t *testing.T) {
	e, _ := newEvaluator(t)
	w := newWorld(t)
	require.NoError(t, e.AddScene(w.scene, 3))
	e.EvaluateFrame(0.5)
	assert.Error(t, e.AddScene(w.scene, 3))

	var removed []node.Node
	var removedScenes int
	e.OnFrame(func(fs *framestate.Manager) {
		removed = fs.RemovedSensors()
		removedScenes = len(fs.RemovedScenes())
	})
	require.NoError(t, e.RemoveScene(w.scene))
	assert.Error(t, e.RemoveScene(w.scene))
	assert.Empty(t, e.Routes().Routes())
	assert.Zero(t, w.shape.RefCount(3))
	assert.Nil(t, w.shape.LayerIDs())
	assert.Equal(t, []int{3}, w.shape.RemovedLayerIDs())
	assert.Empty(t, e.Scenes())

	before := w.box.Translation()
	assert.Zero(t, e.EvaluateFrame(1.5))
	assert.Equal(t, before, w.box.Translation(), "no longer ticked or routed")
	assert.Equal(t, []node.Node{w.clock}, removed)
	assert.Equal(t, 1, removedScenes)
}

func TestSharedBetweenScenes(t *testing.T) {
	e, _ := newEvaluator(t)
	shared := nodes.NewShape()
	mk := func() *scene.Scene {
		s, _ := scene.New("3.3")
		g := nodes.NewGroup()
		require.NoError(t, g.AddChild(shared))
		s.Root = g
		return s
	}
	a, b := mk(), mk()
	require.NoError(t, e.AddScene(a, 0))
	require.NoError(t, e.AddScene(b, 0))
	assert.Equal(t, 2, shared.RefCount(0))

	var removed []node.Node
	e.FrameState().ListenFor(node.ShapeNodeType)
	e.OnFrame(func(fs *framestate.Manager) { removed = fs.RemovedNodes(node.ShapeNodeType) })
	require.NoError(t, e.RemoveScene(a))
	e.EvaluateFrame(0)
	assert.Empty(t, removed, "still referenced from the other scene")
	assert.Equal(t, 1, shared.RefCount(0))
}

func TestSharedBetweenLayers(t *testing.T) {
	e, _ := newEvaluator(t)
	shared := nodes.NewShape()
	mk := func() *scene.Scene {
		s, _ := scene.New("3.3")
		g := nodes.NewGroup()
		require.NoError(t, g.AddChild(shared))
		s.Root = g
		return s
	}
	a, b := mk(), mk()
	require.NoError(t, e.AddScene(a, 0))
	require.NoError(t, e.AddScene(b, 1))
	assert.Equal(t, []int{0, 1}, shared.LayerIDs())

	var removed []node.Node
	e.FrameState().ListenFor(node.ShapeNodeType)
	e.OnFrame(func(fs *framestate.Manager) { removed = fs.RemovedNodes(node.ShapeNodeType) })
	require.NoError(t, e.RemoveScene(a))
	e.EvaluateFrame(0)
	assert.Empty(t, removed, "still referenced from layer 1")
	assert.Equal(t, []int{1}, shared.LayerIDs())
	assert.Equal(t, []int{0}, shared.RemovedLayerIDs())

	require.NoError(t, e.RemoveScene(b))
	e.EvaluateFrame(0)
	assert.Equal(t, []node.Node{shared}, removed)
	assert.Nil(t, shared.LayerIDs())
}

func TestInlineScopedToScene(t *testing.T) {
	e, _ := newEvaluator(t)
	mk := func() (*scene.Scene, *nodes.Inline) {
		s, _ := scene.New("3.3")
		in := nodes.NewInline()
		g := nodes.NewGroup()
		require.NoError(t, g.AddChild(in))
		s.Root = g
		require.NoError(t, s.AddDEF("I", in))
		require.NoError(t, s.AddImport(proxy.New("Door", "I", "FrontDoor")))
		require.NoError(t, e.AddScene(s, 0))
		return s, in
	}
	a, ina := mk()
	b, inb := mk()

	content, _ := scene.New("3.3")
	content.Export("FrontDoor", nodes.NewTransform())
	missing, err := e.InlineLoaded(a, "I", content)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.True(t, a.Import("Door").IsBound())
	assert.False(t, b.Import("Door").IsBound())
	assert.Equal(t, node.LoadComplete, ina.LoadState())
	assert.NotEqual(t, node.LoadComplete, inb.LoadState())

	require.NoError(t, e.InlineUnloaded(a, "I"))
	assert.False(t, a.Import("Door").IsBound())

	other, _ := scene.New("3.3")
	_, err = e.InlineLoaded(other, "I", content)
	assert.Error(t, err)
	assert.Error(t, e.InlineUnloaded(other, "I"))
}

func TestVersion(t *testing.T) {
	e, _ := newEvaluator(t)
	s, err := scene.New("1.0")
	require.NoError(t, err)
	s.Root = nodes.NewGroup()
	assert.ErrorContains(t, e.AddScene(s, 0), "1.0")
}

func TestBadRoutes(t *testing.T) {
	e, rec := newEvaluator(t)
	w := newWorld(t)
	require.NoError(t, w.scene.AddRoute("Clock", "nope", "Box", "set_translation"))
	require.NoError(t, w.scene.AddRoute("Clock", "fraction_changed", "Box", "set_translation"))
	require.NoError(t, e.AddScene(w.scene, 0))
	assert.Len(t, e.Routes().Routes(), 2)
	assert.Equal(t, 2, rec.Count(slog.LevelWarn))
}

func TestImports(t *testing.T) {
	e, rec := newEvaluator(t)
	s, _ := scene.New("3.3")
	clock := nodes.NewTimeSensor()
	mover := nodes.NewPositionInterpolator()
	house := nodes.NewInline()
	require.NoError(t, mover.SetValue(mover.FieldIndex("key"), node.NewFloats(0, 1)))
	require.NoError(t, mover.SetValue(mover.FieldIndex("keyValue"), node.NewFloats(0, 0, 0, 0, 4, 0)))
	root := nodes.NewGroup()
	require.NoError(t, root.AddChild(clock, mover, house))
	s.Root = root
	require.NoError(t, s.AddDEF("Clock", clock))
	require.NoError(t, s.AddDEF("Mover", mover))
	require.NoError(t, s.AddDEF("House", house))
	require.NoError(t, s.AddImport(proxy.New("Door", "House", "FrontDoor")))
	require.NoError(t, s.AddImport(proxy.New("Window", "House", "Window")))
	require.NoError(t, s.AddRoute("Clock", "fraction_changed", "Mover", "set_fraction"))
	require.NoError(t, s.AddRoute("Mover", "value_changed", "Door", "set_translation"))
	require.NoError(t, e.AddScene(s, 0))

	assert.Equal(t, 2, e.EvaluateFrame(0.25))

	content, _ := scene.New("3.3")
	door := nodes.NewTransform()
	content.Export("FrontDoor", door)
	missing, err := e.InlineLoaded(s, "House", content)
	require.NoError(t, err)
	assert.Equal(t, []string{"Window"}, missing)
	assert.Equal(t, 1, rec.Count(slog.LevelWarn))
	assert.Equal(t, node.LoadComplete, house.LoadState())

	e.EvaluateFrame(0.5)
	assert.Equal(t, [3]float32{0, 2, 0}, door.Translation())

	require.NoError(t, e.InlineUnloaded(s, "House"))
	assert.Equal(t, node.NotLoaded, house.LoadState())
	assert.False(t, s.Import("Door").IsBound())
	e.EvaluateFrame(0.75)
	assert.Equal(t, [3]float32{0, 2, 0}, door.Translation())
}

type badTicker struct {
	node.Base
	err error
}

var badTable = node.NewFieldTable("BadTicker", node.CustomNodeType, node.TimeDependentNodeType)

func (b *badTicker) Tick(time float64) error {
	if b.err != nil {
		return b.err
	}
	panic("tick")
}

func TestTickerPanic(t *testing.T) {
	e, rec := newEvaluator(t)
	w := newWorld(t)
	bad := &badTicker{}
	bad.Init(bad, badTable)
	require.NoError(t, w.scene.Root.(*nodes.Group).AddChild(bad))
	require.NoError(t, e.AddScene(w.scene, 0))
	e.OnFrame(func(fs *framestate.Manager) { panic("consumer") })

	assert.Equal(t, 2, e.EvaluateFrame(1))
	assert.Equal(t, [3]float32{5, 0, 0}, w.box.Translation())
	assert.Equal(t, 2, rec.Count(slog.LevelWarn))
}

func TestTickerError(t *testing.T) {
	e, rec := newEvaluator(t)
	w := newWorld(t)
	bad := &badTicker{err: node.ErrValueInvalid}
	bad.Init(bad, badTable)
	require.NoError(t, w.scene.Root.(*nodes.Group).AddChild(bad))
	require.NoError(t, e.AddScene(w.scene, 0))

	assert.Equal(t, 2, e.EvaluateFrame(1))
	assert.Equal(t, 1, rec.Count(slog.LevelWarn))
	assert.Equal(t, [3]float32{5, 0, 0}, w.box.Translation())
}

func TestApplyOptions(t *testing.T) {
	e, _ := newEvaluator(t)
	assert.True(t, e.FrameState().IsListeningFor(node.SensorNodeType))
	assert.Equal(t, 64, e.Routes().MaxDepth)

	opts := config.Default()
	opts.ListenFor = []string{"X3DScriptNode"}
	opts.MaxCascadeDepth = 3
	require.NoError(t, e.ApplyOptions(opts))
	assert.False(t, e.FrameState().IsListeningFor(node.SensorNodeType))
	assert.True(t, e.FrameState().IsListeningFor(node.ScriptNodeType))
	assert.Equal(t, 3, e.Routes().MaxDepth)
	assert.Same(t, opts, e.Options())

	bad := config.Default()
	bad.LogLevel = "loud"
	assert.Error(t, e.ApplyOptions(bad))
	assert.Same(t, opts, e.Options())

	_, err := New(bad, nil)
	assert.Error(t, err)
}
