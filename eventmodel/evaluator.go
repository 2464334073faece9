// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eventmodel runs the frame loop of the scene-graph runtime.
// An [Evaluator] keeps the live scenes, ticks time dependent nodes,
// processes the resulting route cascade and then hands the structural
// changes of the frame to its consumers.
package eventmodel

import (
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"

	"cogentcore.org/x3d/config"
	"cogentcore.org/x3d/framestate"
	"cogentcore.org/x3d/listener"
	"cogentcore.org/x3d/node"
	"cogentcore.org/x3d/report"
	"cogentcore.org/x3d/route"
	"cogentcore.org/x3d/scene"
	"cogentcore.org/x3d/traverse"
)

// Ticker is implemented by time dependent nodes that advance with the
// frame time, such as time sensors.
type Ticker interface {
	Tick(time float64) error
}

// sceneState is what the evaluator keeps for a live scene.
type sceneState struct {
	layer int

	// refs has one entry per reference to a node, which is more than
	// one for nodes that are USE'd.
	refs   []node.Node
	nodes  []node.Node
	routes []*route.Route
}

// Evaluator runs the frames of a set of live scenes. It must only be
// used from one goroutine.
type Evaluator struct {
	opts     *config.Options
	versions *semver.Constraints

	frame    *framestate.Manager
	routes   *route.Manager
	trav     *traverse.Traverser
	reporter report.Reporter

	// ownReporter is whether the reporter follows the options.
	ownReporter bool

	scenes    map[*scene.Scene]*sceneState
	order     []*scene.Scene
	tickers   []Ticker
	watcher   *config.Watcher
	consumers []func(fs *framestate.Manager)
	time      float64
}

// New returns a new Evaluator with the given options, or [config.Default]
// if opts is nil. If r is nil, the reporter is made from the options.
func New(opts *config.Options, r report.Reporter) (*Evaluator, error) {
	if opts == nil {
		opts = config.Default()
	}
	e := &Evaluator{
		frame:       framestate.New(),
		routes:      route.New(),
		trav:        traverse.New(),
		reporter:    r,
		ownReporter: r == nil,
		scenes:      map[*scene.Scene]*sceneState{},
	}
	if err := e.ApplyOptions(opts); err != nil {
		return nil, err
	}
	if r != nil {
		e.SetErrorReporter(r)
	}
	return e, nil
}

// ApplyOptions applies new options. Invalid options are an error and
// leave the current options in place.
func (e *Evaluator) ApplyOptions(opts *config.Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("eventmodel.Evaluator.ApplyOptions: %w", err)
	}
	types, _ := opts.Types()
	versions, _ := opts.VersionConstraint()
	e.opts = opts
	e.versions = versions
	e.frame.RemoveListenFor(node.TypesValues()...)
	e.frame.ListenFor(types...)
	e.routes.MaxDepth = opts.CascadeDepth()
	if e.ownReporter {
		e.SetErrorReporter(opts.Reporter())
		e.ownReporter = true
	}
	return nil
}

// Options returns the current options.
func (e *Evaluator) Options() *config.Options {
	return e.opts
}

// SetErrorReporter sets the reporter of the evaluator and all of its
// parts, including listener dispatch. A nil reporter makes the
// reporter follow the options again.
func (e *Evaluator) SetErrorReporter(r report.Reporter) {
	e.ownReporter = r == nil
	if r == nil {
		r = e.opts.Reporter()
	}
	e.reporter = r
	e.frame.SetErrorReporter(r)
	e.routes.SetErrorReporter(r)
	e.trav.SetErrorReporter(r)
	listener.SetReporter(r)
}

// FrameState returns the frame state manager.
func (e *Evaluator) FrameState() *framestate.Manager {
	return e.frame
}

// Routes returns the route manager.
func (e *Evaluator) Routes() *route.Manager {
	return e.routes
}

// Time returns the time of the last frame.
func (e *Evaluator) Time() float64 {
	return e.time
}

// Scenes returns the live scenes in the order they were added.
func (e *Evaluator) Scenes() []*scene.Scene {
	return slices.Clone(e.order)
}

// collector records every node encounter of a traversal.
type collector struct {
	refs, nodes []node.Node
}

func (c *collector) ObservedNode(parent, child node.Node, field int, used bool) {
	c.refs = append(c.refs, child)
	if !used {
		c.nodes = append(c.nodes, child)
	}
}

// AddScene makes the scene live in the given layer. Its nodes are
// referenced from the layer, finish their setup and are registered as
// added with the frame state, and its routes start to be evaluated.
// Routes that cannot be made are reported and skipped.
func (e *Evaluator) AddScene(s *scene.Scene, layer int) error {
	if _, has := e.scenes[s]; has {
		return fmt.Errorf("eventmodel.Evaluator.AddScene: scene is already live")
	}
	if s.Version != nil && !e.versions.Check(s.Version) {
		return fmt.Errorf("eventmodel.Evaluator.AddScene: version %v does not satisfy %q", s.Version, e.opts.SpecVersions)
	}
	c := &collector{}
	e.trav.Reset()
	e.trav.SetSimpleObserver(c)
	if err := e.trav.TraverseGraph(s.Root); err != nil {
		return fmt.Errorf("eventmodel.Evaluator.AddScene: %w", err)
	}
	st := &sceneState{layer: layer, refs: c.refs, nodes: c.nodes}
	for _, n := range c.refs {
		n.UpdateRefCount(layer, true)
	}
	for _, n := range c.nodes {
		n.SetupFinished()
		if t, ok := n.(Ticker); ok && n.HasType(node.TimeDependentNodeType) && !slices.Contains(e.tickers, t) {
			e.tickers = append(e.tickers, t)
		}
	}
	for _, p := range s.Imports() {
		p.SetErrorReporter(e.reporter)
	}
	for _, rd := range s.Routes() {
		if r := e.addRoute(s, rd); r != nil {
			st.routes = append(st.routes, r)
		}
	}
	e.scenes[s] = st
	e.order = append(e.order, s)
	e.frame.RegisterAddedNodes(c.nodes)
	e.frame.RegisterAddedScene(s)
	for _, p := range s.ExternProtos() {
		if p.State == node.NotLoaded {
			e.frame.RegisterAddedExternProto(p)
		}
	}
	return nil
}

func (e *Evaluator) addRoute(s *scene.Scene, rd scene.Route) *route.Route {
	src, dst := s.Node(rd.FromNode), s.Node(rd.ToNode)
	if src == nil || dst == nil {
		e.reporter.Warning(fmt.Sprintf("eventmodel.Evaluator.AddScene: %v: unknown node", rd), nil)
		return nil
	}
	si, di := src.FieldIndex(rd.FromField), dst.FieldIndex(rd.ToField)
	if si == node.NotFound || di == node.NotFound {
		e.reporter.Warning(fmt.Sprintf("eventmodel.Evaluator.AddScene: %v: unknown field", rd), node.ErrFieldUnknown)
		return nil
	}
	r, err := e.routes.Add(src, si, dst, di)
	if err != nil {
		e.reporter.Warning(fmt.Sprintf("eventmodel.Evaluator.AddScene: %v", rd), err)
		return nil
	}
	return r
}

// RemoveScene takes the scene out of its layer. Its routes are removed,
// and nodes that are no longer referenced from any layer are registered
// as removed with the frame state. Nodes still live in other layers
// report the layer in RemovedLayerIDs.
func (e *Evaluator) RemoveScene(s *scene.Scene) error {
	st, ok := e.scenes[s]
	if !ok {
		return fmt.Errorf("eventmodel.Evaluator.RemoveScene: scene is not live")
	}
	for _, r := range st.routes {
		e.routes.Remove(r)
	}
	for _, n := range st.refs {
		n.UpdateRefCount(st.layer, false)
	}
	var removed []node.Node
	for _, n := range st.nodes {
		if n.LayerIDs() != nil {
			continue
		}
		removed = append(removed, n)
		if t, ok := n.(Ticker); ok {
			e.tickers = slices.DeleteFunc(e.tickers, func(o Ticker) bool { return o == t })
		}
	}
	delete(e.scenes, s)
	e.order = slices.DeleteFunc(e.order, func(o *scene.Scene) bool { return o == s })
	e.frame.RegisterRemovedNodes(removed)
	e.frame.RegisterRemovedScene(s)
	return nil
}

// InlineLoaded binds the imports of the live scene s from its Inline
// with the given DEF name to the exports of the loaded content, and
// marks that Inline as loaded. It returns the import names that the
// content does not export, which are also reported.
func (e *Evaluator) InlineLoaded(s *scene.Scene, inlineDEF string, content *scene.Scene) ([]string, error) {
	if _, ok := e.scenes[s]; !ok {
		return nil, fmt.Errorf("eventmodel.Evaluator.InlineLoaded: scene is not live")
	}
	missing := s.BindImports(inlineDEF, content)
	for _, m := range missing {
		e.reporter.Warning(fmt.Sprintf("eventmodel.Evaluator.InlineLoaded: %s does not export %q", inlineDEF, m), nil)
	}
	e.setLoadState(s, inlineDEF, node.LoadComplete)
	return missing, nil
}

// InlineUnloaded unbinds the imports of the live scene s from its Inline
// with the given DEF name, and marks that Inline as not loaded.
func (e *Evaluator) InlineUnloaded(s *scene.Scene, inlineDEF string) error {
	if _, ok := e.scenes[s]; !ok {
		return fmt.Errorf("eventmodel.Evaluator.InlineUnloaded: scene is not live")
	}
	s.UnbindImports(inlineDEF)
	e.setLoadState(s, inlineDEF, node.NotLoaded)
	return nil
}

func (e *Evaluator) setLoadState(s *scene.Scene, def string, ls node.LoadState) {
	if ext, ok := s.DEF(def).(node.External); ok {
		ext.SetLoadState(ls)
	}
}

// Watch makes the evaluator apply the options delivered by the watcher
// at the start of every frame.
func (e *Evaluator) Watch(w *config.Watcher) {
	e.watcher = w
}

// OnFrame adds a function that is called at the end of every frame with
// the frame state, before it is cleared.
func (e *Evaluator) OnFrame(fun func(fs *framestate.Manager)) {
	e.consumers = append(e.consumers, fun)
}

// EvaluateFrame runs one frame at the given time: it applies changed
// options, ticks time dependent nodes, processes the route cascade,
// finishes the frame and hands the frame state to the OnFrame functions.
// It returns the number of route events delivered.
func (e *Evaluator) EvaluateFrame(time float64) int {
	e.time = time
	e.drainOptions()
	for _, t := range slices.Clone(e.tickers) {
		e.tick(t, time)
	}
	n := e.routes.Process(time)
	e.frame.FrameFinished()
	for _, fun := range e.consumers {
		e.consume(fun)
	}
	e.frame.Clear()
	return n
}

func (e *Evaluator) drainOptions() {
	if e.watcher == nil {
		return
	}
	for {
		select {
		case opts := <-e.watcher.Changes():
			if err := e.ApplyOptions(opts); err != nil {
				e.reporter.Warning("eventmodel.Evaluator: options not applied", err)
				continue
			}
			e.reporter.Message("eventmodel.Evaluator: options reloaded from " + e.watcher.Path())
		case err := <-e.watcher.Errors():
			e.reporter.Warning("eventmodel.Evaluator: options not reloaded", err)
		default:
			return
		}
	}
}

func (e *Evaluator) tick(t Ticker, time float64) {
	defer func() {
		if r := recover(); r != nil {
			e.reporter.Warning(fmt.Sprintf("eventmodel.Evaluator: %T failed to tick", t), report.PanicError(r))
		}
	}()
	if err := t.Tick(time); err != nil {
		e.reporter.Warning(fmt.Sprintf("eventmodel.Evaluator: %T failed to tick", t), err)
	}
}

func (e *Evaluator) consume(fun func(fs *framestate.Manager)) {
	defer func() {
		if r := recover(); r != nil {
			e.reporter.Warning("eventmodel.Evaluator: frame consumer failed", report.PanicError(r))
		}
	}()
	fun(e.frame)
}
