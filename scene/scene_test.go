// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/x3d/nodes"
	"cogentcore.org/x3d/proxy"
	. "cogentcore.org/x3d/scene"
)

func TestNew(t *testing.T) {
	s, err := New("3.3")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), s.Version.Major())
	assert.Equal(t, uint64(3), s.Version.Minor())

	_, err = New("three")
	assert.Error(t, err)
}

func TestDEF(t *testing.T) {
	s, _ := New("3.3")
	tr := nodes.NewTransform()
	require.NoError(t, s.AddDEF("Box1", tr))
	assert.True(t, tr.IsDEF())
	assert.Equal(t, "Box1", tr.Name())
	assert.Same(t, tr, s.DEF("Box1"))
	assert.ErrorIs(t, s.AddDEF("Box1", nodes.NewGroup()), ErrDuplicateName)
	assert.Nil(t, s.DEF("nope"))
}

func TestImportsAndExports(t *testing.T) {
	house, _ := New("3.3")
	door := nodes.NewTransform()
	house.Export("FrontDoor", door)
	assert.Same(t, door, house.Exported("FrontDoor"))

	s, _ := New("3.3")
	p := proxy.New("Door", "House", "FrontDoor")
	q := proxy.New("Window", "House", "Window")
	other := proxy.New("Car", "Garage", "Car")
	require.NoError(t, s.AddImport(p))
	require.NoError(t, s.AddImport(q))
	require.NoError(t, s.AddImport(other))
	assert.ErrorIs(t, s.AddImport(proxy.New("Door", "X", "Y")), ErrDuplicateName)
	assert.Len(t, s.Imports(), 3)
	assert.Same(t, p, s.Node("Door"))

	missing := s.BindImports("House", house)
	assert.Equal(t, []string{"Window"}, missing)
	assert.Same(t, door, p.RealNode())
	assert.False(t, q.IsBound())
	assert.False(t, other.IsBound())

	s.UnbindImports("House")
	assert.False(t, p.IsBound())
}

func TestRoutes(t *testing.T) {
	s, _ := New("3.3")
	require.NoError(t, s.AddDEF("Clock", nodes.NewTimeSensor()))
	require.NoError(t, s.AddDEF("Mover", nodes.NewPositionInterpolator()))
	require.NoError(t, s.AddRoute("Clock", "fraction_changed", "Mover", "set_fraction"))
	assert.Error(t, s.AddRoute("Clock", "fraction_changed", "Nobody", "set_fraction"))

	rs := s.Routes()
	require.Len(t, rs, 1)
	assert.Equal(t, "ROUTE Clock.fraction_changed TO Mover.set_fraction", rs[0].String())
}

func TestExternProtos(t *testing.T) {
	s, _ := New("3.3")
	require.NoError(t, s.AddExternProto(&ExternProto{Name: "Spinner", URLs: []string{"spinner.x3d"}}))
	assert.ErrorIs(t, s.AddExternProto(&ExternProto{Name: "Spinner"}), ErrDuplicateName)
	assert.Len(t, s.ExternProtos(), 1)
}
