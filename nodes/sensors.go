// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import (
	"errors"
	"math"

	"cogentcore.org/x3d/node"
)

func addSensorFields(ft *node.FieldTable) {
	addMetadata(ft)
	ft.Add("enabled", node.InputOutput, node.SFBool, node.NewBool(true))
	ft.Add("isActive", node.OutputOnly, node.SFBool, node.NewBool(false))
}

var touchSensorTable = func() *node.FieldTable {
	ft := node.NewFieldTable("TouchSensor", node.PointingSensorNodeType, node.SensorNodeType)
	addSensorFields(ft)
	ft.Add("description", node.InputOutput, node.SFString, nil)
	ft.Add("isOver", node.OutputOnly, node.SFBool, node.NewBool(false))
	ft.Add("hitPoint_changed", node.OutputOnly, node.SFVec3f, node.NewFloats(0, 0, 0))
	ft.Add("touchTime", node.OutputOnly, node.SFTime, node.NewDouble(0))
	return ft
}()

var planeSensorTable = func() *node.FieldTable {
	ft := node.NewFieldTable("PlaneSensor", node.DragSensorNodeType, node.SensorNodeType, node.PointingSensorNodeType)
	addSensorFields(ft)
	ft.Add("description", node.InputOutput, node.SFString, nil)
	ft.Add("autoOffset", node.InputOutput, node.SFBool, node.NewBool(true))
	ft.Add("offset", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, 0)).Validate = finite
	ft.Add("translation_changed", node.OutputOnly, node.SFVec3f, node.NewFloats(0, 0, 0))
	return ft
}()

var keySensorTable = func() *node.FieldTable {
	ft := node.NewFieldTable("KeySensor", node.KeySensorNodeType, node.SensorNodeType)
	addSensorFields(ft)
	ft.Add("keyPress", node.OutputOnly, node.SFString, nil)
	ft.Add("keyRelease", node.OutputOnly, node.SFString, nil)
	ft.Add("shiftKey", node.OutputOnly, node.SFBool, node.NewBool(false))
	return ft
}()

var proximitySensorTable = func() *node.FieldTable {
	ft := node.NewFieldTable("ProximitySensor", node.EnvironmentalSensorNodeType, node.SensorNodeType, node.ViewDependentNodeType)
	addSensorFields(ft)
	ft.Add("center", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, 0)).Validate = finite
	ft.Add("size", node.InputOutput, node.SFVec3f, node.NewFloats(0, 0, 0)).Validate = finite
	ft.Add("enterTime", node.OutputOnly, node.SFTime, node.NewDouble(0))
	ft.Add("exitTime", node.OutputOnly, node.SFTime, node.NewDouble(0))
	ft.Add("position_changed", node.OutputOnly, node.SFVec3f, node.NewFloats(0, 0, 0))
	return ft
}()

var timeSensorTable = func() *node.FieldTable {
	ft := node.NewFieldTable("TimeSensor", node.SensorNodeType, node.TimeDependentNodeType)
	addSensorFields(ft)
	ft.Add("cycleInterval", node.InputOutput, node.SFTime, node.NewDouble(1)).Validate = positiveTime
	ft.Add("loop", node.InputOutput, node.SFBool, node.NewBool(false))
	ft.Add("startTime", node.InputOutput, node.SFTime, node.NewDouble(0))
	ft.Add("stopTime", node.InputOutput, node.SFTime, node.NewDouble(0))
	ft.Add("cycleTime", node.OutputOnly, node.SFTime, node.NewDouble(0))
	ft.Add("fraction_changed", node.OutputOnly, node.SFFloat, node.NewFloat(0))
	ft.Add("time", node.OutputOnly, node.SFTime, node.NewDouble(0))
	return ft
}()

func init() {
	register("TouchSensor", func() node.Node { return NewTouchSensor() })
	register("PlaneSensor", func() node.Node { return NewPlaneSensor() })
	register("KeySensor", func() node.Node { return NewKeySensor() })
	register("ProximitySensor", func() node.Node { return NewProximitySensor() })
	register("TimeSensor", func() node.Node { return NewTimeSensor() })
}

type TouchSensor struct {
	node.Base
}

func NewTouchSensor() *TouchSensor {
	s := &TouchSensor{}
	s.Init(s, touchSensorTable)
	return s
}

type PlaneSensor struct {
	node.Base
}

func NewPlaneSensor() *PlaneSensor {
	s := &PlaneSensor{}
	s.Init(s, planeSensorTable)
	return s
}

type KeySensor struct {
	node.Base
}

func NewKeySensor() *KeySensor {
	s := &KeySensor{}
	s.Init(s, keySensorTable)
	return s
}

type ProximitySensor struct {
	node.Base
}

func NewProximitySensor() *ProximitySensor {
	s := &ProximitySensor{}
	s.Init(s, proximitySensorTable)
	return s
}

// TimeSensor generates events as time passes, driven by [TimeSensor.Tick].
type TimeSensor struct {
	node.Base
	enabled, cycleInterval, loop, startTime, stopTime int
	isActive, cycleTime, fraction, time               int
}

func NewTimeSensor() *TimeSensor {
	s := &TimeSensor{}
	s.Init(s, timeSensorTable)
	ft := timeSensorTable
	s.enabled = ft.Index("enabled")
	s.cycleInterval = ft.Index("cycleInterval")
	s.loop = ft.Index("loop")
	s.startTime = ft.Index("startTime")
	s.stopTime = ft.Index("stopTime")
	s.isActive = ft.Index("isActive")
	s.cycleTime = ft.Index("cycleTime")
	s.fraction = ft.Index("fraction_changed")
	s.time = ft.Index("time")
	return s
}

// IsActive returns whether the sensor is currently running.
func (s *TimeSensor) IsActive() bool {
	return s.Bool(s.isActive)
}

// Tick advances the sensor to the given time, generating isActive,
// cycleTime, fraction_changed and time events as needed. It returns
// the errors of the events that could not be delivered.
func (s *TimeSensor) Tick(now float64) error {
	active := s.IsActive()
	start, stop := s.Double(s.startTime), s.Double(s.stopTime)
	interval := s.Double(s.cycleInterval)
	if !s.Bool(s.enabled) || now < start || (stop > start && now >= stop) {
		if active {
			return s.SetOutput(s.isActive, node.NewBool(false))
		}
		return nil
	}
	elapsed := now - start
	if !s.Bool(s.loop) && elapsed >= interval {
		if active {
			return errors.Join(
				s.SetOutput(s.fraction, node.NewFloat(1)),
				s.SetOutput(s.time, node.NewDouble(now)),
				s.SetOutput(s.isActive, node.NewBool(false)))
		}
		return nil
	}
	var errs []error
	if !active {
		errs = append(errs,
			s.SetOutput(s.isActive, node.NewBool(true)),
			s.SetOutput(s.cycleTime, node.NewDouble(now)))
	}
	errs = append(errs,
		s.SetOutput(s.fraction, node.NewFloat(float32(math.Mod(elapsed, interval)/interval))),
		s.SetOutput(s.time, node.NewDouble(now)))
	return errors.Join(errs...)
}
