// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodes

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"cogentcore.org/x3d/node"
)

// scalars returns the float payload of a float or float array value.
func scalars(v *node.FieldData) []float32 {
	if v.Type == node.FloatData {
		return []float32{v.Float}
	}
	return v.Floats[:v.Count]
}

func finite(v *node.FieldData) error {
	for _, f := range scalars(v) {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return fmt.Errorf("%v is not a finite number", f)
		}
	}
	return nil
}

// unitRange requires every value to be within [0, 1], as for
// intensities and color components.
func unitRange(v *node.FieldData) error {
	for _, f := range scalars(v) {
		if !(f >= 0 && f <= 1) {
			return fmt.Errorf("%v is outside of [0, 1]", f)
		}
	}
	return nil
}

func positive(v *node.FieldData) error {
	if err := finite(v); err != nil {
		return err
	}
	for _, f := range scalars(v) {
		if f <= 0 {
			return fmt.Errorf("%v is not positive", f)
		}
	}
	return nil
}

func positiveTime(v *node.FieldData) error {
	if !(v.Double > 0) {
		return fmt.Errorf("%v is not a positive time", v.Double)
	}
	return nil
}

// rotation requires finite values and a non-zero axis.
func rotation(v *node.FieldData) error {
	if err := finite(v); err != nil {
		return err
	}
	fs := v.Floats[:v.Count]
	for i := 0; i+3 < len(fs); i += 4 {
		if math32.Sqrt(fs[i]*fs[i]+fs[i+1]*fs[i+1]+fs[i+2]*fs[i+2]) == 0 {
			return errors.New("rotation axis has zero length")
		}
	}
	return nil
}

func fieldOfView(v *node.FieldData) error {
	if !(v.Float > 0 && v.Float < math32.Pi) {
		return fmt.Errorf("field of view %v is outside of (0, π)", v.Float)
	}
	return nil
}

func atLeastMinusOne(v *node.FieldData) error {
	if v.Int < -1 {
		return fmt.Errorf("choice %d is less than -1", v.Int)
	}
	return nil
}
