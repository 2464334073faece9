// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldUnknown is returned for a field index that the node does not have.
	ErrFieldUnknown = errors.New("field not known")

	// ErrValueInvalid is returned for a value of the wrong shape or out of range.
	ErrValueInvalid = errors.New("value invalid")

	// ErrAccessDenied is returned for writes that the field's access does not
	// allow at this point, such as an initializeOnly field after setup.
	ErrAccessDenied = errors.New("access denied")
)

// FieldError is the error returned by the field access protocol.
// It wraps one of [ErrFieldUnknown], [ErrValueInvalid] or [ErrAccessDenied].
type FieldError struct {
	NodeName string
	Field    string
	Index    int
	Err      error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: field %d: %v", e.NodeName, e.Index, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.NodeName, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
