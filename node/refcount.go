// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"maps"
	"slices"
)

// RefCounts keeps per-layer reference counts of a node that may be
// shared between layers. It implements the reference counting part
// of [Node] and is embedded by [Base]. The zero value is ready to use.
type RefCounts struct {
	counts  map[int]int
	removed []int
}

// UpdateRefCount adds or removes one reference from the given layer.
// Counts never go below zero; when a layer's count drops to zero it is
// recorded in [RefCounts.RemovedLayerIDs].
func (rc *RefCounts) UpdateRefCount(layer int, add bool) {
	if add {
		if rc.counts == nil {
			rc.counts = map[int]int{}
		}
		rc.counts[layer]++
		if i := slices.Index(rc.removed, layer); i >= 0 {
			rc.removed = slices.Delete(rc.removed, i, i+1)
		}
		return
	}
	c, ok := rc.counts[layer]
	if !ok {
		return
	}
	if c > 1 {
		rc.counts[layer] = c - 1
		return
	}
	delete(rc.counts, layer)
	if !slices.Contains(rc.removed, layer) {
		rc.removed = append(rc.removed, layer)
	}
}

// RefCount returns the reference count in the given layer.
func (rc *RefCounts) RefCount(layer int) int {
	return rc.counts[layer]
}

// LayerIDs returns the referencing layers in ascending order, or nil.
func (rc *RefCounts) LayerIDs() []int {
	if len(rc.counts) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(rc.counts))
}

// RemovedLayerIDs returns the layers most recently dropped, or nil.
func (rc *RefCounts) RemovedLayerIDs() []int {
	if len(rc.removed) == 0 {
		return nil
	}
	return slices.Clone(rc.removed)
}

// ClearRemovedLayerIDs clears the list of dropped layers.
func (rc *RefCounts) ClearRemovedLayerIDs() {
	rc.removed = nil
}
