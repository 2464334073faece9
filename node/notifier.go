// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "cogentcore.org/x3d/listener"

// Notifier holds the head of a node's listener chain. It implements
// the listener part of [Node] and is embedded by [Base].
type Notifier struct {
	listeners listener.Node
}

func (nt *Notifier) AddNodeListener(l listener.Node) {
	nt.listeners = listener.Add(nt.listeners, l)
}

func (nt *Notifier) RemoveNodeListener(l listener.Node) {
	nt.listeners = listener.Remove(nt.listeners, l)
}

// FireFieldChanged notifies all listeners that the field at the given index
// has changed. Listeners added or removed during the dispatch do not
// affect it.
func (nt *Notifier) FireFieldChanged(index int) {
	listener.Dispatch(nt.listeners, index)
}

// NumListeners returns the number of registered listeners.
func (nt *Notifier) NumListeners() int {
	return listener.Len(nt.listeners)
}
