// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package signup

import "sync"

// Navigator receives the post-signup destination.
type Navigator interface {
	Navigate(destination string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(destination string)

// Navigate calls f.
func (f NavigatorFunc) Navigate(destination string) { f(destination) }

// ExitNavigator remembers the destination so the caller can print it once
// the program has exited. The model quits after navigating.
type ExitNavigator struct {
	mu   sync.Mutex
	dest string
}

// Navigate stores destination.
func (n *ExitNavigator) Navigate(destination string) {
	n.mu.Lock()
	n.dest = destination
	n.mu.Unlock()
}

// Destination returns the last destination, or "" if none was reached.
func (n *ExitNavigator) Destination() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dest
}
