// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

// State is the controller state. The set is closed: Uninitialized,
// Initializing, Resumed and Closed. Transitions only move forward.
type State interface {
	isState()
	String() string
}

// Uninitialized is the state before the first resume.
type Uninitialized struct{}

// Initializing holds the window while its render context is being built.
type Initializing struct {
	Window Window
}

// Resumed holds the window and its render context.
type Resumed struct {
	Window  Window
	Context RenderContext
}

// Closed is terminal: the window was closed and its render context
// destroyed. A later resume is rejected.
type Closed struct{}

func (Uninitialized) isState() {}
func (Initializing) isState()  {}
func (Resumed) isState()       {}
func (Closed) isState()        {}

func (Uninitialized) String() string { return "Uninitialized" }
func (Initializing) String() string  { return "Initializing" }
func (Resumed) String() string       { return "Resumed" }
func (Closed) String() string        { return "Closed" }
