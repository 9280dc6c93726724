// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package app is the wgpucube application controller.
//
// The controller is a forward-only state machine: [Uninitialized],
// [Initializing], [Resumed] and the terminal [Closed]. Each state value
// carries only the data valid in that state. A host drives it through the [Handler] methods from its single
// event loop thread.
//
// Render context construction goes through an [Initializer].
// [BlockingInitializer] builds the context inline during resume.
// [AsyncInitializer] builds it on a goroutine and reports back with a
// [ContextReady] user event. Both finish in the same transition.
package app
