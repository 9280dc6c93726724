// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpucube is a small Pure Go GPU demo: a window, a rotating
// vertex-colored cube and an optional immediate-mode options panel.
//
// # Architecture
//
// The repository is organized leaf to root:
//   - geometry: the static 24-vertex, 36-index cube mesh
//   - transform: model-view, projection and normal matrices per animation step
//   - internal/gpu: command frames, the cube renderer and the overlay painter
//   - ui: the overlay panel (input, layout, font atlas, tessellation)
//   - render: the render context owning device, queue and surface
//   - app: the application state machine driven by the host event loop
//   - internal/host: the GLFW desktop host
//   - internal/config: YAML configuration over built-in defaults
//   - cmd/wgpucube: the executable
//
// One frame records two render passes into a single command encoder owned by
// the render context. The cube pass clears the target to gray, the overlay
// pass loads it and draws the panel on top. The encoder is submitted once,
// then the surface texture is presented.
//
// # Logging
//
// Nothing is logged by default. Call [SetLogger] to enable output:
//
//	wgpucube.SetLogger(slog.Default())
package wgpucube
