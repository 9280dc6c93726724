// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render owns the GPU side of one wgpucube window.
//
// A [Context] holds the instance, surface, device and queue for a window,
// together with the cube renderer and the optional overlay. It opens one
// command encoder per frame, hands it to the cube and then to the overlay,
// submits it once and presents.
//
// # Key Principle
//
// Renderers never create or submit encoders of their own. The Context owns
// the frame, so the cube pass always ends before the overlay pass begins,
// and both end before submission.
//
// # Surfaces
//
// The platform surface sits behind the [Surface] interface. [HALSurfaces]
// binds it to a native window through the wgpu HAL; tests substitute a
// surface backed by offscreen textures.
//
// # Device Sharing
//
// Context implements [gpucontext.DeviceProvider], so other gogpu libraries
// can draw with the same device.
package render
