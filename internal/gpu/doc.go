// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu records the cube and overlay draws on a gogpu/wgpu HAL device.
//
// A [Frame] owns the single command encoder of one presented frame. Renderers
// never create or submit encoders themselves: they receive the frame and the
// target view, open one pass with [Frame.BeginPass], record, and end it.
// The frame refuses to open a second pass while one is recording and refuses
// to submit while any pass is open.
//
// Key components:
//
//   - Frame: encoder ownership and pass ordering
//   - CubeRenderer: vertex/index/uniform buffers and the cube pipeline
//   - OverlayPainter: overlay textures, per-frame mesh buffers and pipeline
//
// Shaders are WGSL, embedded at build time and validated with gogpu/naga
// before a module is created.
package gpu
