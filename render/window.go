// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Window is the part of a host window the render context needs.
type Window interface {
	// InnerSize returns the drawable size in physical pixels.
	InnerSize() (width, height uint32)
	// ScaleFactor returns physical pixels per logical point.
	ScaleFactor() float64
	// NativeHandles returns the platform display and window handles.
	NativeHandles() (display, window uintptr)
}

// Backend creates GPU instances. hal backends satisfy it.
type Backend interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Surface is a presentable drawable bound to one window.
type Surface interface {
	// Formats returns the texture formats the adapter can present to this
	// surface, most preferred first.
	Formats(adapter hal.Adapter) []gputypes.TextureFormat
	// Configure replaces the swap-chain configuration.
	Configure(device hal.Device, cfg SurfaceConfig) error
	// Acquire returns the next texture to render into.
	Acquire() (hal.Texture, error)
	// Present queues tex for display. tex must come from Acquire.
	Present(queue hal.Queue, tex hal.Texture) error
	// Discard releases an acquired texture without presenting it.
	Discard(tex hal.Texture)
	// Destroy releases the surface. It is safe to call more than once.
	Destroy()
}

// SurfaceFactory creates the surface for a window on instance.
type SurfaceFactory func(instance hal.Instance, window Window) (Surface, error)
