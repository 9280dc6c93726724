// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/wgpucube/app"
)

// Window is a GLFW window. Size, scale and handles are cached so they can
// be read off the main thread during asynchronous initialization.
type Window struct {
	glw     *glfw.Window
	display uintptr
	handle  uintptr

	size   atomic.Uint64 // width<<32 | height, framebuffer pixels
	scale  atomic.Uint64 // float64 bits
	redraw atomic.Bool
}

// InnerSize returns the framebuffer size in pixels.
func (w *Window) InnerSize() (width, height uint32) {
	v := w.size.Load()
	return uint32(v >> 32), uint32(v) //nolint:gosec // packed halves
}

// ScaleFactor returns the content scale.
func (w *Window) ScaleFactor() float64 {
	return math.Float64frombits(w.scale.Load())
}

// NativeHandles returns the display and window handles.
func (w *Window) NativeHandles() (display, window uintptr) { return w.display, w.handle }

// RequestRedraw schedules a RedrawRequested for the next loop iteration.
func (w *Window) RequestRedraw() { w.redraw.Store(true) }

// PrePresentNotify is a no-op; GLFW has no frame callbacks to arm.
func (w *Window) PrePresentNotify() {}

func (w *Window) updateSize() (width, height uint32) {
	fw, fh := w.glw.GetFramebufferSize()
	width, height = uint32(max(fw, 0)), uint32(max(fh, 0)) //nolint:gosec // clamped
	w.size.Store(uint64(width)<<32 | uint64(height))
	return width, height
}

func (w *Window) updateScale() float64 {
	sx, _ := w.glw.GetContentScale()
	s := float64(sx)
	if s <= 0 {
		s = 1
	}
	w.scale.Store(math.Float64bits(s))
	return s
}

var _ app.Window = (*Window)(nil)
