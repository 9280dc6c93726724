// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	_ "github.com/gogpu/wgpu/hal/vulkan" // registers the vulkan backend
)

// Backend errors.
var (
	// ErrUnknownBackend is returned by BackendByName for unsupported names.
	ErrUnknownBackend = errors.New("render: unknown backend")

	// ErrBackendUnavailable is returned when a known backend is not
	// compiled in or not supported on this platform.
	ErrBackendUnavailable = errors.New("render: backend not available")
)

// BackendByName returns the GPU backend for a configuration name:
// "vulkan" or "noop".
func BackendByName(name string) (Backend, error) {
	switch name {
	case "vulkan":
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, name)
		}
		return b, nil
	case "noop":
		return &noop.API{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// HALSurfaces creates surfaces through the instance from the window's
// native handles.
func HALSurfaces(instance hal.Instance, window Window) (Surface, error) {
	display, handle := window.NativeHandles()
	s, err := instance.CreateSurface(display, handle)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	return &halSurface{surface: s}, nil
}

// halSurface adapts hal.Surface to Surface.
type halSurface struct {
	surface  hal.Surface
	device   hal.Device
	acquired hal.SurfaceTexture
}

// HAL returns the underlying surface, used as the adapter enumeration hint.
func (s *halSurface) HAL() hal.Surface { return s.surface }

func (s *halSurface) Formats(adapter hal.Adapter) []gputypes.TextureFormat {
	caps := adapter.SurfaceCapabilities(s.surface)
	if caps == nil {
		return nil
	}
	return caps.Formats
}

func (s *halSurface) Configure(device hal.Device, cfg SurfaceConfig) error {
	s.device = device
	return s.surface.Configure(device, &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       cfg.Usage,
		PresentMode: halPresentMode(cfg.PresentMode),
		AlphaMode:   halAlphaMode(cfg.AlphaMode),
	})
}

func (s *halSurface) Acquire() (hal.Texture, error) {
	acquired, err := s.surface.AcquireTexture(nil)
	if err != nil {
		return nil, err
	}
	s.acquired = acquired.Texture
	return acquired.Texture, nil
}

func (s *halSurface) Present(queue hal.Queue, tex hal.Texture) error {
	st := s.acquired
	s.acquired = nil
	if st == nil || hal.Texture(st) != tex {
		return fmt.Errorf("present: texture was not acquired from this surface")
	}
	return queue.Present(s.surface, st, nil)
}

func (s *halSurface) Discard(tex hal.Texture) {
	st := s.acquired
	if st == nil || hal.Texture(st) != tex {
		return
	}
	s.acquired = nil
	s.surface.DiscardTexture(st)
}

func (s *halSurface) Destroy() {
	if s.surface == nil {
		return
	}
	if s.device != nil {
		s.surface.Unconfigure(s.device)
	}
	s.surface.Destroy()
	s.surface = nil
}

func halPresentMode(m PresentMode) hal.PresentMode {
	switch m {
	case PresentModeImmediate, PresentModeAutoNoVsync:
		return hal.PresentModeImmediate
	case PresentModeMailbox:
		return hal.PresentModeMailbox
	default:
		return hal.PresentModeFifo
	}
}

func halAlphaMode(m AlphaMode) hal.CompositeAlphaMode {
	if m == AlphaModePremultiplied {
		return hal.CompositeAlphaModePremultiplied
	}
	return hal.CompositeAlphaModeOpaque
}
