// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// PresentMode selects how acquired textures are queued for display.
type PresentMode int

// Present modes.
const (
	// PresentModeAutoVsync waits for vertical blank, falling back to the
	// closest supported vsync mode.
	PresentModeAutoVsync PresentMode = iota
	PresentModeAutoNoVsync
	PresentModeFifo
	PresentModeImmediate
	PresentModeMailbox
)

// String returns the mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeAutoVsync:
		return "AutoVsync"
	case PresentModeAutoNoVsync:
		return "AutoNoVsync"
	case PresentModeFifo:
		return "Fifo"
	case PresentModeImmediate:
		return "Immediate"
	case PresentModeMailbox:
		return "Mailbox"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// AlphaMode selects how the compositor blends the surface.
type AlphaMode int

// Alpha modes.
const (
	AlphaModeAuto AlphaMode = iota
	AlphaModeOpaque
	AlphaModePremultiplied
)

// MaxFrameLatency is the number of frames that may be in flight.
const MaxFrameLatency = 2

// SurfaceConfig is the swap-chain configuration of a surface.
type SurfaceConfig struct {
	Usage           gputypes.TextureUsage
	Format          gputypes.TextureFormat
	Width           uint32
	Height          uint32
	PresentMode     PresentMode
	AlphaMode       AlphaMode
	MaxFrameLatency uint32
}

// NewSurfaceConfig returns the configuration used for every wgpucube
// surface: render attachment usage, automatic vsync and alpha, two frames
// of latency.
func NewSurfaceConfig(format gputypes.TextureFormat, width, height uint32) SurfaceConfig {
	return SurfaceConfig{
		Usage:           gputypes.TextureUsageRenderAttachment,
		Format:          format,
		Width:           width,
		Height:          height,
		PresentMode:     PresentModeAutoVsync,
		AlphaMode:       AlphaModeAuto,
		MaxFrameLatency: MaxFrameLatency,
	}
}

// Presentable reports whether the configuration has a non-zero area.
func (c SurfaceConfig) Presentable() bool { return c.Width > 0 && c.Height > 0 }
