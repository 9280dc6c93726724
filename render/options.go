// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// options holds New configuration.
type options struct {
	backend  Backend
	surfaces SurfaceFactory
	overlay  bool
}

func defaultOptions() options {
	return options{surfaces: HALSurfaces, overlay: true}
}

// Option configures New.
type Option func(*options)

// WithBackend selects the GPU backend. The default is vulkan.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithSurfaceFactory replaces the native surface factory.
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(o *options) { o.surfaces = f }
}

// WithOverlay enables or disables the options panel. It is enabled by
// default.
func WithOverlay(enabled bool) Option {
	return func(o *options) { o.overlay = enabled }
}
