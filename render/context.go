// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/wgpucube"
	"github.com/gogpu/wgpucube/event"
	"github.com/gogpu/wgpucube/internal/gpu"
	"github.com/gogpu/wgpucube/ui"
)

// Render context errors.
var (
	// ErrNoAdapter is returned when the instance exposes no adapters.
	ErrNoAdapter = errors.New("render: no GPU adapter available")

	// ErrNoSurfaceFormat is returned when the surface reports no formats.
	ErrNoSurfaceFormat = errors.New("render: surface reports no formats")

	// ErrAcquire wraps a failure to acquire the next surface texture.
	ErrAcquire = errors.New("render: acquire surface texture")

	// ErrDestroyed is returned by operations on a destroyed Context.
	ErrDestroyed = errors.New("render: context destroyed")
)

// Context owns the GPU state of one window.
//
// Context is NOT safe for concurrent use; it is driven from the event loop
// thread.
type Context struct {
	instance hal.Instance
	surface  Surface
	adapter  hal.Adapter
	info     gputypes.AdapterInfo
	device   hal.Device
	queue    hal.Queue

	config      SurfaceConfig
	presentable bool

	cube    *gpu.CubeRenderer
	overlay *Overlay

	destroyed bool
}

// New creates the render context for window. The steps run in a fixed
// order: instance, surface, first adapter, device, window size, surface
// format, renderers, and finally surface configuration.
//
// ctx is checked between steps; construction stops with ctx.Err() once it
// is canceled.
func New(ctx context.Context, window Window, opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		b, err := BackendByName("vulkan")
		if err != nil {
			return nil, err
		}
		o.backend = b
	}

	c := &Context{}
	if err := c.init(ctx, window, o); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

func (c *Context) init(ctx context.Context, window Window, o options) error { //nolint:funlen // sequential setup
	log := wgpucube.Logger()

	instance, err := o.backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	c.instance = instance

	surface, err := o.surfaces(instance, window)
	if err != nil {
		return err
	}
	c.surface = surface

	var hint hal.Surface
	if h, ok := surface.(interface{ HAL() hal.Surface }); ok {
		hint = h.HAL()
	}
	adapters := instance.EnumerateAdapters(hint)
	if len(adapters) == 0 {
		return ErrNoAdapter
	}
	selected := adapters[0]
	c.adapter = selected.Adapter
	c.info = selected.Info
	log.Info("render: adapter selected", "name", selected.Info.Name, "type", selected.Info.DeviceType)

	if err := ctx.Err(); err != nil {
		return err
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	c.device = openDev.Device
	c.queue = openDev.Queue

	if err := ctx.Err(); err != nil {
		return err
	}
	width, height := window.InnerSize()

	formats := surface.Formats(selected.Adapter)
	if len(formats) == 0 {
		return ErrNoSurfaceFormat
	}
	format := formats[0]

	c.cube, err = gpu.NewCubeRenderer(c.device, c.queue, format)
	if err != nil {
		return fmt.Errorf("create cube renderer: %w", err)
	}
	c.cube.Resize(width, height)

	if o.overlay {
		c.overlay, err = NewOverlay(c.device, c.queue, format, window.ScaleFactor())
		if err != nil {
			return err
		}
		c.overlay.input.SetScreenSize(width, height)
	}

	c.config = NewSurfaceConfig(format, width, height)
	if err := c.configure(); err != nil {
		return err
	}
	log.Info("render: context ready", "format", format, "width", width, "height", height, "overlay", o.overlay)
	return nil
}

// configure applies c.config to the surface. A zero-area configuration
// is kept but not applied, and marks the surface not presentable until the
// next non-zero resize.
func (c *Context) configure() error {
	if !c.config.Presentable() {
		c.presentable = false
		wgpucube.Logger().Warn("render: zero-area surface, rendering paused",
			"width", c.config.Width, "height", c.config.Height)
		return nil
	}
	if err := c.surface.Configure(c.device, c.config); err != nil {
		c.presentable = false
		return fmt.Errorf("configure surface: %w", err)
	}
	c.presentable = true
	wgpucube.Logger().Debug("render: surface configured",
		"width", c.config.Width, "height", c.config.Height, "present_mode", c.config.PresentMode)
	return nil
}

// Resize updates the cube projection and reconfigures the surface.
func (c *Context) Resize(width, height uint32) error {
	if c.destroyed {
		return ErrDestroyed
	}
	c.cube.Resize(width, height)
	cfg := c.config
	cfg.Width, cfg.Height = width, height
	c.config = cfg
	return c.configure()
}

// Render draws one frame: cube, then overlay, into one encoder, submitted
// once and presented. It does nothing while the surface is not
// presentable. Acquisition failure is returned wrapped in ErrAcquire; any
// later failure discards the acquired texture before returning.
func (c *Context) Render(window Window) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if !c.presentable {
		return nil
	}

	tex, err := c.surface.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	if err := c.draw(window, tex); err != nil {
		c.surface.Discard(tex)
		return err
	}
	if err := c.surface.Present(c.queue, tex); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	if c.overlay != nil {
		c.overlay.FreeTextures()
	}
	return nil
}

// draw records and submits the cube and overlay passes into tex.
func (c *Context) draw(window Window, tex hal.Texture) error {
	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "wgpucube_surface_view",
		Format:        c.config.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer c.device.DestroyTextureView(view)

	frame, err := gpu.NewFrame(c.device, c.queue, "wgpucube_frame")
	if err != nil {
		return err
	}
	if err := c.cube.Render(frame, view); err != nil {
		frame.Discard()
		return fmt.Errorf("render cube: %w", err)
	}
	if c.overlay != nil {
		if err := c.overlay.Render(frame, view, window.ScaleFactor(), c.config.Width, c.config.Height); err != nil {
			frame.Discard()
			return err
		}
	}
	if err := frame.Submit(); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}
	return nil
}

// HandleInput offers ev to the overlay. Without an overlay nothing is
// consumed.
func (c *Context) HandleInput(ev event.Event) ui.EventResponse {
	if c.destroyed || c.overlay == nil {
		return ui.EventResponse{}
	}
	return c.overlay.HandleInput(ev)
}

// SurfaceConfig returns the current swap-chain configuration.
func (c *Context) SurfaceConfig() SurfaceConfig { return c.config }

// Presentable reports whether Render will draw.
func (c *Context) Presentable() bool { return c.presentable }

// Cube returns the cube renderer.
func (c *Context) Cube() *gpu.CubeRenderer { return c.cube }

// Overlay returns the overlay, or nil when disabled.
func (c *Context) Overlay() *Overlay { return c.overlay }

// AdapterName returns the selected adapter's name.
func (c *Context) AdapterName() string { return c.info.Name }

// Destroy releases the overlay, cube, surface, device and instance in that
// order. It is safe to call more than once.
func (c *Context) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.presentable = false
	if c.overlay != nil {
		c.overlay.Destroy()
	}
	if c.cube != nil {
		c.cube.Destroy()
	}
	if c.surface != nil {
		c.surface.Destroy()
	}
	if c.device != nil {
		c.device.Destroy()
		c.device = nil
		c.queue = nil
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
	wgpucube.Logger().Debug("render: context destroyed")
}
