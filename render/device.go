// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access to other gogpu libraries that
// draw into a wgpucube window.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// Device returns the device as a gpucontext.Device, or nil when the HAL
// device does not implement it or the context is destroyed.
func (c *Context) Device() gpucontext.Device {
	d, _ := any(c.device).(gpucontext.Device)
	return d
}

// Queue returns the queue as a gpucontext.Queue, or nil.
func (c *Context) Queue() gpucontext.Queue {
	q, _ := any(c.queue).(gpucontext.Queue)
	return q
}

// Adapter returns the adapter as a gpucontext.Adapter, or nil.
func (c *Context) Adapter() gpucontext.Adapter {
	a, _ := any(c.adapter).(gpucontext.Adapter)
	return a
}

// AdapterInfo returns the selected adapter's name and type.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: c.info.Name, Type: adapterType(c.info.DeviceType)}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// SurfaceFormat returns the configured surface format.
func (c *Context) SurfaceFormat() gputypes.TextureFormat {
	if c.destroyed {
		return gputypes.TextureFormatUndefined
	}
	return c.config.Format
}

// HalDevice returns the underlying hal.Device for libraries that record
// their own passes.
func (c *Context) HalDevice() any { return c.device }

// HalQueue returns the underlying hal.Queue.
func (c *Context) HalQueue() any { return c.queue }

var _ DeviceHandle = (*Context)(nil)
