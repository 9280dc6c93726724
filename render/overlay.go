// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/wgpucube/event"
	"github.com/gogpu/wgpucube/internal/gpu"
	"github.com/gogpu/wgpucube/ui"
)

// Overlay draws the options panel on top of the cube. It joins the ui
// input model and layout to the GPU painter.
type Overlay struct {
	ui      *ui.Context
	input   *ui.Input
	painter *gpu.OverlayPainter
	free    []ui.TextureID
}

// NewOverlay creates the overlay painter for the target format.
func NewOverlay(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, scale float64) (*Overlay, error) {
	painter, err := gpu.NewOverlayPainter(device, queue, format)
	if err != nil {
		return nil, fmt.Errorf("create overlay painter: %w", err)
	}
	return &Overlay{ui: ui.NewContext(), input: ui.NewInput(scale), painter: painter}, nil
}

// UI returns the panel state.
func (o *Overlay) UI() *ui.Context { return o.ui }

// HandleInput feeds one window event to the overlay. Pointer and keyboard
// events are reported consumed while the panel wants the pointer.
func (o *Overlay) HandleInput(ev event.Event) ui.EventResponse {
	resp := o.input.Push(ev)
	switch ev.(type) {
	case event.PointerMoved, event.PointerButton, event.Scroll, event.Key, event.Char:
		resp.Consumed = o.ui.WantsPointerInput()
	}
	return resp
}

// Render runs one UI pass and records it into frame as a Load pass over
// view. Textures the pass frees are released by FreeTextures once the
// frame has been submitted.
func (o *Overlay) Render(frame *gpu.Frame, view hal.TextureView, scale float64, width, height uint32) error {
	o.input.SetScale(scale)
	o.input.SetScreenSize(width, height)
	out := o.ui.Run(o.input.Take())
	meshes := ui.Tessellate(out.Shapes, out.PixelsPerPoint)

	for _, set := range out.TexturesDelta.Set {
		err := o.painter.UpdateTexture(gpu.TextureID(set.ID), gpu.TextureUpload{
			Width:  uint32(set.Image.Width),  //nolint:gosec // atlas dimensions are small
			Height: uint32(set.Image.Height), //nolint:gosec // atlas dimensions are small
			Pixels: set.Image.Pixels,
		})
		if err != nil {
			return fmt.Errorf("upload overlay texture %d: %w", set.ID, err)
		}
	}

	screen := gpu.ScreenDescriptor{SizeInPixels: [2]uint32{width, height}, PixelsPerPoint: out.PixelsPerPoint}
	if err := o.painter.UpdateBuffers(convertMeshes(meshes), screen); err != nil {
		return fmt.Errorf("upload overlay buffers: %w", err)
	}
	if err := o.painter.Render(frame, view); err != nil {
		return fmt.Errorf("record overlay pass: %w", err)
	}
	o.free = append(o.free, out.TexturesDelta.Free...)
	return nil
}

// FreeTextures releases textures freed by previous passes.
func (o *Overlay) FreeTextures() {
	for _, id := range o.free {
		o.painter.FreeTexture(gpu.TextureID(id))
	}
	o.free = o.free[:0]
}

// Destroy releases the GPU painter. It is safe to call more than once.
func (o *Overlay) Destroy() {
	if o.painter != nil {
		o.painter.Destroy()
		o.painter = nil
	}
}

func convertMeshes(meshes []ui.ClippedMesh) []gpu.OverlayMesh {
	out := make([]gpu.OverlayMesh, 0, len(meshes))
	for _, cm := range meshes {
		m := gpu.OverlayMesh{
			Vertices: make([]gpu.OverlayVertex, len(cm.Mesh.Vertices)),
			Indices:  cm.Mesh.Indices,
			Texture:  gpu.TextureID(cm.Mesh.Texture),
		}
		for i, v := range cm.Mesh.Vertices {
			m.Vertices[i] = gpu.OverlayVertex{
				Pos:   [2]float32{v.Pos.X, v.Pos.Y},
				UV:    [2]float32{v.UV.X, v.UV.Y},
				Color: v.Color,
			}
		}
		out = append(out, m)
	}
	return out
}
