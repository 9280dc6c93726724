// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func newTestPainter(t *testing.T) *OverlayPainter {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	p, err := NewOverlayPainter(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		cleanup()
		t.Fatalf("NewOverlayPainter: %v", err)
	}
	t.Cleanup(func() {
		p.Destroy()
		cleanup()
	})
	return p
}

func solidImage(w, h uint32) TextureUpload {
	px := make([]byte, w*h*4)
	for i := range px {
		px[i] = 0xFF
	}
	return TextureUpload{Width: w, Height: h, Pixels: px}
}

func quad(tex TextureID) OverlayMesh {
	return OverlayMesh{
		Vertices: []OverlayVertex{
			{Pos: [2]float32{0, 0}},
			{Pos: [2]float32{10, 0}},
			{Pos: [2]float32{10, 10}},
			{Pos: [2]float32{0, 10}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Texture: tex,
	}
}

func TestScreenDescriptorSizeInPoints(t *testing.T) {
	tests := []struct {
		screen ScreenDescriptor
		want   [2]float32
	}{
		{ScreenDescriptor{SizeInPixels: [2]uint32{800, 600}, PixelsPerPoint: 1}, [2]float32{800, 600}},
		{ScreenDescriptor{SizeInPixels: [2]uint32{800, 600}, PixelsPerPoint: 2}, [2]float32{400, 300}},
		{ScreenDescriptor{SizeInPixels: [2]uint32{800, 600}}, [2]float32{800, 600}},
	}
	for _, tt := range tests {
		if got := tt.screen.SizeInPoints(); got != tt.want {
			t.Errorf("SizeInPoints(%+v) = %v, want %v", tt.screen, got, tt.want)
		}
	}
}

func TestOverlayTextureLifecycle(t *testing.T) {
	p := newTestPainter(t)

	if err := p.UpdateTexture(1, solidImage(4, 4)); err != nil {
		t.Fatalf("UpdateTexture: %v", err)
	}
	if !p.HasTexture(1) {
		t.Fatal("texture 1 should exist after upload")
	}
	// Same size reuses, new size replaces.
	if err := p.UpdateTexture(1, solidImage(4, 4)); err != nil {
		t.Fatalf("UpdateTexture (same size): %v", err)
	}
	if err := p.UpdateTexture(1, solidImage(8, 2)); err != nil {
		t.Fatalf("UpdateTexture (resize): %v", err)
	}
	if got := p.textures[1]; got.width != 8 || got.height != 2 {
		t.Errorf("texture size = %dx%d, want 8x2", got.width, got.height)
	}

	p.FreeTexture(1)
	if p.HasTexture(1) {
		t.Error("texture 1 should be gone after FreeTexture")
	}
	p.FreeTexture(1) // unknown ids are ignored
}

func TestOverlayTextureInvalid(t *testing.T) {
	p := newTestPainter(t)
	bad := []TextureUpload{
		{Width: 0, Height: 4, Pixels: nil},
		{Width: 2, Height: 2, Pixels: make([]byte, 15)},
	}
	for _, up := range bad {
		if err := p.UpdateTexture(7, up); !errors.Is(err, ErrInvalidTexture) {
			t.Errorf("UpdateTexture(%dx%d, %d bytes) error = %v, want ErrInvalidTexture",
				up.Width, up.Height, len(up.Pixels), err)
		}
	}
}

func TestOverlayUpdateBuffersConcatenates(t *testing.T) {
	p := newTestPainter(t)
	screen := ScreenDescriptor{SizeInPixels: [2]uint32{640, 480}, PixelsPerPoint: 2}

	if err := p.UpdateBuffers([]OverlayMesh{quad(0), {}, quad(1)}, screen); err != nil {
		t.Fatalf("UpdateBuffers: %v", err)
	}
	if p.DrawCount() != 2 {
		t.Fatalf("DrawCount() = %d, want 2 (empty meshes are dropped)", p.DrawCount())
	}
	if p.draws[1].firstIndex != 6 || p.draws[1].indexCount != 6 {
		t.Errorf("second draw = %+v, want firstIndex 6, count 6", p.draws[1])
	}
	if p.draws[1].texture != 1 {
		t.Errorf("second draw texture = %d, want 1", p.draws[1].texture)
	}
}

func TestOverlayUpdateBuffersGrows(t *testing.T) {
	p := newTestPainter(t)
	screen := ScreenDescriptor{SizeInPixels: [2]uint32{64, 64}, PixelsPerPoint: 1}

	meshes := make([]OverlayMesh, 200)
	for i := range meshes {
		meshes[i] = quad(0)
	}
	if err := p.UpdateBuffers(meshes, screen); err != nil {
		t.Fatalf("UpdateBuffers: %v", err)
	}
	if p.vertexCap < 200*4*overlayVertexStride {
		t.Errorf("vertex capacity %d too small", p.vertexCap)
	}
	capBefore := p.vertexCap
	if err := p.UpdateBuffers(meshes[:1], screen); err != nil {
		t.Fatalf("UpdateBuffers (shrink): %v", err)
	}
	if p.vertexCap != capBefore {
		t.Error("buffers should not shrink")
	}
}

func TestOverlayUpdateBuffersIndexOutOfRange(t *testing.T) {
	p := newTestPainter(t)
	m := quad(0)
	m.Indices = append(m.Indices, 9)
	err := p.UpdateBuffers([]OverlayMesh{m}, ScreenDescriptor{SizeInPixels: [2]uint32{1, 1}, PixelsPerPoint: 1})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("error = %v, want ErrIndexOutOfRange", err)
	}
	if p.DrawCount() != 0 {
		t.Error("a rejected upload should leave no draws")
	}
}

// The overlay pass follows the cube pass on the same frame and target.
func TestOverlayRenderAfterCube(t *testing.T) {
	p := newTestPainter(t)
	cube, err := NewCubeRenderer(p.device, p.queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewCubeRenderer: %v", err)
	}
	defer cube.Destroy()

	if err := p.UpdateTexture(0, solidImage(2, 2)); err != nil {
		t.Fatalf("UpdateTexture: %v", err)
	}
	screen := ScreenDescriptor{SizeInPixels: [2]uint32{32, 32}, PixelsPerPoint: 1}
	if err := p.UpdateBuffers([]OverlayMesh{quad(0), quad(5)}, screen); err != nil {
		t.Fatalf("UpdateBuffers: %v", err)
	}

	view := createTargetView(t, p.device, 32, 32)
	f, err := NewFrame(p.device, p.queue, "frame")
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if err := cube.Render(f, view); err != nil {
		t.Fatalf("cube Render: %v", err)
	}
	if err := p.Render(f, view); err != nil {
		t.Fatalf("overlay Render: %v", err)
	}
	if f.State() != FrameStateRecording {
		t.Errorf("state after overlay = %v, want Recording", f.State())
	}
	if err := f.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if f.Passes() != 2 {
		t.Errorf("Passes() = %d, want 2", f.Passes())
	}
}

func TestOverlayRenderEmpty(t *testing.T) {
	p := newTestPainter(t)
	view := createTargetView(t, p.device, 8, 8)
	f, err := NewFrame(p.device, p.queue, "frame")
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if err := p.Render(f, view); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := f.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestOverlayDestroyIdempotent(t *testing.T) {
	p := newTestPainter(t)
	if err := p.UpdateTexture(3, solidImage(1, 1)); err != nil {
		t.Fatalf("UpdateTexture: %v", err)
	}
	p.Destroy()
	p.Destroy()
	if p.HasTexture(3) {
		t.Error("Destroy should release textures")
	}
}
