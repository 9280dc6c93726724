// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Overlay errors.
var (
	// ErrInvalidTexture is returned when a texture upload has no pixels or
	// its pixel data does not match its dimensions.
	ErrInvalidTexture = errors.New("gpu: invalid overlay texture")

	// ErrIndexOutOfRange is returned when a mesh index exceeds its vertex count.
	ErrIndexOutOfRange = errors.New("gpu: overlay index out of range")
)

// overlayVertexStride is the byte stride of one OverlayVertex:
//
//	pos   (vec2<f32>)  = 8 bytes (location 0)
//	uv    (vec2<f32>)  = 8 bytes (location 1)
//	color (unorm8x4)   = 4 bytes (location 2)
const overlayVertexStride = 20

// overlayLocalsSize is the uniform block: screen size in points plus padding.
const overlayLocalsSize = 16

// TextureID names an overlay texture. IDs are chosen by the caller.
type TextureID uint64

// TextureUpload is a full RGBA8 image, premultiplied alpha, row-major.
type TextureUpload struct {
	Width, Height uint32
	Pixels        []byte
}

// OverlayVertex is one tessellated overlay vertex. Pos is in points.
type OverlayVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]uint8
}

// OverlayMesh is an indexed triangle list drawn with one texture.
// Indices are relative to the mesh's own Vertices.
type OverlayMesh struct {
	Vertices []OverlayVertex
	Indices  []uint32
	Texture  TextureID
}

// ScreenDescriptor describes the render target the overlay is drawn onto.
type ScreenDescriptor struct {
	SizeInPixels   [2]uint32
	PixelsPerPoint float32
}

// SizeInPoints returns the target size in overlay points.
func (s ScreenDescriptor) SizeInPoints() [2]float32 {
	ppp := s.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}
	return [2]float32{float32(s.SizeInPixels[0]) / ppp, float32(s.SizeInPixels[1]) / ppp}
}

type overlayTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	bind   hal.BindGroup
	width  uint32
	height uint32
}

type overlayDraw struct {
	texture    TextureID
	firstIndex uint32
	indexCount uint32
}

// OverlayPainter uploads overlay textures and meshes and records them into
// a Load/Store pass on top of whatever the target already holds.
//
// OverlayPainter is NOT safe for concurrent use.
type OverlayPainter struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	shader        hal.ShaderModule
	localsLayout  hal.BindGroupLayout
	textureLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	sampler       hal.Sampler

	localsBuf  hal.Buffer
	localsBind hal.BindGroup

	textures map[TextureID]*overlayTexture

	vertexBuf hal.Buffer
	vertexCap uint64
	indexBuf  hal.Buffer
	indexCap  uint64

	draws []overlayDraw
}

// NewOverlayPainter builds the overlay pipeline for the color target format.
func NewOverlayPainter(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*OverlayPainter, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	p := &OverlayPainter{
		device:   device,
		queue:    queue,
		format:   format,
		textures: make(map[TextureID]*overlayTexture),
	}
	if err := p.createPipeline(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// HasTexture reports whether id is currently allocated.
func (p *OverlayPainter) HasTexture(id TextureID) bool {
	_, ok := p.textures[id]
	return ok
}

// DrawCount returns the number of draws recorded by the last UpdateBuffers.
func (p *OverlayPainter) DrawCount() int { return len(p.draws) }

// UpdateTexture uploads a full image into texture id, creating or
// replacing the GPU texture when the size changes.
func (p *OverlayPainter) UpdateTexture(id TextureID, up TextureUpload) error {
	if up.Width == 0 || up.Height == 0 || len(up.Pixels) != int(up.Width)*int(up.Height)*4 {
		return fmt.Errorf("%w: id=%d %dx%d with %d bytes", ErrInvalidTexture, id, up.Width, up.Height, len(up.Pixels))
	}

	t, ok := p.textures[id]
	if ok && (t.width != up.Width || t.height != up.Height) {
		p.destroyTexture(t)
		delete(p.textures, id)
		ok = false
	}
	if !ok {
		var err error
		t, err = p.createTexture(id, up.Width, up.Height)
		if err != nil {
			return err
		}
		p.textures[id] = t
	}

	if err := p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		up.Pixels,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: up.Width * 4, RowsPerImage: up.Height},
		&hal.Extent3D{Width: up.Width, Height: up.Height, DepthOrArrayLayers: 1},
	); err != nil {
		return fmt.Errorf("upload overlay texture %d: %w", id, err)
	}
	slogger().Debug("gpu: overlay texture uploaded", "id", id, "width", up.Width, "height", up.Height)
	return nil
}

// FreeTexture releases texture id. Unknown ids are ignored.
func (p *OverlayPainter) FreeTexture(id TextureID) {
	if t, ok := p.textures[id]; ok {
		p.destroyTexture(t)
		delete(p.textures, id)
		slogger().Debug("gpu: overlay texture freed", "id", id)
	}
}

// UpdateBuffers uploads the meshes for this frame and the screen size.
// Meshes are concatenated into one vertex and one index buffer; each mesh
// becomes one draw.
func (p *OverlayPainter) UpdateBuffers(meshes []OverlayMesh, screen ScreenDescriptor) error {
	size := screen.SizeInPoints()
	locals := make([]byte, overlayLocalsSize)
	binary.LittleEndian.PutUint32(locals[0:], math.Float32bits(size[0]))
	binary.LittleEndian.PutUint32(locals[4:], math.Float32bits(size[1]))
	if err := writeBuffer(p.queue, p.localsBuf, locals); err != nil {
		return err
	}

	p.draws = p.draws[:0]
	var vertexCount, indexCount int
	for _, m := range meshes {
		vertexCount += len(m.Vertices)
		indexCount += len(m.Indices)
	}
	if indexCount == 0 {
		return nil
	}

	vdata := make([]byte, 0, vertexCount*overlayVertexStride)
	idata := make([]byte, 0, indexCount*4)
	var base, first uint32
	for _, m := range meshes {
		if len(m.Indices) == 0 {
			continue
		}
		for _, v := range m.Vertices {
			vdata = binary.LittleEndian.AppendUint32(vdata, math.Float32bits(v.Pos[0]))
			vdata = binary.LittleEndian.AppendUint32(vdata, math.Float32bits(v.Pos[1]))
			vdata = binary.LittleEndian.AppendUint32(vdata, math.Float32bits(v.UV[0]))
			vdata = binary.LittleEndian.AppendUint32(vdata, math.Float32bits(v.UV[1]))
			vdata = append(vdata, v.Color[:]...)
		}
		for _, idx := range m.Indices {
			if int(idx) >= len(m.Vertices) {
				p.draws = p.draws[:0]
				return fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, idx, len(m.Vertices))
			}
			idata = binary.LittleEndian.AppendUint32(idata, base+idx)
		}
		p.draws = append(p.draws, overlayDraw{
			texture:    m.Texture,
			firstIndex: first,
			indexCount: uint32(len(m.Indices)),
		})
		base += uint32(len(m.Vertices))
		first += uint32(len(m.Indices))
	}

	var err error
	if p.vertexBuf, p.vertexCap, err = p.ensureBuffer(p.vertexBuf, p.vertexCap, uint64(len(vdata)),
		"overlay_vertices", gputypes.BufferUsageVertex); err != nil {
		return err
	}
	if p.indexBuf, p.indexCap, err = p.ensureBuffer(p.indexBuf, p.indexCap, uint64(len(idata)),
		"overlay_indices", gputypes.BufferUsageIndex); err != nil {
		return err
	}
	if err := writeBuffer(p.queue, p.vertexBuf, vdata); err != nil {
		return err
	}
	return writeBuffer(p.queue, p.indexBuf, idata)
}

// ensureBuffer grows buf to at least need bytes, doubling capacity.
func (p *OverlayPainter) ensureBuffer(buf hal.Buffer, capacity, need uint64, label string, usage gputypes.BufferUsage) (hal.Buffer, uint64, error) {
	if buf != nil && capacity >= need {
		return buf, capacity, nil
	}
	newCap := max(capacity, 1024)
	for newCap < need {
		newCap *= 2
	}
	next, err := createBuffer(p.device, label, newCap, usage)
	if err != nil {
		return buf, capacity, err
	}
	if buf != nil {
		p.device.DestroyBuffer(buf)
	}
	return next, newCap, nil
}

// Render records one pass that loads view and draws the meshes from the
// last UpdateBuffers. Draws whose texture is unknown are skipped.
func (p *OverlayPainter) Render(frame *Frame, view hal.TextureView) error {
	if p.pipeline == nil {
		return fmt.Errorf("overlay: %w", ErrRendererDestroyed)
	}
	pass, err := frame.BeginPass("overlay_pass", view, gputypes.LoadOpLoad, gputypes.Color{})
	if err != nil {
		return fmt.Errorf("begin overlay pass: %w", err)
	}
	defer pass.End()

	if len(p.draws) == 0 {
		return nil
	}
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.localsBind)
	pass.SetVertexBuffer(0, p.vertexBuf, 0)
	pass.SetIndexBuffer(p.indexBuf, gputypes.IndexFormatUint32, 0)
	for _, d := range p.draws {
		t, ok := p.textures[d.texture]
		if !ok {
			slogger().Warn("gpu: overlay draw skipped, unknown texture", "id", d.texture)
			continue
		}
		pass.SetBindGroup(1, t.bind)
		pass.DrawIndexed(d.indexCount, 1, d.firstIndex, 0, 0)
	}
	return nil
}

func (p *OverlayPainter) createTexture(id TextureID, width, height uint32) (*overlayTexture, error) {
	label := fmt.Sprintf("overlay_texture_%d", id)
	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}
	bind, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind",
		Layout: p.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: p.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		p.device.DestroyTextureView(view)
		p.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s bind group: %w", label, err)
	}
	return &overlayTexture{tex: tex, view: view, bind: bind, width: width, height: height}, nil
}

func (p *OverlayPainter) destroyTexture(t *overlayTexture) {
	p.device.DestroyBindGroup(t.bind)
	p.device.DestroyTextureView(t.view)
	p.device.DestroyTexture(t.tex)
}

func overlayVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{{
		ArrayStride: overlayVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			{Format: gputypes.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
		},
	}}
}

func (p *OverlayPainter) createPipeline() error { //nolint:funlen // one descriptor per GPU object
	shader, err := createShaderModule(p.device, "overlay_shader", overlayShaderSource)
	if err != nil {
		return err
	}
	p.shader = shader

	p.localsLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "overlay_locals_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create overlay locals layout: %w", err)
	}

	p.textureLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "overlay_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create overlay texture layout: %w", err)
	}

	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "overlay_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.localsLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create overlay pipeline layout: %w", err)
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	p.pipeline, err = p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "overlay_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    overlayVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create overlay pipeline: %w", err)
	}

	p.sampler, err = p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "overlay_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create overlay sampler: %w", err)
	}

	p.localsBuf, err = createBuffer(p.device, "overlay_locals", overlayLocalsSize, gputypes.BufferUsageUniform)
	if err != nil {
		return err
	}
	p.localsBind, err = p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "overlay_locals_bind",
		Layout: p.localsLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: p.localsBuf.NativeHandle(), Offset: 0, Size: overlayLocalsSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create overlay locals bind group: %w", err)
	}
	return nil
}

// Destroy releases every texture, buffer and pipeline object. Safe to call
// multiple times.
func (p *OverlayPainter) Destroy() {
	if p.device == nil {
		return
	}
	for id, t := range p.textures {
		p.destroyTexture(t)
		delete(p.textures, id)
	}
	for _, buf := range []*hal.Buffer{&p.indexBuf, &p.vertexBuf} {
		if *buf != nil {
			p.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	p.vertexCap, p.indexCap = 0, 0
	p.draws = nil
	if p.localsBind != nil {
		p.device.DestroyBindGroup(p.localsBind)
		p.localsBind = nil
	}
	if p.localsBuf != nil {
		p.device.DestroyBuffer(p.localsBuf)
		p.localsBuf = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.textureLayout != nil {
		p.device.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.localsLayout != nil {
		p.device.DestroyBindGroupLayout(p.localsLayout)
		p.localsLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
