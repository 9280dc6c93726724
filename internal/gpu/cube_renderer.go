// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/wgpucube/geometry"
	"github.com/gogpu/wgpucube/transform"
)

// ClearColor is the background the cube pass clears to.
var ClearColor = gputypes.Color{R: 0.5, G: 0.5, B: 0.5, A: 1.0}

// CubeRenderer draws the rotating cube.
//
// It owns the vertex, index and uniform buffers, the uniform bind group and
// a fixed pipeline: triangle list, counter-clockwise front faces, back faces
// culled, no depth attachment. Each Render uploads the uniforms for the
// current step, advances the step and records one clearing pass.
//
// CubeRenderer is NOT safe for concurrent use.
type CubeRenderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	uniformBuf hal.Buffer

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	bindGroup     hal.BindGroup

	aspect   float32
	step     uint64
	uniforms []byte
}

// NewCubeRenderer uploads the cube geometry and the step-0, aspect-1
// uniforms and builds the pipeline for the given color target format.
func NewCubeRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*CubeRenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	r := &CubeRenderer{
		device: device,
		queue:  queue,
		format: format,
		aspect: 1,
	}
	if err := r.createBuffers(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, err
	}
	slogger().Debug("gpu: cube renderer created", "format", format)
	return r, nil
}

// Step returns the number of frames rendered so far.
func (r *CubeRenderer) Step() uint64 { return r.step }

// AspectRatio returns the aspect ratio used for the projection.
func (r *CubeRenderer) AspectRatio() float32 { return r.aspect }

// Uniforms returns a copy of the last uniform payload written to the GPU.
func (r *CubeRenderer) Uniforms() []byte {
	out := make([]byte, len(r.uniforms))
	copy(out, r.uniforms)
	return out
}

// Resize recomputes the aspect ratio and rewrites the uniforms for the
// current step. A zero dimension keeps the previous aspect ratio.
func (r *CubeRenderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		slogger().Debug("gpu: cube resize ignored", "width", width, "height", height)
		return
	}
	r.aspect = float32(width) / float32(height)
	if err := r.upload(); err != nil {
		slogger().Warn("gpu: cube uniform upload failed", "err", err)
	}
}

// Render uploads the uniforms for the current step, then records one pass
// on frame that clears view to ClearColor and draws all 36 indices.
// The step advances once the pass has been recorded.
func (r *CubeRenderer) Render(frame *Frame, view hal.TextureView) error {
	if r.pipeline == nil {
		return fmt.Errorf("cube: %w", ErrRendererDestroyed)
	}
	if err := r.upload(); err != nil {
		return err
	}

	pass, err := frame.BeginPass("cube_pass", view, gputypes.LoadOpClear, ClearColor)
	if err != nil {
		return fmt.Errorf("begin cube pass: %w", err)
	}
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.bindGroup)
	pass.SetVertexBuffer(0, r.vertexBuf, 0)
	pass.SetIndexBuffer(r.indexBuf, gputypes.IndexFormatUint16, 0)
	pass.DrawIndexed(uint32(len(geometry.Indices)), 1, 0, 0, 0)
	pass.End()

	r.step++
	return nil
}

func (r *CubeRenderer) upload() error {
	r.uniforms = transform.Compute(r.step, r.aspect).Bytes()
	return writeBuffer(r.queue, r.uniformBuf, r.uniforms)
}

func (r *CubeRenderer) createBuffers() error {
	var err error
	r.vertexBuf, err = createAndUploadBuffer(r.device, r.queue, "cube_vertices",
		geometry.VertexBytes(), gputypes.BufferUsageVertex)
	if err != nil {
		return err
	}
	r.indexBuf, err = createAndUploadBuffer(r.device, r.queue, "cube_indices",
		geometry.IndexBytes(), gputypes.BufferUsageIndex)
	if err != nil {
		return err
	}
	r.uniformBuf, err = createBuffer(r.device, "cube_uniforms", transform.UniformSize, gputypes.BufferUsageUniform)
	if err != nil {
		return err
	}
	return r.upload()
}

// cubeVertexLayout matches geometry.Vertex: position, color, normal.
func cubeVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{{
		ArrayStride: geometry.VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 2},
		},
	}}
}

func (r *CubeRenderer) createPipeline() error {
	shader, err := createShaderModule(r.device, "cube_shader", cubeShaderSource)
	if err != nil {
		return err
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "cube_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create cube uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "cube_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create cube pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "cube_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    cubeVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create cube pipeline: %w", err)
	}
	r.pipeline = pipeline

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "cube_uniform_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: transform.UniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create cube bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// Destroy releases all GPU resources in reverse creation order. Safe to
// call multiple times.
func (r *CubeRenderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	for _, buf := range []*hal.Buffer{&r.uniformBuf, &r.indexBuf, &r.vertexBuf} {
		if *buf != nil {
			r.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
}
