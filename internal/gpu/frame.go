// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Frame errors.
var (
	// ErrPassOpen is returned when a pass is begun or the frame submitted
	// while another pass is still recording.
	ErrPassOpen = errors.New("gpu: render pass is still recording")

	// ErrPassEnded is returned when commands are recorded on an ended pass.
	ErrPassEnded = errors.New("gpu: render pass has already ended")

	// ErrFrameFinished is returned when a submitted or discarded frame is used.
	ErrFrameFinished = errors.New("gpu: frame is no longer recording")

	// ErrNilTarget is returned when a pass is begun without a target view.
	ErrNilTarget = errors.New("gpu: target view is nil")

	// ErrNilDevice is returned when a frame or renderer is created without
	// a device or queue.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrRendererDestroyed is returned when a destroyed renderer is used.
	ErrRendererDestroyed = errors.New("gpu: renderer has been destroyed")

	// ErrNotCompleted is returned when the queue still reports a submitted
	// frame as pending after the device went idle.
	ErrNotCompleted = errors.New("gpu: submitted frame did not complete")
)

// FrameState is the lifecycle of a Frame.
type FrameState int

const (
	// FrameStateRecording means the encoder is open and no pass is recording.
	FrameStateRecording FrameState = iota

	// FrameStatePassOpen means a render pass is recording.
	FrameStatePassOpen

	// FrameStateSubmitted means the command buffer was submitted.
	FrameStateSubmitted

	// FrameStateDiscarded means recording was abandoned.
	FrameStateDiscarded
)

// String returns the string representation of FrameState.
func (s FrameState) String() string {
	switch s {
	case FrameStateRecording:
		return "Recording"
	case FrameStatePassOpen:
		return "PassOpen"
	case FrameStateSubmitted:
		return "Submitted"
	case FrameStateDiscarded:
		return "Discarded"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Frame owns the one command encoder used for a presented frame.
//
// Passes are strictly sequential: BeginPass fails while a pass is open and
// Submit fails until every pass has ended. Frame is NOT safe for concurrent use.
type Frame struct {
	device  hal.Device
	queue   hal.Queue
	encoder hal.CommandEncoder
	label   string

	state      FrameState
	passes     int
	open       *Pass
	submission uint64

	// err is the first recording error, reported by Submit.
	err error
}

// NewFrame creates an encoder and begins recording.
func NewFrame(device hal.Device, queue hal.Queue, label string) (*Frame, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return &Frame{
		device:  device,
		queue:   queue,
		encoder: encoder,
		label:   label,
	}, nil
}

// State returns the current frame state.
func (f *Frame) State() FrameState { return f.state }

// SubmissionIndex returns the queue submission index of a submitted frame,
// or 0 before Submit.
func (f *Frame) SubmissionIndex() uint64 { return f.submission }

// Passes returns the number of passes begun on this frame.
func (f *Frame) Passes() int { return f.passes }

// BeginPass opens a render pass with one color attachment. load selects
// whether the target is cleared to clear or its contents preserved.
func (f *Frame) BeginPass(label string, view hal.TextureView, load gputypes.LoadOp, clear gputypes.Color) (*Pass, error) {
	switch f.state {
	case FrameStatePassOpen:
		return nil, ErrPassOpen
	case FrameStateSubmitted, FrameStateDiscarded:
		return nil, ErrFrameFinished
	}
	if view == nil {
		return nil, ErrNilTarget
	}

	rp := f.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	})
	f.state = FrameStatePassOpen
	f.passes++
	f.open = &Pass{frame: f, rp: rp, label: label}
	return f.open, nil
}

// Submit ends encoding, submits the command buffer and waits for the GPU.
func (f *Frame) Submit() error {
	switch f.state {
	case FrameStatePassOpen:
		return ErrPassOpen
	case FrameStateSubmitted, FrameStateDiscarded:
		return ErrFrameFinished
	}
	if f.err != nil {
		f.Discard()
		return f.err
	}

	cmdBuf, err := f.encoder.EndEncoding()
	if err != nil {
		f.state = FrameStateDiscarded
		return fmt.Errorf("end encoding: %w", err)
	}
	defer f.device.FreeCommandBuffer(cmdBuf)

	f.state = FrameStateSubmitted
	index, err := f.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	f.submission = index
	if f.queue.PollCompleted() < index {
		if err := f.device.WaitIdle(); err != nil {
			return fmt.Errorf("wait for GPU: %w", err)
		}
		if done := f.queue.PollCompleted(); done < index {
			return fmt.Errorf("%w: index %d, completed %d", ErrNotCompleted, index, done)
		}
	}
	slogger().Debug("gpu: frame submitted", "label", f.label, "passes", f.passes, "index", index)
	return nil
}

// Discard abandons recording. It is a no-op on a finished frame.
func (f *Frame) Discard() {
	if f.state == FrameStateSubmitted || f.state == FrameStateDiscarded {
		return
	}
	if f.open != nil {
		f.open.End()
	}
	f.encoder.DiscardEncoding()
	f.state = FrameStateDiscarded
}

// Pass records draw commands into one render pass of a Frame.
//
// Commands recorded after End never reach the encoder; the first such call
// is reported as ErrPassEnded by Frame.Submit.
type Pass struct {
	frame *Frame
	rp    hal.RenderPassEncoder
	label string
	ended bool
}

func (p *Pass) live() bool {
	if p.ended {
		if p.frame.err == nil {
			p.frame.err = fmt.Errorf("%w: %s", ErrPassEnded, p.label)
		}
		return false
	}
	return true
}

// SetPipeline binds the render pipeline.
func (p *Pass) SetPipeline(pipeline hal.RenderPipeline) {
	if p.live() {
		p.rp.SetPipeline(pipeline)
	}
}

// SetBindGroup binds a bind group at index.
func (p *Pass) SetBindGroup(index uint32, group hal.BindGroup) {
	if p.live() {
		p.rp.SetBindGroup(index, group, nil)
	}
}

// SetVertexBuffer binds buf to vertex slot.
func (p *Pass) SetVertexBuffer(slot uint32, buf hal.Buffer, offset uint64) {
	if p.live() {
		p.rp.SetVertexBuffer(slot, buf, offset)
	}
}

// SetIndexBuffer binds the index buffer.
func (p *Pass) SetIndexBuffer(buf hal.Buffer, format gputypes.IndexFormat, offset uint64) {
	if p.live() {
		p.rp.SetIndexBuffer(buf, format, offset)
	}
}

// DrawIndexed issues an indexed draw.
func (p *Pass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	if p.live() {
		p.rp.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
	}
}

// End closes the pass. Calling End twice is a no-op.
func (p *Pass) End() {
	if p.ended {
		return
	}
	p.rp.End()
	p.ended = true
	p.frame.open = nil
	p.frame.state = FrameStateRecording
}

// Ended reports whether End has been called.
func (p *Pass) Ended() bool { return p.ended }
