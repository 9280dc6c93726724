// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/wgpucube/transform"
)

func newTestCube(t *testing.T) *CubeRenderer {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	r, err := NewCubeRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		cleanup()
		t.Fatalf("NewCubeRenderer: %v", err)
	}
	t.Cleanup(func() {
		r.Destroy()
		cleanup()
	})
	return r
}

// renderCubeFrame renders one cube frame into a fresh 2x2 target and submits it.
func renderCubeFrame(t *testing.T, r *CubeRenderer) {
	t.Helper()
	view := createTargetView(t, r.device, 2, 2)
	f, err := NewFrame(r.device, r.queue, "test_frame")
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if err := r.Render(f, view); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := f.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestNewCubeRendererInitialState(t *testing.T) {
	r := newTestCube(t)
	if r.Step() != 0 {
		t.Errorf("Step() = %d, want 0", r.Step())
	}
	if r.AspectRatio() != 1 {
		t.Errorf("AspectRatio() = %v, want 1", r.AspectRatio())
	}
	if !bytes.Equal(r.Uniforms(), transform.Compute(0, 1).Bytes()) {
		t.Error("initial uniforms should be step 0, aspect 1")
	}
}

func TestNewCubeRendererNilDevice(t *testing.T) {
	if _, err := NewCubeRenderer(nil, nil, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, ErrNilDevice) {
		t.Errorf("error = %v, want ErrNilDevice", err)
	}
}

// A 2x1 surface rendered once: the step advances 0 -> 1 and the frame used
// aspect 2 at step 0.
func TestCubeRenderAfterResize(t *testing.T) {
	r := newTestCube(t)
	r.Resize(2, 1)
	renderCubeFrame(t, r)

	if r.Step() != 1 {
		t.Errorf("Step() = %d, want 1", r.Step())
	}
	if r.AspectRatio() != 2 {
		t.Errorf("AspectRatio() = %v, want 2", r.AspectRatio())
	}
	if !bytes.Equal(r.Uniforms(), transform.Compute(0, 2).Bytes()) {
		t.Error("uniforms for the first frame should be computed before the step advances")
	}
}

func TestCubeStepMonotonic(t *testing.T) {
	r := newTestCube(t)
	const n = 5
	before := r.Step()
	for i := 0; i < n; i++ {
		renderCubeFrame(t, r)
	}
	if got := r.Step(); got != before+n {
		t.Errorf("Step() = %d after %d renders, want %d", got, n, before+n)
	}
	if !bytes.Equal(r.Uniforms(), transform.Compute(n-1, 1).Bytes()) {
		t.Error("last uniforms should be for step n-1")
	}
}

func TestCubeResizeIdempotent(t *testing.T) {
	r := newTestCube(t)
	r.Resize(800, 600)
	aspect, payload := r.AspectRatio(), r.Uniforms()
	r.Resize(800, 600)
	if r.AspectRatio() != aspect {
		t.Errorf("aspect changed: %v -> %v", aspect, r.AspectRatio())
	}
	if !bytes.Equal(r.Uniforms(), payload) {
		t.Error("uniform payload changed on identical resize")
	}
	if r.Step() != 0 {
		t.Error("Resize must not advance the step")
	}
}

func TestCubeResizeZeroKeepsAspect(t *testing.T) {
	r := newTestCube(t)
	r.Resize(300, 100)
	for _, size := range [][2]uint32{{0, 100}, {300, 0}, {0, 0}} {
		r.Resize(size[0], size[1])
		if r.AspectRatio() != 3 {
			t.Errorf("Resize(%d, %d): aspect = %v, want 3", size[0], size[1], r.AspectRatio())
		}
	}
}

func TestCubeRenderStaleAspect(t *testing.T) {
	r := newTestCube(t)
	renderCubeFrame(t, r)
	renderCubeFrame(t, r)
	// No resize: rendering continues with aspect 1.
	if !bytes.Equal(r.Uniforms(), transform.Compute(1, 1).Bytes()) {
		t.Error("uniforms should follow the step even without a resize")
	}
}

func TestCubeRenderIntoOpenPass(t *testing.T) {
	r := newTestCube(t)
	view := createTargetView(t, r.device, 2, 2)
	f, err := NewFrame(r.device, r.queue, "test_frame")
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	defer f.Discard()
	if _, err := f.BeginPass("other", view, gputypes.LoadOpClear, ClearColor); err != nil {
		t.Fatalf("BeginPass: %v", err)
	}
	if err := r.Render(f, view); !errors.Is(err, ErrPassOpen) {
		t.Errorf("Render error = %v, want ErrPassOpen", err)
	}
	if r.Step() != 0 {
		t.Error("a failed render must not advance the step")
	}
}

func TestCubeDestroyIdempotent(t *testing.T) {
	r := newTestCube(t)
	r.Destroy()
	r.Destroy()
	view := createTargetView(t, r.device, 2, 2)
	f, err := NewFrame(r.device, r.queue, "test_frame")
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	defer f.Discard()
	if err := r.Render(f, view); !errors.Is(err, ErrRendererDestroyed) {
		t.Errorf("Render after Destroy error = %v, want ErrRendererDestroyed", err)
	}
}
