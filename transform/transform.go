// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package transform computes the per-frame cube matrices.
//
// All matrices are mgl32.Mat4 values, column-major, which is the layout the
// WGSL uniform block expects. Compute is pure and safe for concurrent use.
package transform

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera and animation constants.
const (
	// Distance is how far the cube sits in front of the eye.
	Distance = 8.0

	// Near and Far bound the view frustum.
	Near = 6.0
	Far  = 10.0

	// Top is the frustum half-height at the near plane for aspect 1.
	Top = 2.8

	// Start angles in degrees.
	StartX = 45.0
	StartY = 45.0
	StartZ = 10.0

	// Angular rates in degrees per step.
	RateX = 0.25
	RateY = -0.5
	RateZ = 0.15
)

// UniformSize is the byte size of the uniform block: three 4x4 float matrices.
const UniformSize = 3 * 16 * 4

// Uniforms is the vertex-stage uniform block.
// Normal is stored as a full 4x4 for alignment; only its upper 3x3 is
// meaningful.
type Uniforms struct {
	ModelView           mgl32.Mat4
	ModelViewProjection mgl32.Mat4
	Normal              mgl32.Mat4
}

// Compute returns the uniforms for animation step and surface aspect ratio
// (width/height). aspect must be positive.
func Compute(step uint64, aspect float32) Uniforms {
	mv := ModelView(step)
	return Uniforms{
		ModelView:           mv,
		ModelViewProjection: Projection(aspect).Mul4(mv),
		Normal:              mv.Inv().Transpose(),
	}
}

// ModelView translates the cube away from the eye, then tumbles it about
// X, Y and Z by angles that advance linearly with step.
func ModelView(step uint64) mgl32.Mat4 {
	s := float32(step)
	return mgl32.Translate3D(0, 0, -Distance).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(StartX + RateX*s))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(StartY + RateY*s))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(StartZ + RateZ*s)))
}

// FieldOfView returns the vertical field of view in radians for aspect.
// The near-plane top extent is Top/aspect, so fov is derived, not fixed.
func FieldOfView(aspect float32) float32 {
	top := Top * (1 / aspect)
	return 2 * float32(math.Atan(float64(top/Near)))
}

// Projection is a right-handed perspective matrix mapping depth to [0,1],
// the WebGPU clip-space convention. mgl32.Perspective targets the OpenGL
// [-1,1] range and cannot be used here.
func Projection(aspect float32) mgl32.Mat4 {
	fov := float64(FieldOfView(aspect))
	sin, cos := math.Sincos(0.5 * fov)
	h := float32(cos / sin)
	w := h / aspect
	r := float32(Far / (Near - Far))
	return mgl32.Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, r, -1,
		0, 0, r * Near, 0,
	}
}

// Bytes packs the uniform block as little-endian float32, column-major,
// in field order.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	off := 0
	for _, m := range [3]mgl32.Mat4{u.ModelView, u.ModelViewProjection, u.Normal} {
		for _, f := range m {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
	}
	return buf
}
