// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geometry holds the static cube mesh: 24 vertices (four per face,
// so every face carries its own flat normal) and 36 triangle-list indices.
package geometry

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Face identifies one side of the cube. Faces are stored in this order in
// both the vertex table and the index list.
type Face int

// Cube faces.
const (
	Front Face = iota
	Back
	Right
	Left
	Top
	Bottom
)

// Faces is the number of cube faces.
const Faces = 6

// VerticesPerFace is the number of corners stored per face.
const VerticesPerFace = 4

// IndicesPerFace is the number of indices per face (two triangles).
const IndicesPerFace = 6

// VertexStride is the size in bytes of one packed Vertex.
const VertexStride = 9 * 4

// String returns the face name.
func (f Face) String() string {
	switch f {
	case Front:
		return "Front"
	case Back:
		return "Back"
	case Right:
		return "Right"
	case Left:
		return "Left"
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	default:
		return fmt.Sprintf("Face(%d)", int(f))
	}
}

// Vertex is one cube corner as laid out in the vertex buffer:
// location 0 position, location 1 color, location 2 normal.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
	Normal   [3]float32
}

var (
	black   = [3]float32{0, 0, 0}
	red     = [3]float32{1, 0, 0}
	green   = [3]float32{0, 1, 0}
	blue    = [3]float32{0, 0, 1}
	yellow  = [3]float32{1, 1, 0}
	magenta = [3]float32{1, 0, 1}
	cyan    = [3]float32{0, 1, 1}
	white   = [3]float32{1, 1, 1}
)

var positions = [Faces * VerticesPerFace][3]float32{
	// front
	{-1, -1, +1}, {+1, -1, +1}, {-1, +1, +1}, {+1, +1, +1},
	// back
	{+1, -1, -1}, {-1, -1, -1}, {+1, +1, -1}, {-1, +1, -1},
	// right
	{+1, -1, +1}, {+1, -1, -1}, {+1, +1, +1}, {+1, +1, -1},
	// left
	{-1, -1, -1}, {-1, -1, +1}, {-1, +1, -1}, {-1, +1, +1},
	// top
	{-1, +1, +1}, {+1, +1, +1}, {-1, +1, -1}, {+1, +1, -1},
	// bottom
	{-1, -1, -1}, {+1, -1, -1}, {-1, -1, +1}, {+1, -1, +1},
}

var colors = [Faces * VerticesPerFace][3]float32{
	blue, magenta, cyan, white,
	red, black, yellow, green,
	magenta, red, white, yellow,
	black, blue, green, cyan,
	cyan, white, green, yellow,
	black, red, blue, magenta,
}

var faceNormals = [Faces][3]float32{
	Front:  {0, 0, +1},
	Back:   {0, 0, -1},
	Right:  {+1, 0, 0},
	Left:   {-1, 0, 0},
	Top:    {0, +1, 0},
	Bottom: {0, -1, 0},
}

// Indices is the triangle list, counter-clockwise front faces.
var Indices = [Faces * IndicesPerFace]uint16{
	0, 1, 2, 1, 3, 2, // front
	4, 5, 6, 5, 7, 6, // back
	8, 9, 10, 9, 11, 10, // right
	12, 13, 14, 13, 15, 14, // left
	16, 17, 18, 17, 19, 18, // top
	20, 21, 22, 21, 23, 22, // bottom
}

// Vertices returns a fresh copy of the 24 cube vertices.
func Vertices() []Vertex {
	out := make([]Vertex, len(positions))
	for i := range positions {
		out[i] = Vertex{
			Position: positions[i],
			Color:    colors[i],
			Normal:   faceNormals[i/VerticesPerFace],
		}
	}
	return out
}

// Normal returns the outward normal shared by every vertex of f.
func Normal(f Face) [3]float32 {
	return faceNormals[f]
}

// VertexBytes packs the vertex table as little-endian float32 triples.
func VertexBytes() []byte {
	verts := Vertices()
	buf := make([]byte, len(verts)*VertexStride)
	off := 0
	for _, v := range verts {
		for _, vec := range [3][3]float32{v.Position, v.Color, v.Normal} {
			for _, f := range vec {
				binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
				off += 4
			}
		}
	}
	return buf
}

// IndexBytes packs Indices as little-endian uint16.
// 36 indices are 72 bytes, already a multiple of the 4-byte copy alignment.
func IndexBytes() []byte {
	buf := make([]byte, len(Indices)*2)
	for i, idx := range Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
