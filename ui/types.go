// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// Pos2 is a position in points.
type Pos2 struct {
	X, Y float32
}

// Add returns p translated by v.
func (p Pos2) Add(v Vec2) Pos2 { return Pos2{p.X + v.X, p.Y + v.Y} }

// Vec2 is a size or offset in points.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle. Max is exclusive.
type Rect struct {
	Min, Max Pos2
}

// RectFromMinSize returns the rectangle at origin with the given size.
func RectFromMinSize(origin Pos2, size Vec2) Rect {
	return Rect{Min: origin, Max: origin.Add(size)}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Pos2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vec2) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// Color32 is an 8-bit RGBA color with premultiplied alpha.
type Color32 [4]uint8

// RGBA returns the premultiplied color for straight-alpha components.
func RGBA(r, g, b, a uint8) Color32 {
	mul := func(c uint8) uint8 { return uint8((uint16(c)*uint16(a) + 127) / 255) }
	return Color32{mul(r), mul(g), mul(b), a}
}

// Gray returns an opaque gray.
func Gray(l uint8) Color32 { return Color32{l, l, l, 255} }

// TextureID names a texture managed through TexturesDelta.
type TextureID uint64

// ImageData is a full RGBA8 image, premultiplied alpha, row-major.
type ImageData struct {
	Width, Height int
	Pixels        []byte
}

// TextureSet is one texture upload.
type TextureSet struct {
	ID    TextureID
	Image ImageData
}

// TexturesDelta lists textures to upload before painting a frame and
// textures to free after it has been submitted.
type TexturesDelta struct {
	Set  []TextureSet
	Free []TextureID
}

// IsEmpty reports whether the delta carries no work.
func (d TexturesDelta) IsEmpty() bool { return len(d.Set) == 0 && len(d.Free) == 0 }

// Shape is a paintable primitive in points.
type Shape interface {
	isShape()
}

// RectShape is a filled rectangle.
type RectShape struct {
	Rect Rect
	Fill Color32
}

// TriangleShape is a filled triangle.
type TriangleShape struct {
	Points [3]Pos2
	Fill   Color32
}

// TextShape is a laid out run of text with its top-left corner at Pos.
type TextShape struct {
	Pos    Pos2
	Galley *Galley
	Color  Color32
}

func (RectShape) isShape()     {}
func (TriangleShape) isShape() {}
func (TextShape) isShape()     {}

// ClippedShape is a shape with the rectangle it is clipped to.
type ClippedShape struct {
	Clip  Rect
	Shape Shape
}

// Vertex is one tessellated vertex: position in points, atlas UV and color.
type Vertex struct {
	Pos   Pos2
	UV    Pos2
	Color Color32
}

// Mesh is an indexed triangle list sampling one texture.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Texture  TextureID
}

// ClippedMesh is a mesh with its clip rectangle in points.
type ClippedMesh struct {
	Clip Rect
	Mesh Mesh
}

// FullOutput is everything one UI pass produced.
type FullOutput struct {
	Shapes         []ClippedShape
	TexturesDelta  TexturesDelta
	PixelsPerPoint float32
}
