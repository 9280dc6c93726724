// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "math"

// Tessellate converts shapes into indexed triangle meshes. Rectangle corners
// and glyph origins are snapped to the physical pixel grid at ppp pixels per
// point. Consecutive shapes with the same clip rectangle share a mesh; empty
// meshes are omitted. Every mesh samples FontTexture.
func Tessellate(shapes []ClippedShape, ppp float32) []ClippedMesh {
	if ppp <= 0 {
		ppp = 1
	}
	t := tessellator{ppp: ppp}
	for _, cs := range shapes {
		if t.cur == nil || t.cur.Clip != cs.Clip {
			t.flush()
			t.cur = &ClippedMesh{Clip: cs.Clip, Mesh: Mesh{Texture: FontTexture}}
		}
		t.add(cs.Shape)
	}
	t.flush()
	return t.out
}

type tessellator struct {
	ppp float32
	cur *ClippedMesh
	out []ClippedMesh
}

func (t *tessellator) flush() {
	if t.cur != nil && len(t.cur.Mesh.Indices) > 0 {
		t.out = append(t.out, *t.cur)
	}
	t.cur = nil
}

func (t *tessellator) snap(v float32) float32 {
	return float32(math.Round(float64(v*t.ppp))) / t.ppp
}

func (t *tessellator) snapPos(p Pos2) Pos2 { return Pos2{t.snap(p.X), t.snap(p.Y)} }

func (t *tessellator) add(s Shape) {
	switch s := s.(type) {
	case RectShape:
		if s.Rect.Width() <= 0 || s.Rect.Height() <= 0 || s.Fill[3] == 0 {
			return
		}
		r := Rect{Min: t.snapPos(s.Rect.Min), Max: t.snapPos(s.Rect.Max)}
		t.quad(r, Rect{Min: WhiteUV, Max: WhiteUV}, s.Fill)
	case TriangleShape:
		if s.Fill[3] == 0 {
			return
		}
		m := &t.cur.Mesh
		base := uint32(len(m.Vertices))
		for _, p := range s.Points {
			m.Vertices = append(m.Vertices, Vertex{Pos: p, UV: WhiteUV, Color: s.Fill})
		}
		m.Indices = append(m.Indices, base, base+1, base+2)
	case TextShape:
		if s.Galley == nil || s.Color[3] == 0 {
			return
		}
		origin := t.snapPos(s.Pos)
		for _, g := range s.Galley.Glyphs {
			t.quad(g.Rect.Translate(Vec2(origin)), g.UV, s.Color)
		}
	}
}

// quad appends two triangles covering r, wound clockwise in screen space.
func (t *tessellator) quad(r, uv Rect, c Color32) {
	m := &t.cur.Mesh
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: r.Min, UV: uv.Min, Color: c},
		Vertex{Pos: Pos2{r.Max.X, r.Min.Y}, UV: Pos2{uv.Max.X, uv.Min.Y}, Color: c},
		Vertex{Pos: r.Max, UV: uv.Max, Color: c},
		Vertex{Pos: Pos2{r.Min.X, r.Max.Y}, UV: Pos2{uv.Min.X, uv.Max.Y}, Color: c},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
