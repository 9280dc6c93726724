// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"errors"
	"testing"
)

func newTestFonts(t *testing.T, ppp float32) *Fonts {
	t.Helper()
	f, err := NewFonts(ppp, DefaultFontSize)
	if err != nil {
		t.Fatalf("NewFonts(%v) failed: %v", ppp, err)
	}
	return f
}

func TestNewFontsInvalidScale(t *testing.T) {
	for _, ppp := range []float32{0, -1} {
		if _, err := NewFonts(ppp, DefaultFontSize); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("NewFonts(%v) error = %v, want ErrInvalidScale", ppp, err)
		}
	}
}

func TestFontsAtlas(t *testing.T) {
	f := newTestFonts(t, 1)
	img := f.Image()
	if img.Width != atlasWidth {
		t.Errorf("atlas width = %d, want %d", img.Width, atlasWidth)
	}
	if img.Height <= 0 {
		t.Fatalf("atlas height = %d", img.Height)
	}
	if got, want := len(img.Pixels), img.Width*img.Height*4; got != want {
		t.Fatalf("len(Pixels) = %d, want %d", got, want)
	}
	for i := range 4 {
		if img.Pixels[i] != 255 {
			t.Fatalf("origin texel = %v, want opaque white", img.Pixels[:4])
		}
	}
	if f.LineHeight() <= 0 {
		t.Errorf("LineHeight() = %v", f.LineHeight())
	}
}

func TestFontsScaleKeepsPointMetrics(t *testing.T) {
	f1 := newTestFonts(t, 1)
	f2 := newTestFonts(t, 2)
	w1 := f1.Layout("wgpucube").Size.X
	w2 := f2.Layout("wgpucube").Size.X
	if d := (w1 - w2) / w1; d > 0.15 || d < -0.15 {
		t.Errorf("width at 1x = %v, at 2x = %v, want close in points", w1, w2)
	}
	if f2.Image().Height <= f1.Image().Height {
		t.Errorf("2x atlas height %d not larger than 1x %d", f2.Image().Height, f1.Image().Height)
	}
}

func TestLayout(t *testing.T) {
	f := newTestFonts(t, 1)

	g := f.Layout("a b")
	if len(g.Glyphs) != 2 {
		t.Fatalf("len(Glyphs) = %d, want 2 (space has no quad)", len(g.Glyphs))
	}
	if g.Glyphs[1].Rect.Min.X <= g.Glyphs[0].Rect.Min.X {
		t.Errorf("glyphs not advancing: %v then %v", g.Glyphs[0].Rect, g.Glyphs[1].Rect)
	}
	if g.Size.Y != f.LineHeight() {
		t.Errorf("Size.Y = %v, want line height %v", g.Size.Y, f.LineHeight())
	}
	for _, pg := range g.Glyphs {
		if pg.UV.Min.X < 0 || pg.UV.Max.X > 1 || pg.UV.Min.Y < 0 || pg.UV.Max.Y > 1 {
			t.Errorf("UV %v outside atlas", pg.UV)
		}
	}

	if empty := f.Layout(""); len(empty.Glyphs) != 0 || empty.Size.X != 0 {
		t.Errorf("Layout(\"\") = %+v, want empty", empty)
	}
}

func TestLayoutDegreeSign(t *testing.T) {
	f := newTestFonts(t, 1)
	deg := f.Layout("°")
	q := f.Layout("?")
	if len(deg.Glyphs) != 1 {
		t.Fatalf("len(Glyphs) = %d, want 1", len(deg.Glyphs))
	}
	if deg.Glyphs[0].UV == q.Glyphs[0].UV {
		t.Error("degree sign fell back to '?'")
	}
}

func TestLayoutMissingRune(t *testing.T) {
	f := newTestFonts(t, 1)
	got := f.Layout("世")
	want := f.Layout("?")
	if len(got.Glyphs) != 1 || got.Glyphs[0].UV != want.Glyphs[0].UV {
		t.Errorf("missing rune = %+v, want '?' glyph %+v", got.Glyphs, want.Glyphs)
	}
}
