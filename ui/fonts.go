// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidScale is returned when fonts are built for a non-positive
// pixels-per-point value.
var ErrInvalidScale = errors.New("ui: pixels per point must be positive")

// DefaultFontSize is the body text size in points.
const DefaultFontSize = 14

const (
	atlasWidth = 512
	whiteSize  = 3
	cellPad    = 1
)

// atlasRunes lists every rune rasterized into the atlas.
var atlasRunes = func() []rune {
	rs := make([]rune, 0, 96)
	for r := rune(0x20); r < 0x7F; r++ {
		rs = append(rs, r)
	}
	return append(rs, '°')
}()

type glyphInfo struct {
	uv      Rect
	size    Vec2
	advance float32
}

// Fonts rasterizes Go Regular at one pixels-per-point scale into a
// single RGBA atlas. Glyph cells are one advance wide and one line tall, so
// a laid out glyph is a single quad at the pen position.
type Fonts struct {
	ppp        float32
	size       float32
	face       font.Face
	atlas      *image.RGBA
	glyphs     map[rune]glyphInfo
	lineHeight float32
}

// NewFonts builds the atlas for text of size points at ppp pixels per point.
func NewFonts(ppp, size float32) (*Fonts, error) {
	if ppp <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, ppp)
	}
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size * ppp),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	f := &Fonts{
		ppp:    ppp,
		size:   size,
		face:   face,
		glyphs: make(map[rune]glyphInfo, len(atlasRunes)),
	}
	f.rasterize()
	return f, nil
}

// PixelsPerPoint returns the scale the atlas was built for.
func (f *Fonts) PixelsPerPoint() float32 { return f.ppp }

// LineHeight returns the height of one text line in points.
func (f *Fonts) LineHeight() float32 { return f.lineHeight }

// WhiteUV is the atlas coordinate of opaque white, used by untextured
// fills. The block at the atlas origin is white, so clamped linear sampling
// at the corner returns white exactly.
var WhiteUV = Pos2{}

// FontTexture is the texture ID the font atlas is uploaded under.
const FontTexture TextureID = 0

// Image returns the atlas pixels.
func (f *Fonts) Image() ImageData {
	b := f.atlas.Bounds()
	return ImageData{Width: b.Dx(), Height: b.Dy(), Pixels: f.atlas.Pix}
}

func (f *Fonts) rasterize() {
	metrics := f.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	cellH := metrics.Height.Ceil()

	// Shelf-pack cells left to right after the white block.
	type placed struct {
		r    rune
		cell image.Rectangle
	}
	cells := make([]placed, 0, len(atlasRunes))
	x, y := whiteSize+cellPad, 0
	for _, r := range atlasRunes {
		adv, ok := f.face.GlyphAdvance(r)
		if !ok {
			continue
		}
		w := max(adv.Ceil(), 1)
		if x+w > atlasWidth {
			x = 0
			y += cellH + cellPad
		}
		cells = append(cells, placed{r: r, cell: image.Rect(x, y, x+w, y+cellH)})
		x += w + cellPad
	}
	height := y + cellH

	f.atlas = image.NewRGBA(image.Rect(0, 0, atlasWidth, height))
	draw.Draw(f.atlas, image.Rect(0, 0, whiteSize, whiteSize), image.White, image.Point{}, draw.Src)

	for _, p := range cells {
		dot := fixed.P(p.cell.Min.X, p.cell.Min.Y+ascent)
		dr, mask, maskp, adv, ok := f.face.Glyph(dot, p.r)
		if !ok {
			continue
		}
		if clip := dr.Intersect(p.cell); !clip.Empty() {
			draw.DrawMask(f.atlas, clip, image.White, image.Point{}, mask, maskp.Add(clip.Min.Sub(dr.Min)), draw.Over)
		}
		f.glyphs[p.r] = glyphInfo{
			uv: Rect{
				Min: Pos2{float32(p.cell.Min.X) / atlasWidth, float32(p.cell.Min.Y) / float32(height)},
				Max: Pos2{float32(p.cell.Max.X) / atlasWidth, float32(p.cell.Max.Y) / float32(height)},
			},
			size:    Vec2{float32(p.cell.Dx()) / f.ppp, float32(cellH) / f.ppp},
			advance: float32(adv) / 64 / f.ppp,
		}
	}
	f.lineHeight = float32(cellH) / f.ppp
}

// PlacedGlyph is one glyph quad of a Galley, relative to its top-left.
type PlacedGlyph struct {
	Rect Rect
	UV   Rect
}

// Galley is a laid out single line of text.
type Galley struct {
	Text   string
	Glyphs []PlacedGlyph
	Size   Vec2
}

// Layout lays text out on one line. Runes missing from the atlas are
// drawn as '?'.
func (f *Fonts) Layout(text string) *Galley {
	g := &Galley{Text: text, Size: Vec2{Y: f.lineHeight}}
	var pen float32
	prev := rune(-1)
	for _, r := range text {
		info, ok := f.glyphs[r]
		if !ok {
			r = '?'
			info = f.glyphs[r]
		}
		if prev >= 0 {
			pen += float32(f.face.Kern(prev, r)) / 64 / f.ppp
		}
		if r != ' ' {
			g.Glyphs = append(g.Glyphs, PlacedGlyph{
				Rect: RectFromMinSize(Pos2{X: pen}, info.size),
				UV:   info.uv,
			})
		}
		pen += info.advance
		prev = r
	}
	g.Size.X = pen
	return g
}
