// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/wgpucube"
	"github.com/gogpu/wgpucube/event"
)

// Panel layout, in points.
const (
	PanelTitle        = "wgpucube"
	DefaultPanelWidth = 280
	MinPanelWidth     = 140
	SliderMin         = 0
	SliderMax         = 360
	DefaultSliderVal  = 3.3

	panelPadding  = 6
	titlePadding  = 4
	gridSpacingX  = 40
	gridSpacingY  = 4
	rowPadding    = 2
	resizeGrab    = 4
	sliderRail    = 4
	sliderStep    = 1
	valueGap      = 6
	triangleInset = 3
)

var (
	panelOrigin = Pos2{10, 10}

	colorPanel   = RGBA(27, 27, 27, 240)
	colorTitle   = Gray(40)
	colorStripe  = RGBA(255, 255, 255, 10)
	colorText    = Gray(210)
	colorRail    = Gray(60)
	colorFill    = RGBA(90, 170, 255, 255)
	colorHandle  = Gray(230)
	colorHandleA = RGBA(140, 200, 255, 255)
)

type widget int

const (
	widgetNone widget = iota
	widgetTitle
	widgetResize
	widgetSlider
)

// panelLayout is the rectangles of one panel pass.
type panelLayout struct {
	panel    Rect
	title    Rect
	resize   Rect
	rows     [2]Rect
	valueCol float32
	slider   Rect
	rail     Rect
	value    Pos2
}

// Context is the immediate-mode UI state for the overlay panel. It keeps
// the window position, width, collapsed state and slider value across
// frames. A Context is not safe for concurrent use.
type Context struct {
	printer *message.Printer

	fonts      *Fonts
	fontsDirty bool

	width   float32
	open    bool
	value   float64
	active  widget
	grab    float32
	pointer Pos2
	hasPtr  bool
	last    panelLayout
}

// NewContext returns a Context with the panel collapsed at its default width.
func NewContext() *Context {
	return &Context{
		printer: message.NewPrinter(language.English),
		width:   DefaultPanelWidth,
		value:   DefaultSliderVal,
	}
}

// Open reports whether the panel is expanded.
func (c *Context) Open() bool { return c.open }

// SetOpen expands or collapses the panel.
func (c *Context) SetOpen(open bool) { c.open = open }

// Width returns the panel width in points.
func (c *Context) Width() float32 { return c.width }

// SliderValue returns the slider value.
func (c *Context) SliderValue() float64 { return c.value }

// PanelRect returns the panel rectangle of the last pass.
func (c *Context) PanelRect() Rect { return c.last.panel }

// TitleRect returns the title bar rectangle of the last pass.
func (c *Context) TitleRect() Rect { return c.last.title }

// SliderRect returns the slider's interactive rectangle of the last pass.
func (c *Context) SliderRect() Rect { return c.last.slider }

// Fonts returns the current font atlas, or nil before the first pass.
func (c *Context) Fonts() *Fonts { return c.fonts }

// WantsPointerInput reports whether the pointer is over the panel or
// dragging one of its widgets.
func (c *Context) WantsPointerInput() bool {
	if c.active != widgetNone && c.active != widgetTitle {
		return true
	}
	return c.hasPtr && c.last.panel.Contains(c.pointer)
}

// Run processes input in order and returns the shapes and texture changes
// of one frame.
func (c *Context) Run(input RawInput) FullOutput {
	ppp := input.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}
	out := FullOutput{PixelsPerPoint: ppp}

	if c.fonts == nil || c.fonts.PixelsPerPoint() != ppp {
		fonts, err := NewFonts(ppp, DefaultFontSize)
		if err != nil {
			wgpucube.Logger().Error("ui: build fonts", "pixels_per_point", ppp, "err", err)
			return out
		}
		c.fonts = fonts
		c.fontsDirty = true
		wgpucube.Logger().Debug("ui: font atlas rebuilt", "pixels_per_point", ppp,
			"width", fonts.Image().Width, "height", fonts.Image().Height)
	}
	if c.fontsDirty {
		out.TexturesDelta.Set = append(out.TexturesDelta.Set, TextureSet{ID: FontTexture, Image: c.fonts.Image()})
		c.fontsDirty = false
	}

	c.last = c.layout()
	for _, ev := range input.Events {
		c.handle(ev)
		c.last = c.layout()
	}
	if !input.Focused && c.active != widgetNone {
		c.active = widgetNone
	}

	out.Shapes = c.paint(c.last)
	return out
}

func (c *Context) valueText() string {
	return c.printer.Sprintf("%.1f°", c.value)
}

func (c *Context) layout() panelLayout {
	var l panelLayout
	line := c.fonts.LineHeight()

	titleH := line + 2*titlePadding
	l.title = RectFromMinSize(panelOrigin, Vec2{c.width, titleH})
	if !c.open {
		l.panel = l.title
		return l
	}

	rowH := line + 2*rowPadding
	bodyTop := l.title.Max.Y + panelPadding
	left := panelOrigin.X + panelPadding
	right := panelOrigin.X + c.width - panelPadding
	for i := range l.rows {
		y := bodyTop + float32(i)*(rowH+gridSpacingY)
		l.rows[i] = Rect{Min: Pos2{left, y}, Max: Pos2{right, y + rowH}}
	}

	labelW := max(c.fonts.Layout("Label").Size.X, c.fonts.Layout("Slider").Size.X)
	l.valueCol = left + labelW + gridSpacingX

	valueW := c.fonts.Layout("360.0°").Size.X
	row := l.rows[1]
	railEnd := max(right-valueW-valueGap, l.valueCol+line)
	l.slider = Rect{Min: Pos2{l.valueCol, row.Min.Y}, Max: Pos2{railEnd, row.Max.Y}}
	midY := (row.Min.Y + row.Max.Y) / 2
	l.rail = Rect{
		Min: Pos2{l.slider.Min.X, midY - sliderRail/2},
		Max: Pos2{l.slider.Max.X, midY + sliderRail/2},
	}
	l.value = Pos2{railEnd + valueGap, row.Min.Y + rowPadding}

	l.panel = Rect{Min: panelOrigin, Max: Pos2{panelOrigin.X + c.width, l.rows[1].Max.Y + panelPadding}}
	l.resize = Rect{
		Min: Pos2{l.panel.Max.X - resizeGrab, l.panel.Min.Y},
		Max: Pos2{l.panel.Max.X + resizeGrab, l.panel.Max.Y},
	}
	return l
}

func (c *Context) handle(ev InputEvent) {
	switch e := ev.(type) {
	case PointerMove:
		c.pointer, c.hasPtr = e.Pos, true
		switch c.active {
		case widgetResize:
			c.width = max(e.Pos.X-panelOrigin.X+c.grab, MinPanelWidth)
		case widgetSlider:
			c.setSliderFrom(e.Pos.X)
		}
	case PointerGone:
		c.hasPtr = false
	case PointerPress:
		c.pointer, c.hasPtr = e.Pos, true
		if e.Button != event.ButtonLeft {
			return
		}
		if !e.Pressed {
			if c.active == widgetTitle && c.last.title.Contains(e.Pos) {
				c.open = !c.open
				wgpucube.Logger().Debug("ui: panel toggled", "open", c.open)
			}
			c.active = widgetNone
			return
		}
		switch {
		case c.open && c.last.resize.Contains(e.Pos):
			c.active = widgetResize
			c.grab = c.last.panel.Max.X - e.Pos.X
		case c.open && c.last.slider.Contains(e.Pos):
			c.active = widgetSlider
			c.setSliderFrom(e.Pos.X)
		case c.last.title.Contains(e.Pos):
			c.active = widgetTitle
		}
	case KeyInput:
		if !e.Pressed || !c.open || !c.hasPtr || !c.last.slider.Contains(c.pointer) {
			return
		}
		switch e.Code {
		case event.KeyLeft, event.KeyDown:
			c.setSlider(c.value - sliderStep)
		case event.KeyRight, event.KeyUp:
			c.setSlider(c.value + sliderStep)
		case event.KeyHome:
			c.setSlider(SliderMin)
		case event.KeyEnd:
			c.setSlider(SliderMax)
		}
	}
}

func (c *Context) setSliderFrom(x float32) {
	r := c.last.slider
	if r.Width() <= 0 {
		return
	}
	t := (x - r.Min.X) / r.Width()
	c.setSlider(SliderMin + float64(t)*(SliderMax-SliderMin))
}

func (c *Context) setSlider(v float64) {
	c.value = min(max(v, SliderMin), SliderMax)
}

func (c *Context) paint(l panelLayout) []ClippedShape {
	clip := l.panel
	var shapes []ClippedShape
	add := func(s Shape) { shapes = append(shapes, ClippedShape{Clip: clip, Shape: s}) }

	add(RectShape{Rect: l.panel, Fill: colorPanel})
	add(RectShape{Rect: l.title, Fill: colorTitle})

	line := c.fonts.LineHeight()
	tri := Rect{
		Min: Pos2{l.title.Min.X + titlePadding + triangleInset, l.title.Min.Y + titlePadding + triangleInset},
		Max: Pos2{l.title.Min.X + titlePadding + line - triangleInset, l.title.Min.Y + titlePadding + line - triangleInset},
	}
	if c.open {
		add(TriangleShape{Fill: colorText, Points: [3]Pos2{
			tri.Min, {tri.Max.X, tri.Min.Y}, {(tri.Min.X + tri.Max.X) / 2, tri.Max.Y},
		}})
	} else {
		add(TriangleShape{Fill: colorText, Points: [3]Pos2{
			tri.Min, {tri.Max.X, (tri.Min.Y + tri.Max.Y) / 2}, {tri.Min.X, tri.Max.Y},
		}})
	}
	add(TextShape{
		Pos:    Pos2{l.title.Min.X + titlePadding + line + titlePadding, l.title.Min.Y + titlePadding},
		Galley: c.fonts.Layout(PanelTitle),
		Color:  colorText,
	})
	if !c.open {
		return shapes
	}

	// Striped grid: odd rows get a faint background.
	add(RectShape{Rect: l.rows[1], Fill: colorStripe})
	labels := [2]string{"Label", "Slider"}
	for i, row := range l.rows {
		add(TextShape{Pos: Pos2{row.Min.X, row.Min.Y + rowPadding}, Galley: c.fonts.Layout(labels[i]), Color: colorText})
	}
	add(TextShape{
		Pos:    Pos2{l.valueCol, l.rows[0].Min.Y + rowPadding},
		Galley: c.fonts.Layout("wgpucube options"),
		Color:  colorText,
	})

	t := float32((c.value - SliderMin) / (SliderMax - SliderMin))
	knobX := l.rail.Min.X + t*l.rail.Width()
	add(RectShape{Rect: l.rail, Fill: colorRail})
	add(RectShape{Rect: Rect{Min: l.rail.Min, Max: Pos2{knobX, l.rail.Max.Y}}, Fill: colorFill})
	half := line / 2
	knobColor := colorHandle
	if c.active == widgetSlider {
		knobColor = colorHandleA
	}
	midY := (l.rail.Min.Y + l.rail.Max.Y) / 2
	add(RectShape{
		Rect: Rect{Min: Pos2{knobX - half/2, midY - half}, Max: Pos2{knobX + half/2, midY + half}},
		Fill: knobColor,
	})
	add(TextShape{Pos: l.value, Galley: c.fonts.Layout(c.valueText()), Color: colorText})
	return shapes
}
