// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"github.com/gogpu/wgpucube/event"
)

// EventResponse reports what the overlay made of one window event.
type EventResponse struct {
	// Consumed is set when the event targeted the overlay and should not
	// reach the scene beneath it.
	Consumed bool
	// Repaint is set when the event may change what the overlay draws.
	Repaint bool
}

// InputEvent is one input event in points.
type InputEvent interface {
	isInputEvent()
}

// PointerMove reports a new pointer position.
type PointerMove struct {
	Pos Pos2
}

// PointerPress reports a button press or release at Pos.
type PointerPress struct {
	Pos     Pos2
	Button  event.Button
	Pressed bool
}

// PointerGone reports that the pointer left the window.
type PointerGone struct{}

// ScrollInput reports scrolling in points.
type ScrollInput struct {
	Delta Vec2
}

// KeyInput reports a key press or release.
type KeyInput struct {
	Code    event.KeyCode
	Pressed bool
	Mods    event.Modifiers
}

// TextInput reports typed text.
type TextInput struct {
	Text string
}

func (PointerMove) isInputEvent()  {}
func (PointerPress) isInputEvent() {}
func (PointerGone) isInputEvent()  {}
func (ScrollInput) isInputEvent()  {}
func (KeyInput) isInputEvent()     {}
func (TextInput) isInputEvent()    {}

// RawInput is the input gathered for one UI pass.
type RawInput struct {
	ScreenRect     Rect
	PixelsPerPoint float32
	Events         []InputEvent
	Focused        bool
}

// scrollLine is the scroll distance of one wheel notch, in points.
const scrollLine = 50

// Input folds typed window events into RawInput, converting physical
// pixels to points with the current scale factor.
type Input struct {
	scale   float32
	width   uint32
	height  uint32
	pointer Pos2
	hasPtr  bool
	focused bool
	events  []InputEvent
}

// NewInput returns an Input for a window with the given scale factor.
func NewInput(scale float64) *Input {
	s := float32(scale)
	if s <= 0 {
		s = 1
	}
	return &Input{scale: s, focused: true}
}

// SetScreenSize sets the drawable size in physical pixels.
func (in *Input) SetScreenSize(width, height uint32) {
	in.width, in.height = width, height
}

// SetScale sets physical pixels per point. Non-positive values are ignored.
func (in *Input) SetScale(scale float64) {
	if scale > 0 {
		in.scale = float32(scale)
	}
}

// PixelsPerPoint returns the current scale factor.
func (in *Input) PixelsPerPoint() float32 { return in.scale }

// Push records ev. Events the overlay does not use are ignored.
func (in *Input) Push(ev event.Event) EventResponse {
	switch e := ev.(type) {
	case event.Resized:
		in.SetScreenSize(e.Width, e.Height)
		return EventResponse{Repaint: true}
	case event.ScaleFactorChanged:
		in.SetScale(e.Scale)
		return EventResponse{Repaint: true}
	case event.Focused:
		in.focused = e.Focused
		return EventResponse{Repaint: true}
	case event.PointerMoved:
		in.pointer = Pos2{float32(e.X) / in.scale, float32(e.Y) / in.scale}
		in.hasPtr = true
		in.events = append(in.events, PointerMove{Pos: in.pointer})
		return EventResponse{Repaint: true}
	case event.PointerLeft:
		in.hasPtr = false
		in.events = append(in.events, PointerGone{})
		return EventResponse{Repaint: true}
	case event.PointerButton:
		if !in.hasPtr {
			return EventResponse{}
		}
		in.events = append(in.events, PointerPress{Pos: in.pointer, Button: e.Button, Pressed: e.Pressed})
		return EventResponse{Repaint: true}
	case event.Scroll:
		in.events = append(in.events, ScrollInput{Delta: Vec2{
			X: float32(e.DX) * scrollLine,
			Y: float32(e.DY) * scrollLine,
		}})
		return EventResponse{Repaint: true}
	case event.Key:
		in.events = append(in.events, KeyInput{Code: e.Code, Pressed: e.Pressed, Mods: e.Mods})
		return EventResponse{Repaint: true}
	case event.Char:
		in.events = append(in.events, TextInput{Text: string(e.Rune)})
		return EventResponse{Repaint: true}
	default:
		return EventResponse{}
	}
}

// Take returns the input gathered since the last call and clears the
// event queue.
func (in *Input) Take() RawInput {
	raw := RawInput{
		ScreenRect: RectFromMinSize(Pos2{}, Vec2{
			X: float32(in.width) / in.scale,
			Y: float32(in.height) / in.scale,
		}),
		PixelsPerPoint: in.scale,
		Events:         in.events,
		Focused:        in.focused,
	}
	in.events = nil
	return raw
}
