// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package event defines the typed window events delivered by a host.
//
// Positions and sizes are in physical pixels. The set is closed: only types
// in this package implement Event.
package event

import "fmt"

// Event is a window event.
type Event interface {
	isEvent()
}

// Resized reports a new drawable size.
type Resized struct {
	Width, Height uint32
}

// CloseRequested reports that the user asked to close the window.
type CloseRequested struct{}

// RedrawRequested asks the application to draw one frame.
type RedrawRequested struct{}

// ScaleFactorChanged reports a new ratio of physical pixels to logical points.
type ScaleFactorChanged struct {
	Scale float64
}

// Focused reports keyboard focus gained or lost.
type Focused struct {
	Focused bool
}

// PointerMoved reports the cursor position within the window.
type PointerMoved struct {
	X, Y float64
}

// PointerLeft reports that the cursor left the window.
type PointerLeft struct{}

// PointerButton reports a mouse button press or release at the last
// known cursor position.
type PointerButton struct {
	Button  Button
	Pressed bool
}

// Scroll reports wheel or touchpad scrolling, in lines.
type Scroll struct {
	DX, DY float64
}

// Key reports a key press, repeat or release.
type Key struct {
	Code    KeyCode
	Pressed bool
	Repeat  bool
	Mods    Modifiers
}

// Char reports text input.
type Char struct {
	Rune rune
}

func (Resized) isEvent()            {}
func (CloseRequested) isEvent()     {}
func (RedrawRequested) isEvent()    {}
func (ScaleFactorChanged) isEvent() {}
func (Focused) isEvent()            {}
func (PointerMoved) isEvent()       {}
func (PointerLeft) isEvent()        {}
func (PointerButton) isEvent()      {}
func (Scroll) isEvent()             {}
func (Key) isEvent()                {}
func (Char) isEvent()               {}

// Button is a mouse button.
type Button int

// Mouse buttons.
const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// KeyCode identifies a physical key. Only keys the overlay reacts to are
// named; everything else arrives as KeyUnknown.
type KeyCode int

// Key codes.
const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

// Modifier bits.
const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Name returns a short description of ev for logging.
func Name(ev Event) string {
	switch ev.(type) {
	case Resized:
		return "Resized"
	case CloseRequested:
		return "CloseRequested"
	case RedrawRequested:
		return "RedrawRequested"
	case ScaleFactorChanged:
		return "ScaleFactorChanged"
	case Focused:
		return "Focused"
	case PointerMoved:
		return "PointerMoved"
	case PointerLeft:
		return "PointerLeft"
	case PointerButton:
		return "PointerButton"
	case Scroll:
		return "Scroll"
	case Key:
		return "Key"
	case Char:
		return "Char"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
