// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/wgpucube/event"
)

func (l *loop) installCallbacks(w *Window) {
	glw := w.glw
	glw.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		width, height := w.updateSize()
		l.push(event.Resized{Width: width, Height: height})
	})
	glw.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		l.push(event.ScaleFactorChanged{Scale: w.updateScale()})
	})
	glw.SetCloseCallback(func(_ *glfw.Window) {
		l.push(event.CloseRequested{})
	})
	glw.SetRefreshCallback(func(_ *glfw.Window) {
		w.RequestRedraw()
	})
	glw.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		l.push(event.Focused{Focused: focused})
	})
	glw.SetCursorPosCallback(func(g *glfw.Window, x, y float64) {
		// Cursor coordinates are in screen units; scale to framebuffer pixels.
		fw, fh := g.GetFramebufferSize()
		ww, wh := g.GetSize()
		sx, sy := 1.0, 1.0
		if ww > 0 && wh > 0 {
			sx, sy = float64(fw)/float64(ww), float64(fh)/float64(wh)
		}
		l.push(event.PointerMoved{X: x * sx, Y: y * sy})
	})
	glw.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			l.push(event.PointerLeft{})
		}
	})
	glw.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		l.push(event.PointerButton{Button: mouseButton(b), Pressed: action == glfw.Press})
	})
	glw.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		l.push(event.Scroll{DX: dx, DY: dy})
	})
	glw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		l.push(event.Key{
			Code:    keyCode(key),
			Pressed: action != glfw.Release,
			Repeat:  action == glfw.Repeat,
			Mods:    modifiers(mods),
		})
	})
	glw.SetCharCallback(func(_ *glfw.Window, r rune) {
		l.push(event.Char{Rune: r})
	})
}

func mouseButton(b glfw.MouseButton) event.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return event.ButtonLeft
	case glfw.MouseButtonRight:
		return event.ButtonRight
	case glfw.MouseButtonMiddle:
		return event.ButtonMiddle
	default:
		return event.ButtonOther
	}
}

var keyCodes = map[glfw.Key]event.KeyCode{
	glfw.KeyEscape:    event.KeyEscape,
	glfw.KeyEnter:     event.KeyEnter,
	glfw.KeyTab:       event.KeyTab,
	glfw.KeyBackspace: event.KeyBackspace,
	glfw.KeyLeft:      event.KeyLeft,
	glfw.KeyRight:     event.KeyRight,
	glfw.KeyUp:        event.KeyUp,
	glfw.KeyDown:      event.KeyDown,
	glfw.KeyHome:      event.KeyHome,
	glfw.KeyEnd:       event.KeyEnd,
}

func keyCode(k glfw.Key) event.KeyCode {
	if c, ok := keyCodes[k]; ok {
		return c
	}
	return event.KeyUnknown
}

func modifiers(m glfw.ModifierKey) event.Modifiers {
	var out event.Modifiers
	if m&glfw.ModShift != 0 {
		out |= event.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= event.ModControl
	}
	if m&glfw.ModAlt != 0 {
		out |= event.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= event.ModSuper
	}
	return out
}
