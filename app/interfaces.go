// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"context"

	"github.com/gogpu/wgpucube/event"
	"github.com/gogpu/wgpucube/render"
	"github.com/gogpu/wgpucube/ui"
)

// Window is a host window.
type Window interface {
	render.Window
	// RequestRedraw schedules a RedrawRequested event.
	RequestRedraw()
	// PrePresentNotify tells the host a frame is about to be presented.
	PrePresentNotify()
}

// EventLoop is the host event loop as seen from a handler.
type EventLoop interface {
	// CreateWindow creates the application window.
	CreateWindow() (Window, error)
	// Exit stops the loop after the current iteration.
	Exit()
	// Proxy returns a handle that can post user events from any goroutine.
	Proxy() EventProxy
}

// UserEvent is an application-defined event delivered through the loop.
type UserEvent interface {
	isUserEvent()
}

// EventProxy posts user events into the loop. It is safe for concurrent use.
type EventProxy interface {
	Send(ev UserEvent) error
}

// RenderContext is the per-window GPU state. *render.Context implements it.
type RenderContext interface {
	Resize(width, height uint32) error
	Render(window render.Window) error
	HandleInput(ev event.Event) ui.EventResponse
	Destroy()
}

// ContextFactory builds the render context for a window.
type ContextFactory func(ctx context.Context, window Window) (RenderContext, error)

// RenderFactory returns a ContextFactory that calls render.New with opts.
func RenderFactory(opts ...render.Option) ContextFactory {
	return func(ctx context.Context, window Window) (RenderContext, error) {
		rc, err := render.New(ctx, window, opts...)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
}

// Handler receives host callbacks. Errors returned from the callbacks are
// fatal; the host stops its loop and reports them.
type Handler interface {
	Resumed(loop EventLoop) error
	UserEvent(loop EventLoop, ev UserEvent) error
	WindowEvent(loop EventLoop, ev event.Event) error
	AboutToWait()
}

var _ RenderContext = (*render.Context)(nil)
