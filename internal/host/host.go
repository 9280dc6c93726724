// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/wgpucube"
	"github.com/gogpu/wgpucube/app"
	"github.com/gogpu/wgpucube/event"
)

func init() {
	// GLFW calls must come from the main thread.
	runtime.LockOSThread()
}

// Host errors.
var (
	// ErrWindowExists is returned when CreateWindow is called twice.
	ErrWindowExists = errors.New("host: window already created")

	// ErrLoopClosed is returned by the proxy after the loop has stopped.
	ErrLoopClosed = errors.New("host: event loop closed")

	// ErrUnsupportedPlatform is returned where native window handles for
	// the GPU surface are not available.
	ErrUnsupportedPlatform = errors.New("host: platform has no supported window handles")
)

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
}

// Run opens GLFW, resumes handler and pumps events until the handler
// exits the loop or returns an error.
func Run(opts Options, handler app.Handler) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	l := newLoop(opts)
	defer l.close()

	if err := handler.Resumed(l); err != nil {
		return err
	}
	for !l.exit {
		if l.window != nil && l.window.redraw.Load() {
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
		}
		if err := l.dispatch(handler); err != nil {
			return err
		}
	}
	wgpucube.Logger().Info("host: event loop finished")
	return nil
}

// loop implements app.EventLoop.
type loop struct {
	opts    Options
	window  *Window
	pending []event.Event
	proxy   *proxy
	exit    bool
}

func newLoop(opts Options) *loop {
	return &loop{opts: opts, proxy: &proxy{ch: make(chan app.UserEvent, 16)}}
}

func (l *loop) CreateWindow() (app.Window, error) {
	if l.window != nil {
		return nil, ErrWindowExists
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glw, err := glfw.CreateWindow(l.opts.Width, l.opts.Height, l.opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create glfw window: %w", err)
	}
	display, handle, err := nativeHandles(glw)
	if err != nil {
		glw.Destroy()
		return nil, err
	}
	w := &Window{glw: glw, display: display, handle: handle}
	w.updateSize()
	w.updateScale()
	l.window = w
	l.installCallbacks(w)
	wgpucube.Logger().Info("host: window created", "title", l.opts.Title, "width", l.opts.Width, "height", l.opts.Height)
	return w, nil
}

func (l *loop) Exit() { l.exit = true }

func (l *loop) Proxy() app.EventProxy { return l.proxy }

func (l *loop) push(ev event.Event) { l.pending = append(l.pending, ev) }

// dispatch delivers one iteration: window events in arrival order, user
// events, a pending redraw, then AboutToWait.
func (l *loop) dispatch(handler app.Handler) error {
	events := l.pending
	l.pending = nil
	for _, ev := range events {
		if err := handler.WindowEvent(l, ev); err != nil {
			return err
		}
		if l.exit {
			return nil
		}
	}

	for drained := false; !drained; {
		select {
		case ev := <-l.proxy.ch:
			if err := handler.UserEvent(l, ev); err != nil {
				return err
			}
		default:
			drained = true
		}
	}

	if l.window != nil && l.window.redraw.CompareAndSwap(true, false) {
		if err := handler.WindowEvent(l, event.RedrawRequested{}); err != nil {
			return err
		}
		if l.exit {
			return nil
		}
	}
	handler.AboutToWait()
	return nil
}

func (l *loop) close() {
	l.proxy.closed.Store(true)
	if l.window != nil {
		l.window.glw.Destroy()
		l.window = nil
	}
}

// proxy implements app.EventProxy.
type proxy struct {
	ch     chan app.UserEvent
	closed atomic.Bool
}

func (p *proxy) Send(ev app.UserEvent) error {
	if p.closed.Load() {
		return ErrLoopClosed
	}
	p.ch <- ev
	glfw.PostEmptyEvent()
	return nil
}
