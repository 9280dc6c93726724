// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/wgpucube"
	"github.com/gogpu/wgpucube/event"
	"github.com/gogpu/wgpucube/render"
	"github.com/gogpu/wgpucube/ui"
)

// recorder collects call names in order across fakes.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.calls
	r.calls = nil
	return out
}

type fakeWindow struct {
	rec *recorder
}

func (w *fakeWindow) InnerSize() (uint32, uint32)      { return 320, 240 }
func (w *fakeWindow) ScaleFactor() float64             { return 1 }
func (w *fakeWindow) NativeHandles() (uintptr, uintptr) { return 0, 0 }
func (w *fakeWindow) RequestRedraw()                   { w.rec.add("request_redraw") }
func (w *fakeWindow) PrePresentNotify()                { w.rec.add("pre_present") }

type chanProxy struct {
	ch  chan UserEvent
	err error
}

func (p *chanProxy) Send(ev UserEvent) error {
	if p.err != nil {
		return p.err
	}
	p.ch <- ev
	return nil
}

type fakeLoop struct {
	window    *fakeWindow
	createErr error
	created   int
	exited    bool
	proxy     *chanProxy
}

func (l *fakeLoop) CreateWindow() (Window, error) {
	if l.createErr != nil {
		return nil, l.createErr
	}
	l.created++
	return l.window, nil
}

func (l *fakeLoop) Exit() { l.exited = true }

func (l *fakeLoop) Proxy() EventProxy { return l.proxy }

type fakeContext struct {
	rec       *recorder
	renderErr error
	resizeErr error
	resized   [][2]uint32
	rendered  int
	destroyed int
}

func (c *fakeContext) Resize(w, h uint32) error {
	c.rec.add("resize")
	c.resized = append(c.resized, [2]uint32{w, h})
	return c.resizeErr
}

func (c *fakeContext) Render(render.Window) error {
	c.rec.add("render")
	if c.renderErr != nil {
		return c.renderErr
	}
	c.rendered++
	return nil
}

func (c *fakeContext) HandleInput(event.Event) ui.EventResponse {
	c.rec.add("input")
	return ui.EventResponse{}
}

func (c *fakeContext) Destroy() {
	c.rec.add("destroy")
	c.destroyed++
}

type fixture struct {
	rec      *recorder
	loop     *fakeLoop
	ctx      *fakeContext
	builds   int
	buildErr error
}

func newFixture() *fixture {
	rec := &recorder{}
	return &fixture{
		rec:  rec,
		loop: &fakeLoop{window: &fakeWindow{rec: rec}, proxy: &chanProxy{ch: make(chan UserEvent, 1)}},
		ctx:  &fakeContext{rec: rec},
	}
}

func (f *fixture) factory(context.Context, Window) (RenderContext, error) {
	f.builds++
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	return f.ctx, nil
}

func resumedController(t *testing.T, f *fixture, opts ...Option) *Controller {
	t.Helper()
	c := NewController(f.factory, BlockingInitializer{}, opts...)
	if err := c.Resumed(f.loop); err != nil {
		t.Fatalf("Resumed failed: %v", err)
	}
	if _, ok := c.State().(Resumed); !ok {
		t.Fatalf("state = %s, want Resumed", c.State())
	}
	f.rec.take()
	return c
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	wgpucube.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { wgpucube.SetLogger(nil) })
	return &buf
}

func equalCalls(got, want []string) bool {
	return strings.Join(got, ",") == strings.Join(want, ",")
}

func TestStateStrings(t *testing.T) {
	for _, tt := range []struct {
		s    State
		want string
	}{
		{Uninitialized{}, "Uninitialized"},
		{Initializing{}, "Initializing"},
		{Resumed{}, "Resumed"},
		{Closed{}, "Closed"},
	} {
		if tt.s.String() != tt.want {
			t.Errorf("String() = %q, want %q", tt.s.String(), tt.want)
		}
	}
}

func TestNewControllerDefaults(t *testing.T) {
	f := newFixture()
	c := NewController(f.factory, nil)
	if _, ok := c.State().(Uninitialized); !ok {
		t.Errorf("initial state = %s, want Uninitialized", c.State())
	}
	if _, ok := c.init.(BlockingInitializer); !ok {
		t.Errorf("nil initializer = %T, want BlockingInitializer", c.init)
	}
}

func TestEventBeforeInitDropped(t *testing.T) {
	logs := captureLogs(t)
	f := newFixture()
	c := NewController(f.factory, nil)

	if err := c.WindowEvent(f.loop, event.Resized{Width: 10, Height: 10}); err != nil {
		t.Fatalf("WindowEvent in Uninitialized = %v, want nil", err)
	}
	if f.builds != 0 || len(f.ctx.resized) != 0 {
		t.Error("event in Uninitialized reached a context")
	}
	if _, ok := c.State().(Uninitialized); !ok {
		t.Errorf("state = %s, want Uninitialized", c.State())
	}
	if out := logs.String(); !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "event=Resized") {
		t.Errorf("log = %q, want an ERROR line naming Resized", out)
	}
}

func TestBlockingResume(t *testing.T) {
	f := newFixture()
	c := NewController(f.factory, BlockingInitializer{})

	if err := c.Resumed(f.loop); err != nil {
		t.Fatalf("Resumed failed: %v", err)
	}
	s, ok := c.State().(Resumed)
	if !ok {
		t.Fatalf("state = %s, want Resumed", c.State())
	}
	if s.Window != Window(f.loop.window) || s.Context != RenderContext(f.ctx) {
		t.Error("Resumed does not hold the created window and context")
	}
	if f.builds != 1 || f.loop.created != 1 {
		t.Errorf("builds = %d, windows = %d, want 1 each", f.builds, f.loop.created)
	}
	if got := f.rec.take(); !equalCalls(got, []string{"request_redraw"}) {
		t.Errorf("calls = %v, want first redraw request", got)
	}
}

func TestDuplicateResumeIsFatal(t *testing.T) {
	f := newFixture()
	c := resumedController(t, f)

	err := c.Resumed(f.loop)
	if !errors.Is(err, ErrAlreadyResumed) {
		t.Fatalf("second Resumed = %v, want ErrAlreadyResumed", err)
	}
	if f.loop.created != 1 || f.builds != 1 {
		t.Error("second resume created a window or context")
	}
}

func TestResumeErrors(t *testing.T) {
	t.Run("window", func(t *testing.T) {
		f := newFixture()
		f.loop.createErr = errors.New("no display")
		c := NewController(f.factory, nil)
		if err := c.Resumed(f.loop); !errors.Is(err, f.loop.createErr) {
			t.Errorf("err = %v, want %v", err, f.loop.createErr)
		}
		if _, ok := c.State().(Uninitialized); !ok {
			t.Errorf("state = %s, want Uninitialized", c.State())
		}
	})
	t.Run("context", func(t *testing.T) {
		f := newFixture()
		f.buildErr = errors.New("no adapter")
		c := NewController(f.factory, nil)
		if err := c.Resumed(f.loop); !errors.Is(err, f.buildErr) {
			t.Errorf("err = %v, want %v", err, f.buildErr)
		}
	})
}

func TestAsyncResume(t *testing.T) {
	logs := captureLogs(t)
	f := newFixture()
	c := NewController(f.factory, AsyncInitializer{})

	if err := c.Resumed(f.loop); err != nil {
		t.Fatalf("Resumed failed: %v", err)
	}
	if _, ok := c.State().(Initializing); !ok {
		t.Fatalf("state = %s, want Initializing", c.State())
	}

	if err := c.Resumed(f.loop); !errors.Is(err, ErrAlreadyResumed) {
		t.Errorf("resume while Initializing = %v, want ErrAlreadyResumed", err)
	}

	if err := c.WindowEvent(f.loop, event.RedrawRequested{}); err != nil {
		t.Fatalf("WindowEvent while Initializing = %v", err)
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("log = %q, want a WARN line for the dropped event", logs.String())
	}

	var ev UserEvent
	select {
	case ev = <-f.loop.proxy.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("no ContextReady posted")
	}
	if err := c.UserEvent(f.loop, ev); err != nil {
		t.Fatalf("UserEvent failed: %v", err)
	}
	if _, ok := c.State().(Resumed); !ok {
		t.Fatalf("state = %s, want Resumed", c.State())
	}
	if f.ctx.rendered != 0 {
		t.Error("redraw dropped during Initializing was rendered later")
	}
}

func TestAsyncResumeError(t *testing.T) {
	f := newFixture()
	f.buildErr = errors.New("device lost")
	c := NewController(f.factory, AsyncInitializer{})
	if err := c.Resumed(f.loop); err != nil {
		t.Fatalf("Resumed failed: %v", err)
	}
	ev := <-f.loop.proxy.ch
	if err := c.UserEvent(f.loop, ev); !errors.Is(err, f.buildErr) {
		t.Errorf("UserEvent = %v, want %v", err, f.buildErr)
	}
}

func TestAsyncWithoutProxy(t *testing.T) {
	f := newFixture()
	c := NewController(f.factory, AsyncInitializer{})
	err := c.Resumed(nilProxyLoop{f.loop})
	if !errors.Is(err, ErrNoProxy) {
		t.Errorf("err = %v, want ErrNoProxy", err)
	}
}

type nilProxyLoop struct{ *fakeLoop }

func (nilProxyLoop) Proxy() EventProxy { return nil }

func TestUnexpectedReady(t *testing.T) {
	f := newFixture()
	c := NewController(f.factory, nil)
	stray := &fakeContext{rec: f.rec}
	if err := c.UserEvent(f.loop, ContextReady{Context: stray}); !errors.Is(err, ErrUnexpectedReady) {
		t.Errorf("err = %v, want ErrUnexpectedReady", err)
	}
	if stray.destroyed != 1 {
		t.Error("stray context not destroyed")
	}
}

func TestEventsOfferedToOverlayFirst(t *testing.T) {
	f := newFixture()
	c := resumedController(t, f)

	events := []event.Event{
		event.PointerMoved{X: 1, Y: 2},
		event.Resized{Width: 640, Height: 480},
		event.RedrawRequested{},
	}
	for _, ev := range events {
		if err := c.WindowEvent(f.loop, ev); err != nil {
			t.Fatalf("WindowEvent(%s) failed: %v", event.Name(ev), err)
		}
	}
	want := []string{
		"input",
		"input", "resize",
		"input", "pre_present", "render", "request_redraw",
	}
	if got := f.rec.take(); !equalCalls(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if len(f.ctx.resized) != 1 || f.ctx.resized[0] != [2]uint32{640, 480} {
		t.Errorf("resized = %v, want [640 480]", f.ctx.resized)
	}
}

func TestContinuousRedraw(t *testing.T) {
	f := newFixture()
	c := resumedController(t, f)
	for range 5 {
		if err := c.WindowEvent(f.loop, event.RedrawRequested{}); err != nil {
			t.Fatal(err)
		}
	}
	if f.ctx.rendered != 5 {
		t.Errorf("rendered = %d, want 5", f.ctx.rendered)
	}
	requests := 0
	for _, call := range f.rec.take() {
		if call == "request_redraw" {
			requests++
		}
	}
	if requests != 5 {
		t.Errorf("redraw requests = %d, want one per frame", requests)
	}
}

func TestDeferredRedraw(t *testing.T) {
	f := newFixture()
	c := resumedController(t, f, WithDeferredRedraw(true))

	if err := c.WindowEvent(f.loop, event.RedrawRequested{}); err != nil {
		t.Fatal(err)
	}
	if got := f.rec.take(); !equalCalls(got, []string{"input", "pre_present", "render"}) {
		t.Errorf("calls = %v, want no immediate redraw request", got)
	}
	c.AboutToWait()
	if got := f.rec.take(); !equalCalls(got, []string{"request_redraw"}) {
		t.Errorf("AboutToWait calls = %v, want one redraw request", got)
	}
	c.AboutToWait()
	if got := f.rec.take(); len(got) != 0 {
		t.Errorf("second AboutToWait calls = %v, want none", got)
	}
}

func TestCloseRequested(t *testing.T) {
	f := newFixture()
	c := resumedController(t, f, WithDeferredRedraw(true))
	if err := c.WindowEvent(f.loop, event.RedrawRequested{}); err != nil {
		t.Fatal(err)
	}

	if err := c.WindowEvent(f.loop, event.CloseRequested{}); err != nil {
		t.Fatalf("CloseRequested failed: %v", err)
	}
	if !f.loop.exited {
		t.Error("loop not exited on close")
	}
	if f.ctx.destroyed != 1 {
		t.Errorf("context destroyed %d times, want 1", f.ctx.destroyed)
	}
	if _, ok := c.State().(Closed); !ok {
		t.Errorf("state after close = %s, want Closed", c.State())
	}
	f.rec.take()
	c.AboutToWait()
	if got := f.rec.take(); len(got) != 0 {
		t.Errorf("AboutToWait after close issued %v", got)
	}

	if err := c.WindowEvent(f.loop, event.RedrawRequested{}); err != nil {
		t.Errorf("WindowEvent after close = %v, want nil", err)
	}
	if got := f.rec.take(); len(got) != 0 {
		t.Errorf("event after close reached the context: %v", got)
	}
}

func TestResumeAfterCloseIsFatal(t *testing.T) {
	f := newFixture()
	c := resumedController(t, f)
	if err := c.WindowEvent(f.loop, event.CloseRequested{}); err != nil {
		t.Fatalf("CloseRequested failed: %v", err)
	}

	err := c.Resumed(f.loop)
	if !errors.Is(err, ErrAlreadyResumed) {
		t.Fatalf("Resumed after close = %v, want ErrAlreadyResumed", err)
	}
	if f.loop.created != 1 || f.builds != 1 {
		t.Errorf("windows = %d, builds = %d, want 1 each", f.loop.created, f.builds)
	}
	if _, ok := c.State().(Closed); !ok {
		t.Errorf("state = %s, want Closed", c.State())
	}
}

func TestRenderAndResizeErrors(t *testing.T) {
	f := newFixture()
	c := resumedController(t, f)

	f.ctx.renderErr = render.ErrAcquire
	if err := c.WindowEvent(f.loop, event.RedrawRequested{}); !errors.Is(err, render.ErrAcquire) {
		t.Errorf("redraw err = %v, want ErrAcquire", err)
	}
	for _, call := range f.rec.take() {
		if call == "request_redraw" {
			t.Error("failed frame requested another redraw")
		}
	}

	f.ctx.resizeErr = errors.New("configure failed")
	if err := c.WindowEvent(f.loop, event.Resized{Width: 1, Height: 1}); !errors.Is(err, f.ctx.resizeErr) {
		t.Errorf("resize err = %v, want %v", err, f.ctx.resizeErr)
	}
}

func TestUnknownUserEvent(t *testing.T) {
	f := newFixture()
	c := resumedController(t, f)
	if err := c.UserEvent(f.loop, otherUserEvent{}); err != nil {
		t.Errorf("unknown user event = %v, want nil", err)
	}
}

type otherUserEvent struct{}

func (otherUserEvent) isUserEvent() {}
