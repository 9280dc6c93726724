// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/wgpucube"
	"github.com/gogpu/wgpucube/event"
)

// Controller errors.
var (
	// ErrAlreadyResumed is returned when a resume arrives after the first
	// one, including after close. It is unrecoverable.
	ErrAlreadyResumed = errors.New("app: resumed more than once")

	// ErrUnexpectedReady is returned for a ContextReady outside
	// Initializing.
	ErrUnexpectedReady = errors.New("app: context ready outside initialization")

	// ErrNoProxy is returned when asynchronous initialization has no
	// event proxy to report through.
	ErrNoProxy = errors.New("app: event loop has no proxy")
)

// Option configures a Controller.
type Option func(*Controller)

// WithDeferredRedraw delays the redraw request that follows each frame
// until AboutToWait. Hosts that drop redraw requests issued while a redraw
// is being handled need this.
func WithDeferredRedraw(deferred bool) Option {
	return func(c *Controller) { c.deferred = deferred }
}

// WithContext sets the context passed to the ContextFactory.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// Controller drives one window and its render context through the
// Uninitialized, Initializing and Resumed states, ending in Closed.
//
// Controller is NOT safe for concurrent use. All methods must be called
// from the event loop thread.
type Controller struct {
	factory ContextFactory
	init    Initializer
	ctx     context.Context

	state         State
	deferred      bool
	redrawPending bool
}

// NewController returns a controller in Uninitialized. A nil initializer
// uses BlockingInitializer.
func NewController(factory ContextFactory, initializer Initializer, opts ...Option) *Controller {
	if initializer == nil {
		initializer = BlockingInitializer{}
	}
	c := &Controller{
		factory: factory,
		init:    initializer,
		ctx:     context.Background(),
		state:   Uninitialized{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Resumed handles the host resume signal. Only the first resume is legal.
func (c *Controller) Resumed(loop EventLoop) error {
	if _, ok := c.state.(Uninitialized); !ok {
		wgpucube.Logger().Error("app: duplicate resume", "state", c.state.String())
		return fmt.Errorf("%w: state %s", ErrAlreadyResumed, c.state)
	}

	window, err := loop.CreateWindow()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	c.transition(Initializing{Window: window})

	rc, done, err := c.init.Start(c.ctx, c.factory, window, loop.Proxy())
	if !done {
		return nil
	}
	return c.finishInit(rc, err)
}

// UserEvent handles events posted through the loop proxy.
func (c *Controller) UserEvent(_ EventLoop, ev UserEvent) error {
	switch e := ev.(type) {
	case ContextReady:
		if _, ok := c.state.(Initializing); !ok {
			if e.Context != nil {
				e.Context.Destroy()
			}
			return fmt.Errorf("%w: state %s", ErrUnexpectedReady, c.state)
		}
		return c.finishInit(e.Context, e.Err)
	default:
		wgpucube.Logger().Warn("app: unknown user event dropped", "event", fmt.Sprintf("%T", ev))
		return nil
	}
}

func (c *Controller) finishInit(rc RenderContext, err error) error {
	pending, ok := c.state.(Initializing)
	if !ok {
		return fmt.Errorf("%w: state %s", ErrUnexpectedReady, c.state)
	}
	if err != nil {
		return fmt.Errorf("create render context: %w", err)
	}
	c.transition(Resumed{Window: pending.Window, Context: rc})
	pending.Window.RequestRedraw()
	return nil
}

// WindowEvent handles one window event. Events before Resumed are dropped.
func (c *Controller) WindowEvent(loop EventLoop, ev event.Event) error {
	switch s := c.state.(type) {
	case Uninitialized:
		wgpucube.Logger().Error("app: window event before initialization, dropped", "event", event.Name(ev))
		return nil
	case Initializing:
		wgpucube.Logger().Warn("app: window event during initialization, dropped", "event", event.Name(ev))
		return nil
	case Resumed:
		return c.resumedEvent(loop, s, ev)
	case Closed:
		wgpucube.Logger().Debug("app: window event after close, dropped", "event", event.Name(ev))
		return nil
	default:
		return nil
	}
}

func (c *Controller) resumedEvent(loop EventLoop, s Resumed, ev event.Event) error {
	// Response is unused: nothing here is withheld from the overlay.
	_ = s.Context.HandleInput(ev)

	switch e := ev.(type) {
	case event.Resized:
		if err := s.Context.Resize(e.Width, e.Height); err != nil {
			return fmt.Errorf("resize: %w", err)
		}
	case event.CloseRequested:
		s.Context.Destroy()
		c.redrawPending = false
		c.transition(Closed{})
		loop.Exit()
	case event.RedrawRequested:
		s.Window.PrePresentNotify()
		if err := s.Context.Render(s.Window); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if c.deferred {
			c.redrawPending = true
		} else {
			s.Window.RequestRedraw()
		}
	}
	return nil
}

// AboutToWait is called when the loop has drained its events. It issues a
// deferred redraw request.
func (c *Controller) AboutToWait() {
	if !c.redrawPending {
		return
	}
	c.redrawPending = false
	if s, ok := c.state.(Resumed); ok {
		s.Window.RequestRedraw()
	}
}

func (c *Controller) transition(next State) {
	wgpucube.Logger().Info("app: state changed", "from", c.state.String(), "to", next.String())
	c.state = next
}

var _ Handler = (*Controller)(nil)
