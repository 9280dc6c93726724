// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"fmt"
)

// ContextReady reports the result of an asynchronous context construction.
type ContextReady struct {
	Context RenderContext
	Err     error
}

func (ContextReady) isUserEvent() {}

// Initializer starts render context construction for a window. When done
// is true the construction finished inline and rc, err hold its result.
// Otherwise the result arrives later as a ContextReady sent through proxy.
type Initializer interface {
	Start(ctx context.Context, factory ContextFactory, window Window, proxy EventProxy) (rc RenderContext, done bool, err error)
}

// BlockingInitializer builds the context on the calling goroutine.
type BlockingInitializer struct{}

// Start implements Initializer.
func (BlockingInitializer) Start(ctx context.Context, factory ContextFactory, window Window, _ EventProxy) (RenderContext, bool, error) {
	rc, err := factory(ctx, window)
	return rc, true, err
}

// AsyncInitializer builds the context on a new goroutine while the loop
// keeps pumping events.
type AsyncInitializer struct{}

// Start implements Initializer.
func (AsyncInitializer) Start(ctx context.Context, factory ContextFactory, window Window, proxy EventProxy) (RenderContext, bool, error) {
	if proxy == nil {
		return nil, true, fmt.Errorf("async init: %w", ErrNoProxy)
	}
	go func() {
		rc, err := factory(ctx, window)
		if sendErr := proxy.Send(ContextReady{Context: rc, Err: err}); sendErr != nil && rc != nil {
			// The loop is gone; nobody will own the context.
			rc.Destroy()
		}
	}()
	return nil, false, nil
}
