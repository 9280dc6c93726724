// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpucube

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wgpucube/internal/gpu"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while the event loop and the async context
// initializer are logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for wgpucube and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: GPU resource diagnostics (buffer sizes, pipelines)
//   - [slog.LevelInfo]: lifecycle (adapter selected, surface configured, state changes)
//   - [slog.LevelWarn]: dropped events, zero-area surfaces
//   - [slog.LevelError]: events delivered before the application resumed
//
// Example:
//
//	wgpucube.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gpu.SetLogger(l)
}

// Logger returns the current logger.
// Sub-packages (render, app, ui) call this to share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
