// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host runs the desktop window and event loop on GLFW.
//
// GLFW must be driven from the process main thread, so the package locks
// the main goroutine to its OS thread at init. [Run] must be called from
// main.
package host
