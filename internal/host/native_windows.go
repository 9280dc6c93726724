// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package host

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/sys/windows"
)

func nativeHandles(w *glfw.Window) (display, window uintptr, err error) {
	var instance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
		return 0, 0, fmt.Errorf("get module handle: %w", err)
	}
	return uintptr(instance), uintptr(unsafe.Pointer(w.GetWin32Window())), nil
}
