// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/cube.wgsl
var cubeShaderSource string

//go:embed shaders/overlay.wgsl
var overlayShaderSource string

// ErrEmptyShader is returned when a shader source is empty.
var ErrEmptyShader = errors.New("gpu: shader source is empty")

// validateWGSL runs the WGSL source through naga so that syntax and type
// errors surface with a readable message before any backend sees them.
func validateWGSL(label, source string) error {
	if source == "" {
		return fmt.Errorf("%s: %w", label, ErrEmptyShader)
	}
	if _, err := naga.Compile(source); err != nil {
		return fmt.Errorf("validate %s: %w", label, err)
	}
	return nil
}

// createShaderModule validates source and creates a shader module from it.
func createShaderModule(device hal.Device, label, source string) (hal.ShaderModule, error) {
	if err := validateWGSL(label, source); err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return module, nil
}
