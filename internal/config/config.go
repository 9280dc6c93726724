// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the wgpucube configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate and Load for out-of-range settings.
var ErrInvalid = errors.New("config: invalid")

// Init modes.
const (
	InitBlocking = "blocking"
	InitAsync    = "async"
)

// Config is the complete application configuration.
type Config struct {
	Window  Window  `yaml:"window"`
	Overlay Overlay `yaml:"overlay"`
	Init    Init    `yaml:"init"`
	Render  Render  `yaml:"render"`
	Log     Log     `yaml:"log"`
}

// Window configures the host window.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Overlay configures the options panel.
type Overlay struct {
	Enabled bool `yaml:"enabled"`
}

// Init selects how the render context is built.
type Init struct {
	// Mode is "blocking" or "async".
	Mode string `yaml:"mode"`
}

// Render configures the GPU side.
type Render struct {
	// DeferredRedraw requests the next frame from the idle callback instead
	// of right after presenting.
	DeferredRedraw bool `yaml:"deferred_redraw"`
	// Backend is "vulkan" or "noop".
	Backend string `yaml:"backend"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window:  Window{Title: "wgpucube", Width: 1024, Height: 768},
		Overlay: Overlay{Enabled: true},
		Init:    Init{Mode: InitBlocking},
		Render:  Render{Backend: "vulkan"},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over Default. A missing file yields the
// defaults; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config: file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Init.Mode != InitBlocking && c.Init.Mode != InitAsync:
		return fmt.Errorf("%w: init.mode %q", ErrInvalid, c.Init.Mode)
	case c.Render.Backend != "vulkan" && c.Render.Backend != "noop":
		return fmt.Errorf("%w: render.backend %q", ErrInvalid, c.Render.Backend)
	case c.Log.Format != "text" && c.Log.Format != "json":
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}
	return lvl, nil
}
