// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command wgpucube opens a window with a rotating cube and an options panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/wgpucube"
	"github.com/gogpu/wgpucube/app"
	"github.com/gogpu/wgpucube/internal/config"
	"github.com/gogpu/wgpucube/internal/host"
	"github.com/gogpu/wgpucube/render"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "wgpucube:", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	wgpucube.SetLogger(logger)

	backend, err := render.BackendByName(cfg.Render.Backend)
	if err != nil {
		return err
	}
	factory := app.RenderFactory(
		render.WithBackend(backend),
		render.WithOverlay(cfg.Overlay.Enabled),
	)

	var initializer app.Initializer = app.BlockingInitializer{}
	if cfg.Init.Mode == config.InitAsync {
		initializer = app.AsyncInitializer{}
	}
	controller := app.NewController(factory, initializer,
		app.WithContext(context.Background()),
		app.WithDeferredRedraw(cfg.Render.DeferredRedraw),
	)

	return host.Run(host.Options{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}, controller)
}

// parseConfig loads the config file and applies the flags that were set.
func parseConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("wgpucube", flag.ContinueOnError)
	var (
		path     = fs.String("config", "", "path to a YAML config file")
		width    = fs.Int("width", 0, "window width")
		height   = fs.Int("height", 0, "window height")
		backend  = fs.String("backend", "", "GPU backend: vulkan or noop")
		async    = fs.Bool("async", false, "build the render context asynchronously")
		overlay  = fs.Bool("overlay", true, "show the options panel")
		deferred = fs.Bool("deferred-redraw", false, "request redraws from the idle callback")
		level    = fs.String("log-level", "", "log level: debug, info, warn, error")
		format   = fs.String("log-format", "", "log format: text or json")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return config.Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "backend":
			cfg.Render.Backend = *backend
		case "async":
			cfg.Init.Mode = config.InitBlocking
			if *async {
				cfg.Init.Mode = config.InitAsync
			}
		case "overlay":
			cfg.Overlay.Enabled = *overlay
		case "deferred-redraw":
			cfg.Render.DeferredRedraw = *deferred
		case "log-level":
			cfg.Log.Level = *level
		case "log-format":
			cfg.Log.Format = *format
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(c config.Log, w io.Writer) (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
