//go:build !js

// Command shaderpad renders a fragment shader file in a window and reloads
// it whenever the file changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/kjkrol/shaderpad/internal/config"
	"github.com/kjkrol/shaderpad/internal/platform"
	"github.com/kjkrol/shaderpad/internal/platform/native"
	"github.com/kjkrol/shaderpad/internal/renderer"
	"github.com/kjkrol/shaderpad/internal/watch"
	"github.com/kjkrol/shaderpad/pkg/gfx"
)

// GLFW must run on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "shaderpad:", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("shaderpad", flag.ExitOnError)
	flags := config.BindFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: shaderpad [flags] [shader.frag]\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(flags.Path)
	if err != nil {
		return err
	}
	flags.Apply(&cfg)
	if fs.NArg() > 0 {
		cfg.Shader.Path = fs.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(cfg.Log.Handler(os.Stderr))
	slog.SetDefault(logger)
	gfx.SetLogger(logger)

	var initial string
	if cfg.Shader.Path != "" {
		data, err := os.ReadFile(cfg.Shader.Path)
		if err != nil {
			return fmt.Errorf("read shader: %w", err)
		}
		initial = string(data)
	}

	wrapper, err := native.NewWindowWrapper(platform.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
	})
	if err != nil {
		return err
	}
	window, err := gfx.NewWindow(wrapper, renderer.NewContextFactory())
	if err != nil {
		wrapper.Close()
		return err
	}
	defer window.Close()

	if err := window.Start(gfx.DefaultFragmentSource, initial); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		select {
		case <-ctx.Done():
			window.Stop()
		case <-window.Done():
		}
	}()

	if cfg.Shader.Path != "" {
		source, err := watch.New(cfg.Shader.Path, func(text string) {
			window.Post(func() { window.Session().OnEditedSource(text) })
		}, watch.WithDebounce(cfg.Watch.Debounce), watch.WithLogger(logger))
		if err != nil {
			return err
		}
		go func() {
			if err := source.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("shader watcher stopped", "error", err)
			}
		}()
		logger.Info("watching shader", "path", source.Path())
	}

	window.Show()
	window.ListenEvents(func(event gfx.Event) {
		handleEvent(event, window)
	}, gfx.CoalesceMotion())

	cancel()
	logger.Info("shaderpad closed")
	return nil
}

func handleEvent(event gfx.Event, window *gfx.Window) {
	switch e := event.(type) {
	case gfx.KeyPress:
		if e.Label == "Escape" {
			window.Stop()
		}
	case gfx.Resize:
		slog.Debug("window resized", "width", e.Width, "height", e.Height, "ratio", e.PixelRatio)
	case gfx.DestroyNotify:
		slog.Debug("window closed")
	}
}
