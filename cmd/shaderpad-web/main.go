//go:build js && wasm

// Command shaderpad-web is the browser build: a WebGL2 canvas under a text
// area whose contents are recompiled on every edit.
package main

import (
	"log/slog"
	"os"

	"github.com/kjkrol/shaderpad/internal/platform"
	"github.com/kjkrol/shaderpad/internal/platform/native"
	"github.com/kjkrol/shaderpad/internal/renderer"
	"github.com/kjkrol/shaderpad/pkg/gfx"
)

func main() {
	// stderr ends up in the browser console
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	gfx.SetLogger(logger)

	wrapper, err := native.NewWindowWrapper(platform.WindowConfig{
		Title:         "shaderpad",
		InitialSource: gfx.DefaultFragmentSource,
	})
	if err != nil {
		logger.Error("window", "error", err)
		return
	}
	window, err := gfx.NewWindow(wrapper, renderer.NewContextFactory())
	if err != nil {
		logger.Error("window", "error", err)
		return
	}
	if err := window.Start(gfx.DefaultFragmentSource, ""); err != nil {
		logger.Error("start", "error", err)
		// keep the page alive so the message stays readable
		wrapper.ShowError(err.Error())
		select {}
	}
	defer window.Close()

	window.Show()
	window.ListenEvents(nil, gfx.CoalesceMotion())
}
