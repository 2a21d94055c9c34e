package platform

import "time"

type WindowConfig struct {
	Width  int
	Height int
	Title  string
	// InitialSource prefills the editor on platforms that have one.
	InitialSource string
}

// PlatformWindowWrapper is a native window with a GL-capable drawing
// surface. All methods must be called from the goroutine that created it.
type PlatformWindowWrapper interface {
	Show()
	Close()
	// NextEventTimeout returns the next pending event, waiting at most
	// timeoutMs for one. Platforms that pace frames themselves return Frame
	// events from here.
	NextEventTimeout(timeoutMs int) Event
	// GLContext returns the native handle the renderer backend binds to.
	GLContext() any
	// Size returns the logical size and the physical pixels per logical one.
	Size() (width, height int, ratio float64)
	SetBackingSize(width, height int)
	BeginFrame()
	EndFrame()
	// Now reads the clock Frame timestamps are taken from.
	Now() time.Duration
	ShowError(message string)
	ClearError()
}
