package gfx

import (
	"time"

	"github.com/kjkrol/shaderpad/internal/platform"
)

type Event interface{}

type KeyPress struct {
	Code  uint64
	Label string
}

// MotionNotify carries the pointer position in framebuffer pixels.
type MotionNotify struct {
	X, Y float64
}

// Resize carries the logical window size and the device pixel ratio.
type Resize struct {
	Width, Height int
	PixelRatio    float64
}

// SourceEdited carries the complete fragment source after an edit.
type SourceEdited struct {
	Text string
}

// Frame asks for one render at Timestamp on the platform clock.
type Frame struct {
	Timestamp time.Duration
}

type CreateNotify struct{}
type DestroyNotify struct{}
type UnexpectedEvent struct{}

func convert(event platform.Event) Event {
	switch e := event.(type) {
	case platform.KeyPress:
		return KeyPress{Code: e.Code, Label: e.Label}
	case platform.MotionNotify:
		return MotionNotify{X: e.X, Y: e.Y}
	case platform.Resize:
		return Resize{Width: e.Width, Height: e.Height, PixelRatio: e.PixelRatio}
	case platform.SourceEdited:
		return SourceEdited{Text: e.Text}
	case platform.Frame:
		return Frame{Timestamp: e.Timestamp}
	case platform.CreateNotify:
		return CreateNotify{}
	case platform.DestroyNotify:
		return DestroyNotify{}
	default:
		return UnexpectedEvent{}
	}
}
