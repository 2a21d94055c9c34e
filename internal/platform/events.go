package platform

import "time"

type Event interface{}

type KeyPress struct {
	Code  uint64
	Label string
}

// MotionNotify carries pointer coordinates in framebuffer pixels.
type MotionNotify struct {
	X, Y float64
}

// Resize reports a new logical size and device pixel ratio.
type Resize struct {
	Width, Height int
	PixelRatio    float64
}

type SourceEdited struct {
	Text string
}

type Frame struct {
	Timestamp time.Duration
}

type CreateNotify struct{}
type DestroyNotify struct{}
type UnexpectedEvent struct{}
type TimeoutEvent struct{}
