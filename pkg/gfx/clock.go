package gfx

import "time"

// Clock yields timestamps on the same monotonic timeline the driver uses
// for frame callbacks.
type Clock interface {
	Now() time.Duration
}

type ClockFunc func() time.Duration

func (f ClockFunc) Now() time.Duration {
	return f()
}

// SystemClock measures time since its creation with the runtime's
// monotonic clock.
func SystemClock() Clock {
	start := time.Now()
	return ClockFunc(func() time.Duration {
		return time.Since(start)
	})
}
