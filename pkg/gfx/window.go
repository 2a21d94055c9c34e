package gfx

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/kjkrol/shaderpad/internal/platform"
)

// ContextFactory turns a platform's native context handle into a Context.
type ContextFactory func(handle any) (Context, error)

// Window drives a Session from a platform window. It is both the engine's
// Surface and the session's ErrorReporter.
type Window struct {
	platformWinWrapper platform.PlatformWindowWrapper
	factory            ContextFactory
	glCtx              Context
	session            *Session
	closed             bool

	ctx     context.Context
	cancel  context.CancelFunc
	updates chan func()
}

const maxEventWait = 50 * time.Millisecond

var errNoPlatform = errors.New("gfx: platform window wrapper is required")

func NewWindow(wrapper platform.PlatformWindowWrapper, factory ContextFactory) (*Window, error) {
	if wrapper == nil {
		return nil, errNoPlatform
	}
	w := &Window{
		platformWinWrapper: wrapper,
		factory:            factory,
		updates:            make(chan func(), 1024),
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	return w, nil
}

// Context creates the graphics context on first use.
func (w *Window) Context() (Context, error) {
	if w.glCtx != nil {
		return w.glCtx, nil
	}
	if w.factory == nil {
		return nil, ErrNoContext
	}
	c, err := w.factory(w.platformWinWrapper.GLContext())
	if err != nil {
		return nil, err
	}
	w.glCtx = c
	return c, nil
}

func (w *Window) SetBackingSize(width, height int) {
	w.platformWinWrapper.SetBackingSize(width, height)
}

func (w *Window) ShowError(message string) {
	w.platformWinWrapper.ShowError(message)
}

func (w *Window) ClearError() {
	w.platformWinWrapper.ClearError()
}

// Start creates the engine on this window and runs the session start
// sequence with the window's current size.
func (w *Window) Start(defaultSource, initialSource string) error {
	if w.session != nil {
		return fmt.Errorf("window start: %w", ErrAlreadySetUp)
	}
	width, height, ratio := w.platformWinWrapper.Size()
	engine, err := NewEngine(w, ratio, WithClock(ClockFunc(w.platformWinWrapper.Now)))
	if err != nil {
		return fmt.Errorf("window start: %w", err)
	}
	session := NewSession(engine, w)
	if err := session.Start(defaultSource, initialSource, width, height, ratio); err != nil {
		session.Close()
		return err
	}
	w.session = session
	return nil
}

func (w *Window) Session() *Session {
	return w.session
}

func (w *Window) Show() {
	w.platformWinWrapper.Show()
}

// Post schedules fn on the event loop goroutine before the next frame. It
// reports false once the loop has been stopped.
func (w *Window) Post(fn func()) bool {
	select {
	case <-w.ctx.Done():
		return false
	default:
	}
	select {
	case w.updates <- fn:
		return true
	case <-w.ctx.Done():
		return false
	}
}

func (w *Window) Stop() {
	w.cancel()
}

func (w *Window) Done() <-chan struct{} {
	return w.ctx.Done()
}

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.cancel()
	if w.session != nil {
		w.session.Close()
	}
	if c, ok := w.glCtx.(interface{ Close() }); ok {
		c.Close()
	}
	w.platformWinWrapper.Close()
}

// ListenEvents runs the loop until Stop is called or the window is closed
// by the user. The session sees every event before handleEvent does. A
// Frame ends the current batch, so posted updates and rendering run at
// least once per frame whatever the strategy.
func (w *Window) ListenEvents(handleEvent func(event Event), strategy EventsConsumerStrategy) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if strategy == nil {
		strategy = DrainAll()
	}
	frameSeen := false
	poll := func(timeoutMs int) (Event, bool) {
		if frameSeen {
			return nil, false
		}
		platformEvent := w.platformWinWrapper.NextEventTimeout(timeoutMs)
		if _, ok := platformEvent.(platform.TimeoutEvent); ok {
			return nil, false
		}
		event := convert(platformEvent)
		if _, ok := event.(Frame); ok {
			frameSeen = true
		}
		return event, true
	}
	dispatch := func(event Event) {
		w.handle(event)
		if handleEvent != nil {
			handleEvent(event)
		}
	}

	timeoutMs := int(maxEventWait / time.Millisecond)
	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			frameSeen = false
			strategy.Consume(poll, dispatch, timeoutMs)
		}
	}
}

func (w *Window) handle(event Event) {
	switch e := event.(type) {
	case Resize:
		if w.session != nil {
			w.session.OnResize(e.Width, e.Height, e.PixelRatio)
		}
	case MotionNotify:
		if w.session != nil {
			w.session.OnPointerMove(e.X, e.Y)
		}
	case SourceEdited:
		if w.session != nil {
			w.session.OnEditedSource(e.Text)
		}
	case Frame:
		w.runUpdates()
		w.platformWinWrapper.BeginFrame()
		if w.session != nil {
			w.session.OnFrame(e.Timestamp)
		}
		w.platformWinWrapper.EndFrame()
	case DestroyNotify:
		w.Stop()
	}
}

func (w *Window) runUpdates() {
	for {
		select {
		case upd := <-w.updates:
			upd()
		default:
			return
		}
	}
}
