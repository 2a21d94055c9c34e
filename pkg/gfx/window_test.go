package gfx_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kjkrol/shaderpad/internal/platform"
	"github.com/kjkrol/shaderpad/pkg/gfx"
	"github.com/kjkrol/shaderpad/pkg/gfx/gfxtest"
)

// fakePlatform replays a scripted event list and records what the window
// asked of it.
type fakePlatform struct {
	script  []platform.Event
	width   int
	height  int
	ratio   float64
	now     time.Duration
	handle  any
	backing [2]int
	frames  int
	shown   []string
	cleared int
	closed  bool
}

func (p *fakePlatform) Show()  {}
func (p *fakePlatform) Close() { p.closed = true }
func (p *fakePlatform) NextEventTimeout(int) platform.Event {
	if len(p.script) == 0 {
		return platform.TimeoutEvent{}
	}
	e := p.script[0]
	p.script = p.script[1:]
	return e
}
func (p *fakePlatform) GLContext() any                   { return p.handle }
func (p *fakePlatform) Size() (int, int, float64)        { return p.width, p.height, p.ratio }
func (p *fakePlatform) SetBackingSize(width, height int) { p.backing = [2]int{width, height} }
func (p *fakePlatform) BeginFrame()                      {}
func (p *fakePlatform) EndFrame()                        { p.frames++ }
func (p *fakePlatform) Now() time.Duration               { return p.now }
func (p *fakePlatform) ShowError(message string)         { p.shown = append(p.shown, message) }
func (p *fakePlatform) ClearError()                      { p.cleared++ }

type closingContext struct {
	*gfxtest.Context
	closed bool
}

func (c *closingContext) Close() { c.closed = true }

func newTestWindow(t *testing.T, p *fakePlatform) (*gfx.Window, *closingContext) {
	t.Helper()
	ctx := &closingContext{Context: gfxtest.NewContext()}
	var gotHandle any
	p.handle = "native-handle"
	w, err := gfx.NewWindow(p, func(handle any) (gfx.Context, error) {
		gotHandle = handle
		return ctx, nil
	})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if err := w.Start(gfx.DefaultFragmentSource, ""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if gotHandle != "native-handle" {
		t.Fatalf("factory got handle %v", gotHandle)
	}
	return w, ctx
}

func TestNewWindow_RequiresPlatform(t *testing.T) {
	if _, err := gfx.NewWindow(nil, nil); err == nil {
		t.Fatalf("expected an error without a platform window")
	}
}

func TestWindow_StartWithoutContext(t *testing.T) {
	cause := errors.New("no webgl2")
	w, err := gfx.NewWindow(&fakePlatform{width: 10, height: 10, ratio: 1}, func(any) (gfx.Context, error) {
		return nil, cause
	})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	err = w.Start(gfx.DefaultFragmentSource, "")
	if !errors.Is(err, gfx.ErrNoContext) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrNoContext wrapping the cause, got %v", err)
	}
}

func TestWindow_StartUsesPlatformSize(t *testing.T) {
	p := &fakePlatform{width: 400, height: 300, ratio: 2, now: 3 * time.Second}
	w, ctx := newTestWindow(t, p)
	defer w.Close()

	if p.backing != [2]int{800, 600} {
		t.Fatalf("backing = %v, want [800 600]", p.backing)
	}
	if got := ctx.ViewportRect(); got != [4]int{0, 0, 800, 600} {
		t.Fatalf("viewport = %v", got)
	}
	if got := w.Session().Engine().Origin(); got != 3*time.Second {
		t.Fatalf("origin = %v, want platform clock", got)
	}
	if err := w.Start(gfx.DefaultFragmentSource, ""); !errors.Is(err, gfx.ErrAlreadySetUp) {
		t.Fatalf("second Start: expected ErrAlreadySetUp, got %v", err)
	}
}

func TestWindow_ListenEventsDrivesSession(t *testing.T) {
	p := &fakePlatform{width: 100, height: 100, ratio: 1}
	w, ctx := newTestWindow(t, p)
	defer w.Close()

	p.script = []platform.Event{
		platform.Resize{Width: 400, Height: 300, PixelRatio: 2},
		platform.SourceEdited{Text: "void main() {"},
		platform.Frame{Timestamp: 16 * time.Millisecond},
		platform.MotionNotify{X: 1, Y: 1},
		platform.MotionNotify{X: 2, Y: 2},
		platform.MotionNotify{X: 30, Y: 40},
		platform.SourceEdited{Text: plainShader},
		platform.Frame{Timestamp: 32 * time.Millisecond},
		platform.DestroyNotify{},
	}

	var seen []gfx.Event
	w.ListenEvents(func(e gfx.Event) { seen = append(seen, e) }, gfx.CoalesceMotion())

	if p.frames != 2 || len(ctx.Draws) != 2 {
		t.Fatalf("frames = %d draws = %d, want 2 each", p.frames, len(ctx.Draws))
	}
	if len(p.shown) != 1 || !strings.Contains(p.shown[0], "ERROR") {
		t.Fatalf("expected the compile error to be shown, got %v", p.shown)
	}
	if p.cleared != 1 {
		t.Fatalf("expected the error to be cleared after a good edit, cleared = %d", p.cleared)
	}
	draw := ctx.Draws[1]
	if res := draw.Uniforms["resolution"]; res[0] != 800 || res[1] != 600 {
		t.Fatalf("resolution = %v", res)
	}
	if x, y := w.Session().Engine().Pointer(); x != 30 || y != 40 {
		t.Fatalf("pointer = (%v, %v), want (30, 40)", x, y)
	}
	motions := 0
	for _, e := range seen {
		if _, ok := e.(gfx.MotionNotify); ok {
			motions++
		}
	}
	if motions != 1 {
		t.Fatalf("expected pointer moves to be coalesced, handler saw %d", motions)
	}
	if _, ok := seen[len(seen)-1].(gfx.DestroyNotify); !ok {
		t.Fatalf("last event = %#v, want DestroyNotify", seen[len(seen)-1])
	}
}

func TestWindow_PostRunsBeforeFrame(t *testing.T) {
	p := &fakePlatform{width: 100, height: 100, ratio: 1}
	w, ctx := newTestWindow(t, p)
	defer w.Close()

	p.script = []platform.Event{
		platform.Frame{Timestamp: time.Millisecond},
		platform.DestroyNotify{},
	}
	drawsAtUpdate := -1
	if !w.Post(func() { drawsAtUpdate = len(ctx.Draws) }) {
		t.Fatalf("Post rejected before the loop stopped")
	}
	w.ListenEvents(nil, nil)

	if drawsAtUpdate != 0 {
		t.Fatalf("posted update ran after %d draws, want before the first", drawsAtUpdate)
	}
	if w.Post(func() {}) {
		t.Fatalf("Post accepted after the loop stopped")
	}
}

func TestWindow_CloseTearsDown(t *testing.T) {
	p := &fakePlatform{width: 100, height: 100, ratio: 1}
	w, ctx := newTestWindow(t, p)

	w.Close()
	w.Close()

	if !p.closed || !ctx.closed {
		t.Fatalf("platform closed = %v, context closed = %v", p.closed, ctx.closed)
	}
	if len(ctx.LivePrograms()) != 0 || ctx.LiveBuffers() != 0 {
		t.Fatalf("engine resources leaked")
	}
	w.Session().OnFrame(time.Second)
	if len(ctx.Draws) != 0 {
		t.Fatalf("frame after close rendered")
	}
}
