package gfx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/kjkrol/shaderpad/pkg/gfx"
	"github.com/kjkrol/shaderpad/pkg/gfx/gfxtest"
)

type recordingReporter struct {
	shown   []string
	cleared int
}

func (r *recordingReporter) ShowError(msg string) { r.shown = append(r.shown, msg) }
func (r *recordingReporter) ClearError()          { r.cleared++ }

func newTestSession(t *testing.T) (*gfx.Session, *gfxtest.Context, *recordingReporter) {
	t.Helper()
	engine, ctx, _ := newTestEngine(t)
	reporter := &recordingReporter{}
	return gfx.NewSession(engine, reporter), ctx, reporter
}

func TestSession_StartOrder(t *testing.T) {
	session, ctx, reporter := newTestSession(t)
	if err := session.Start(gfx.DefaultFragmentSource, "", 800, 600, 2); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !session.Engine().HasProgram() {
		t.Fatalf("default program not installed")
	}
	if got := ctx.ViewportRect(); got != [4]int{0, 0, 1600, 1200} {
		t.Fatalf("viewport = %v", got)
	}
	if len(reporter.shown) != 0 {
		t.Fatalf("unexpected errors: %v", reporter.shown)
	}
	session.OnFrame(0)
	if len(ctx.Draws) != 1 {
		t.Fatalf("expected a draw after start")
	}
}

func TestSession_StartFailsOnBrokenDefault(t *testing.T) {
	session, _, _ := newTestSession(t)
	if err := session.Start("void main() {", "", 10, 10, 1); err == nil {
		t.Fatalf("expected error for broken default shader")
	}
}

func TestSession_StartReportsBrokenInitialSource(t *testing.T) {
	session, ctx, reporter := newTestSession(t)
	if err := session.Start(gfx.DefaultFragmentSource, "void main() {", 10, 10, 1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(reporter.shown) != 1 {
		t.Fatalf("expected one reported error, got %v", reporter.shown)
	}
	session.OnFrame(time.Millisecond)
	if len(ctx.Draws) != 1 {
		t.Fatalf("default program should keep rendering")
	}
}

func TestSession_EditReportsAndClears(t *testing.T) {
	session, ctx, reporter := newTestSession(t)
	if err := session.Start(gfx.DefaultFragmentSource, "", 100, 100, 1); err != nil {
		t.Fatalf("Start: %v", err)
	}

	session.OnEditedSource("invalid{{{")
	if len(reporter.shown) != 1 {
		t.Fatalf("expected error shown, got %v", reporter.shown)
	}
	want := gfxtest.Diagnose(gfx.FragmentShader, "invalid{{{")
	if reporter.shown[0] != want || session.LastError() != want {
		t.Fatalf("shown %q, want %q", reporter.shown[0], want)
	}

	session.OnFrame(16 * time.Millisecond)
	if len(ctx.Draws) != 1 {
		t.Fatalf("failed edit stopped rendering")
	}

	session.OnEditedSource(plainShader)
	if reporter.cleared == 0 || session.LastError() != "" {
		t.Fatalf("error not cleared after successful edit")
	}
}

func TestSession_EditLinkFailure(t *testing.T) {
	session, ctx, reporter := newTestSession(t)
	if err := session.Start(gfx.DefaultFragmentSource, "", 100, 100, 1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	ctx.FailLink = true
	session.OnEditedSource(plainShader)
	if len(reporter.shown) != 1 || !strings.Contains(reporter.shown[0], "link") {
		t.Fatalf("expected link failure, got %v", reporter.shown)
	}
}

func TestSession_PointerAndClose(t *testing.T) {
	session, ctx, _ := newTestSession(t)
	if err := session.Start(gfx.DefaultFragmentSource, "", 100, 100, 1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	session.OnPointerMove(50, 80)
	session.OnFrame(0)
	draw, _ := ctx.LastDraw()
	if m := draw.Uniforms["mouse"]; m[0] != 50 || m[1] != 80 {
		t.Fatalf("mouse = %v", m)
	}

	session.Close()
	session.OnFrame(time.Second)
	session.OnEditedSource(plainShader)
	if len(ctx.Draws) != 1 {
		t.Fatalf("closed session kept drawing")
	}
	if len(ctx.LivePrograms()) != 0 {
		t.Fatalf("closed session leaked programs")
	}
}

func TestSession_NilReporter(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	session := gfx.NewSession(engine, nil)
	if err := session.Start(gfx.DefaultFragmentSource, "", 1, 1, 1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	session.OnEditedSource("{")
	if session.LastError() == "" {
		t.Fatalf("expected last error to be kept")
	}
}
