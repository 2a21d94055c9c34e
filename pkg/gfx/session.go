package gfx

import (
	"errors"
	"fmt"
	"time"
)

// ErrorReporter shows shader diagnostics to the user.
type ErrorReporter interface {
	ShowError(message string)
	ClearError()
}

type nopReporter struct{}

func (nopReporter) ShowError(string) {}
func (nopReporter) ClearError()      {}

// Session connects a UI driver to an Engine. Its methods are the only entry
// points drivers call: edits, resizes, pointer moves and frames.
type Session struct {
	engine   *Engine
	reporter ErrorReporter
	lastErr  string
	closed   bool
}

func NewSession(engine *Engine, reporter ErrorReporter) *Session {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Session{engine: engine, reporter: reporter}
}

// Start sets the engine up in the required order: quad upload, default
// program, initial source, then the first viewport. The default source must
// compile; a broken initial source is only reported and the default keeps
// rendering.
func (s *Session) Start(defaultSource, initialSource string, width, height int, dpr float64) error {
	if err := s.engine.Setup(); err != nil {
		return fmt.Errorf("session start: %w", err)
	}
	if err := s.engine.CompileAndLink(defaultSource); err != nil {
		return fmt.Errorf("session start: default shader: %w", err)
	}
	if initialSource != "" && initialSource != defaultSource {
		s.OnEditedSource(initialSource)
	}
	s.OnResize(width, height, dpr)
	return nil
}

// OnEditedSource recompiles the program from new fragment source. Compile
// errors go to the reporter verbatim; the previous program keeps rendering.
func (s *Session) OnEditedSource(text string) {
	if s.closed {
		return
	}
	err := s.engine.CompileAndLink(text)
	if err == nil {
		s.lastErr = ""
		s.reporter.ClearError()
		return
	}
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		Logger().Warn("gfx: shader edit rejected", "stage", compileErr.Stage.String(), "log", compileErr.Log)
	} else {
		Logger().Error("gfx: shader edit failed", "error", err)
	}
	s.lastErr = err.Error()
	s.reporter.ShowError(s.lastErr)
}

func (s *Session) OnResize(width, height int, dpr float64) {
	if s.closed {
		return
	}
	s.engine.UpdateViewport(width, height, dpr)
}

func (s *Session) OnPointerMove(x, y float64) {
	if s.closed {
		return
	}
	s.engine.UpdatePointer(x, y)
}

func (s *Session) OnFrame(now time.Duration) {
	if s.closed {
		return
	}
	s.engine.Render(now)
}

// LastError returns the message currently shown to the user, if any.
func (s *Session) LastError() string {
	return s.lastErr
}

func (s *Session) Engine() *Engine {
	return s.engine
}

func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.engine.Close()
}
