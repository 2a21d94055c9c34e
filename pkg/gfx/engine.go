package gfx

import (
	"fmt"
	"time"
)

// Engine draws a single fragment shader over the whole surface.
//
// An Engine is not safe for concurrent use. Frame, edit, pointer and resize
// callbacks must all run on the goroutine that owns the graphics context.
type Engine struct {
	surface Surface
	ctx     Context
	clock   Clock
	origin  time.Duration

	quad     Buffer
	setUp    bool
	closed   bool
	current  Program
	uniforms uniformBindings

	viewport Viewport
	pointerX float64
	pointerY float64
}

type EngineOption func(*Engine)

// WithClock sets the clock the frame origin is read from. Render timestamps
// must come from the same clock.
func WithClock(c Clock) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// NewEngine binds an engine to the surface's graphics context. It fails
// with ErrNoContext when the surface cannot provide one.
func NewEngine(surface Surface, dpr float64, opts ...EngineOption) (*Engine, error) {
	if surface == nil {
		return nil, fmt.Errorf("new engine: %w", ErrNoContext)
	}
	ctx, err := surface.Context()
	if err != nil {
		return nil, fmt.Errorf("new engine: %w: %w", ErrNoContext, err)
	}
	if ctx == nil {
		return nil, fmt.Errorf("new engine: %w", ErrNoContext)
	}
	e := &Engine{
		surface:  surface,
		ctx:      ctx,
		viewport: newViewport(dpr),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = SystemClock()
	}
	e.origin = e.clock.Now()
	return e, nil
}

// Setup uploads the full-screen quad. It must be called once, before the
// first CompileAndLink.
func (e *Engine) Setup() error {
	if e.closed {
		return ErrClosed
	}
	if e.setUp {
		return ErrAlreadySetUp
	}
	e.quad = uploadQuad(e.ctx)
	e.setUp = true
	Logger().Debug("gfx: quad uploaded", "buffer", e.quad)
	return nil
}

// CompileAndLink builds a program from the engine's vertex stage and the
// given fragment source and makes it current. On failure it returns a
// *CompileError and the previous program stays current.
func (e *Engine) CompileAndLink(fragmentSource string) error {
	if e.closed {
		return ErrClosed
	}
	if !e.setUp {
		return ErrNotSetUp
	}

	vs := e.compile(VertexShader, VertexSource)
	defer e.ctx.DeleteShader(vs)
	if !e.ctx.ShaderCompiled(vs) {
		Logger().Warn("gfx: vertex stage failed to compile", "log", e.ctx.ShaderInfoLog(vs))
	}

	fs := e.compile(FragmentShader, fragmentSource)
	defer e.ctx.DeleteShader(fs)
	if !e.ctx.ShaderCompiled(fs) {
		return &CompileError{Stage: FragmentShader, Log: e.ctx.ShaderInfoLog(fs)}
	}

	p := e.ctx.CreateProgram()
	e.ctx.AttachShader(p, vs)
	e.ctx.AttachShader(p, fs)
	e.ctx.LinkProgram(p)
	if !e.ctx.ProgramLinked(p) {
		Logger().Debug("gfx: link failed", "log", e.ctx.ProgramInfoLog(p))
		e.ctx.DeleteProgram(p)
		return &CompileError{Stage: StageLink, Log: LinkFailedMessage}
	}

	e.installProgram(p)
	return nil
}

func (e *Engine) compile(t ShaderType, source string) Shader {
	s := e.ctx.CreateShader(t)
	e.ctx.ShaderSource(s, source)
	e.ctx.CompileShader(s)
	return s
}

// installProgram is the only place the current program changes.
func (e *Engine) installProgram(p Program) {
	previous := e.current
	if previous != 0 {
		e.ctx.DeleteProgram(previous)
	}
	e.current = p
	bindQuadAttrib(e.ctx, p, e.quad)
	e.uniforms = resolveUniforms(e.ctx, p)
	Logger().Info("gfx: program installed", "program", p, "replaced", previous)
}

// UpdateViewport resizes the surface backing store to the logical size
// scaled by dpr and points the context viewport at it.
func (e *Engine) UpdateViewport(width, height int, dpr float64) {
	if e.closed {
		return
	}
	if e.viewport.resize(width, height, dpr) {
		Logger().Debug("gfx: viewport resized",
			"width", e.viewport.backing.X,
			"height", e.viewport.backing.Y,
			"ratio", e.viewport.ratio,
		)
	}
	w, h := int(e.viewport.backing.X), int(e.viewport.backing.Y)
	e.surface.SetBackingSize(w, h)
	e.ctx.Viewport(0, 0, w, h)
}

// UpdatePointer records the pointer position in backing pixels.
func (e *Engine) UpdatePointer(x, y float64) {
	e.pointerX = x
	e.pointerY = y
}

// Render draws one frame at the given timestamp. It does nothing until a
// program has been installed.
func (e *Engine) Render(now time.Duration) {
	if e.closed || e.current == 0 {
		return
	}
	if e.uniforms.program != e.current {
		e.uniforms = resolveUniforms(e.ctx, e.current)
	}
	e.ctx.UseProgram(e.current)

	size := e.viewport.backing
	setVec2(e.ctx, e.uniforms.resolution, float32(size.X), float32(size.Y))
	setFloat(e.ctx, e.uniforms.time, e.Elapsed(now))
	setVec2(e.ctx, e.uniforms.mouse, float32(e.pointerX), float32(e.pointerY))

	drawQuad(e.ctx)
}

// Elapsed converts a frame timestamp into seconds since the engine was
// created.
func (e *Engine) Elapsed(now time.Duration) float32 {
	return float32((now - e.origin).Seconds())
}

// Close releases the program and the quad buffer. Further calls to Render
// are ignored.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	if e.current != 0 {
		e.ctx.DeleteProgram(e.current)
		e.current = 0
	}
	if e.quad != 0 {
		e.ctx.DeleteBuffer(e.quad)
		e.quad = 0
	}
	e.uniforms = uniformBindings{}
	e.closed = true
	Logger().Info("gfx: engine closed")
}

func (e *Engine) HasProgram() bool {
	return e.current != 0
}

func (e *Engine) Program() Program {
	return e.current
}

func (e *Engine) Viewport() Viewport {
	return e.viewport
}

func (e *Engine) Pointer() (x, y float64) {
	return e.pointerX, e.pointerY
}

func (e *Engine) Origin() time.Duration {
	return e.origin
}
