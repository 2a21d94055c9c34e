//go:build !js && cgo

package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/shaderpad/pkg/gfx"
)

// glContext implements gfx.Context on top of go-gl. The GL context must be
// current on the calling thread before newGLContext is called.
type glContext struct {
	vao uint32
}

func newGLContext() (*glContext, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	c := &glContext{}
	// Core profiles refuse to draw without a bound vertex array object.
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.Disable(gl.DEPTH_TEST)

	gfx.Logger().Info("renderer: OpenGL context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return c, nil
}

func glShaderType(t gfx.ShaderType) uint32 {
	if t == gfx.VertexShader {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func glDrawMode(m gfx.DrawMode) uint32 {
	if m == gfx.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

func (c *glContext) CreateShader(t gfx.ShaderType) gfx.Shader {
	return gfx.Shader(gl.CreateShader(glShaderType(t)))
}

func (c *glContext) ShaderSource(s gfx.Shader, source string) {
	csources, free := gl.Strs(desktopSource(source) + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (c *glContext) CompileShader(s gfx.Shader) {
	gl.CompileShader(uint32(s))
}

func (c *glContext) ShaderCompiled(s gfx.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *glContext) ShaderInfoLog(s gfx.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *glContext) DeleteShader(s gfx.Shader) {
	gl.DeleteShader(uint32(s))
}

func (c *glContext) CreateProgram() gfx.Program {
	return gfx.Program(gl.CreateProgram())
}

func (c *glContext) AttachShader(p gfx.Program, s gfx.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *glContext) LinkProgram(p gfx.Program) {
	gl.LinkProgram(uint32(p))
}

func (c *glContext) ProgramLinked(p gfx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *glContext) ProgramInfoLog(p gfx.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *glContext) DeleteProgram(p gfx.Program) {
	gl.DeleteProgram(uint32(p))
}

func (c *glContext) UseProgram(p gfx.Program) {
	gl.UseProgram(uint32(p))
}

func (c *glContext) GetAttribLocation(p gfx.Program, name string) gfx.AttribLocation {
	return gfx.AttribLocation(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *glContext) GetUniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	return gfx.UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *glContext) EnableVertexAttribArray(a gfx.AttribLocation) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (c *glContext) VertexAttribPointer(a gfx.AttribLocation, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(a), int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

func (c *glContext) CreateBuffer() gfx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gfx.Buffer(b)
}

func (c *glContext) BindBuffer(b gfx.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

func (c *glContext) BufferData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *glContext) DeleteBuffer(b gfx.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (c *glContext) Uniform1f(l gfx.UniformLocation, v float32) {
	gl.Uniform1f(int32(l), v)
}

func (c *glContext) Uniform2f(l gfx.UniformLocation, x, y float32) {
	gl.Uniform2f(int32(l), x, y)
}

func (c *glContext) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *glContext) DrawArrays(mode gfx.DrawMode, first, count int) {
	gl.DrawArrays(glDrawMode(mode), int32(first), int32(count))
}

// Close releases the vertex array created for the core profile.
func (c *glContext) Close() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

// newContext ignores the handle: GLFW has already made its context current
// on the loop thread.
func newContext(any) (gfx.Context, error) {
	c, err := newGLContext()
	if err != nil {
		return nil, err
	}
	return c, nil
}
