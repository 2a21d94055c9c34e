// Package gfxtest provides an in-memory gfx.Context for tests. It behaves
// like a strict GL driver: objects are tracked until deleted, uniforms are
// discovered from the fragment source and every draw is recorded together
// with the uniform values it saw.
package gfxtest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kjkrol/shaderpad/pkg/gfx"
)

// CompileFunc returns an empty log when source compiles, otherwise the
// diagnostic the driver would report.
type CompileFunc func(t gfx.ShaderType, source string) string

type Draw struct {
	Program  gfx.Program
	Mode     gfx.DrawMode
	First    int
	Count    int
	Uniforms map[string][]float32
}

type shader struct {
	kind     gfx.ShaderType
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders  []gfx.Shader
	linked   bool
	uniforms map[string]gfx.UniformLocation
	names    map[gfx.UniformLocation]string
	values   map[string][]float32
}

type Context struct {
	Compile  CompileFunc
	FailLink bool

	next     uint32
	shaders  map[gfx.Shader]*shader
	programs map[gfx.Program]*program
	buffers  map[gfx.Buffer][]float32
	bound    gfx.Buffer
	inUse    gfx.Program
	enabled  map[gfx.AttribLocation]gfx.Buffer
	viewport [4]int

	Draws           []Draw
	DeletedPrograms []gfx.Program
	CompileCalls    int
}

func NewContext() *Context {
	return &Context{
		Compile:  Diagnose,
		shaders:  make(map[gfx.Shader]*shader),
		programs: make(map[gfx.Program]*program),
		buffers:  make(map[gfx.Buffer][]float32),
		enabled:  make(map[gfx.AttribLocation]gfx.Buffer),
	}
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

// Diagnose accepts source with balanced braces and a main function.
func Diagnose(_ gfx.ShaderType, source string) string {
	depth := 0
	line := 1
	for _, r := range source {
		switch r {
		case '\n':
			line++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Sprintf("ERROR: 0:%d: '}' : syntax error\n", line)
			}
		}
	}
	if depth != 0 {
		return fmt.Sprintf("ERROR: 0:%d: '' : syntax error: unexpected end of input\n", line)
	}
	if !strings.Contains(source, "void main") {
		return "ERROR: 0:1: 'main' : missing main function\n"
	}
	return ""
}

func (c *Context) alloc() uint32 {
	c.next++
	return c.next
}

func (c *Context) CreateShader(t gfx.ShaderType) gfx.Shader {
	s := gfx.Shader(c.alloc())
	c.shaders[s] = &shader{kind: t}
	return s
}

func (c *Context) ShaderSource(s gfx.Shader, source string) {
	if sh := c.shaders[s]; sh != nil {
		sh.source = source
	}
}

func (c *Context) CompileShader(s gfx.Shader) {
	sh := c.shaders[s]
	if sh == nil {
		return
	}
	c.CompileCalls++
	sh.log = c.Compile(sh.kind, sh.source)
	sh.compiled = sh.log == ""
}

func (c *Context) ShaderCompiled(s gfx.Shader) bool {
	sh := c.shaders[s]
	return sh != nil && sh.compiled
}

func (c *Context) ShaderInfoLog(s gfx.Shader) string {
	if sh := c.shaders[s]; sh != nil {
		return sh.log
	}
	return ""
}

// DeleteShader frees the shader immediately; attached shaders stay usable
// by programs that were already linked.
func (c *Context) DeleteShader(s gfx.Shader) {
	delete(c.shaders, s)
}

func (c *Context) CreateProgram() gfx.Program {
	p := gfx.Program(c.alloc())
	c.programs[p] = &program{}
	return p
}

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	if pr := c.programs[p]; pr != nil {
		pr.shaders = append(pr.shaders, s)
	}
}

func (c *Context) LinkProgram(p gfx.Program) {
	pr := c.programs[p]
	if pr == nil {
		return
	}
	pr.linked = false
	if c.FailLink {
		return
	}
	var haveVertex, haveFragment bool
	uniforms := make(map[string]gfx.UniformLocation)
	names := make(map[gfx.UniformLocation]string)
	for _, s := range pr.shaders {
		sh := c.shaders[s]
		if sh == nil || !sh.compiled {
			return
		}
		switch sh.kind {
		case gfx.VertexShader:
			haveVertex = true
		case gfx.FragmentShader:
			haveFragment = true
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(sh.source, -1) {
			if _, ok := uniforms[m[1]]; ok {
				continue
			}
			loc := gfx.UniformLocation(len(uniforms))
			uniforms[m[1]] = loc
			names[loc] = m[1]
		}
	}
	if !haveVertex || !haveFragment {
		return
	}
	pr.linked = true
	pr.uniforms = uniforms
	pr.names = names
	pr.values = make(map[string][]float32)
}

func (c *Context) ProgramLinked(p gfx.Program) bool {
	pr := c.programs[p]
	return pr != nil && pr.linked
}

func (c *Context) ProgramInfoLog(p gfx.Program) string {
	if c.ProgramLinked(p) {
		return ""
	}
	return "error: linking failed\n"
}

func (c *Context) DeleteProgram(p gfx.Program) {
	if _, ok := c.programs[p]; !ok {
		return
	}
	delete(c.programs, p)
	c.DeletedPrograms = append(c.DeletedPrograms, p)
	if c.inUse == p {
		c.inUse = 0
	}
}

func (c *Context) UseProgram(p gfx.Program) {
	c.inUse = p
}

func (c *Context) GetAttribLocation(p gfx.Program, name string) gfx.AttribLocation {
	pr := c.programs[p]
	if pr == nil || !pr.linked || name != "position" {
		return gfx.InactiveAttrib
	}
	return 0
}

func (c *Context) GetUniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	pr := c.programs[p]
	if pr == nil || !pr.linked {
		return gfx.InactiveUniform
	}
	loc, ok := pr.uniforms[name]
	if !ok {
		return gfx.InactiveUniform
	}
	return loc
}

func (c *Context) EnableVertexAttribArray(a gfx.AttribLocation) {
	c.enabled[a] = c.bound
}

func (c *Context) VertexAttribPointer(gfx.AttribLocation, int, int, int) {}

func (c *Context) CreateBuffer() gfx.Buffer {
	b := gfx.Buffer(c.alloc())
	c.buffers[b] = nil
	return b
}

func (c *Context) BindBuffer(b gfx.Buffer) {
	c.bound = b
}

func (c *Context) BufferData(data []float32) {
	if _, ok := c.buffers[c.bound]; !ok {
		return
	}
	c.buffers[c.bound] = append([]float32(nil), data...)
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	delete(c.buffers, b)
}

func (c *Context) Uniform1f(l gfx.UniformLocation, v float32) {
	c.setUniform(l, v)
}

func (c *Context) Uniform2f(l gfx.UniformLocation, x, y float32) {
	c.setUniform(l, x, y)
}

func (c *Context) setUniform(l gfx.UniformLocation, values ...float32) {
	pr := c.programs[c.inUse]
	if pr == nil || !pr.linked {
		panic(fmt.Sprintf("gfxtest: uniform %d set without a linked program in use", l))
	}
	name, ok := pr.names[l]
	if !ok {
		panic(fmt.Sprintf("gfxtest: uniform location %d is not valid for program %d", l, c.inUse))
	}
	pr.values[name] = values
}

func (c *Context) Viewport(x, y, width, height int) {
	c.viewport = [4]int{x, y, width, height}
}

func (c *Context) DrawArrays(mode gfx.DrawMode, first, count int) {
	pr := c.programs[c.inUse]
	if pr == nil || !pr.linked {
		panic("gfxtest: draw without a linked program in use")
	}
	snapshot := make(map[string][]float32, len(pr.values))
	for k, v := range pr.values {
		snapshot[k] = append([]float32(nil), v...)
	}
	c.Draws = append(c.Draws, Draw{
		Program:  c.inUse,
		Mode:     mode,
		First:    first,
		Count:    count,
		Uniforms: snapshot,
	})
}

// LastDraw returns the most recent draw and false when nothing was drawn.
func (c *Context) LastDraw() (Draw, bool) {
	if len(c.Draws) == 0 {
		return Draw{}, false
	}
	return c.Draws[len(c.Draws)-1], true
}

// LivePrograms lists programs created and not yet deleted.
func (c *Context) LivePrograms() []gfx.Program {
	out := make([]gfx.Program, 0, len(c.programs))
	for p := range c.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *Context) LiveShaders() int {
	return len(c.shaders)
}

func (c *Context) LiveBuffers() int {
	return len(c.buffers)
}

// BufferContents returns the data uploaded to b.
func (c *Context) BufferContents(b gfx.Buffer) []float32 {
	return c.buffers[b]
}

// AttribBuffer returns the buffer bound when attribute a was enabled.
func (c *Context) AttribBuffer(a gfx.AttribLocation) (gfx.Buffer, bool) {
	b, ok := c.enabled[a]
	return b, ok
}

func (c *Context) ViewportRect() [4]int {
	return c.viewport
}

// Surface hands out a Context and records backing size changes.
type Surface struct {
	Ctx    gfx.Context
	Err    error
	Width  int
	Height int
}

func (s *Surface) Context() (gfx.Context, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Ctx, nil
}

func (s *Surface) SetBackingSize(width, height int) {
	s.Width = width
	s.Height = height
}
