//go:build js && wasm

package renderer

import (
	"fmt"
	"syscall/js"

	"github.com/kjkrol/shaderpad/pkg/gfx"
)

type glConsts struct {
	arrayBuffer    int
	staticDraw     int
	floatType      int
	triangles      int
	triangleStrip  int
	compileStatus  int
	linkStatus     int
	vertexShader   int
	fragmentShader int
	depthTest      int
}

// webglContext implements gfx.Context over a WebGL2RenderingContext.
// WebGL objects are JS values, so they live in tables keyed by the integer
// handles handed to the engine.
type webglContext struct {
	gl     js.Value
	consts glConsts

	next     uint32
	shaders  map[gfx.Shader]js.Value
	programs map[gfx.Program]js.Value
	buffers  map[gfx.Buffer]js.Value
	uniforms map[gfx.UniformLocation]js.Value
	// uniform handles are only valid for the program that produced them
	uniformOwner map[gfx.UniformLocation]gfx.Program
}

func newWebGLContext(gl js.Value) (*webglContext, error) {
	if gl.IsUndefined() || gl.IsNull() {
		return nil, gfx.ErrNoContext
	}
	c := &webglContext{
		gl:           gl,
		shaders:      make(map[gfx.Shader]js.Value),
		programs:     make(map[gfx.Program]js.Value),
		buffers:      make(map[gfx.Buffer]js.Value),
		uniforms:     make(map[gfx.UniformLocation]js.Value),
		uniformOwner: make(map[gfx.UniformLocation]gfx.Program),
	}
	c.initConsts()
	gl.Call("disable", c.consts.depthTest)
	gfx.Logger().Info("renderer: WebGL2 context ready",
		"version", gl.Call("getParameter", gl.Get("VERSION")).String(),
		"glsl", gl.Call("getParameter", gl.Get("SHADING_LANGUAGE_VERSION")).String(),
	)
	return c, nil
}

func (c *webglContext) initConsts() {
	c.consts = glConsts{
		arrayBuffer:    c.gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     c.gl.Get("STATIC_DRAW").Int(),
		floatType:      c.gl.Get("FLOAT").Int(),
		triangles:      c.gl.Get("TRIANGLES").Int(),
		triangleStrip:  c.gl.Get("TRIANGLE_STRIP").Int(),
		compileStatus:  c.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     c.gl.Get("LINK_STATUS").Int(),
		vertexShader:   c.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: c.gl.Get("FRAGMENT_SHADER").Int(),
		depthTest:      c.gl.Get("DEPTH_TEST").Int(),
	}
}

func (c *webglContext) alloc() uint32 {
	c.next++
	return c.next
}

func (c *webglContext) CreateShader(t gfx.ShaderType) gfx.Shader {
	kind := c.consts.fragmentShader
	if t == gfx.VertexShader {
		kind = c.consts.vertexShader
	}
	v := c.gl.Call("createShader", kind)
	if v.IsNull() {
		return 0
	}
	s := gfx.Shader(c.alloc())
	c.shaders[s] = v
	return s
}

func (c *webglContext) ShaderSource(s gfx.Shader, source string) {
	if v, ok := c.shaders[s]; ok {
		c.gl.Call("shaderSource", v, source)
	}
}

func (c *webglContext) CompileShader(s gfx.Shader) {
	if v, ok := c.shaders[s]; ok {
		c.gl.Call("compileShader", v)
	}
}

func (c *webglContext) ShaderCompiled(s gfx.Shader) bool {
	v, ok := c.shaders[s]
	if !ok {
		return false
	}
	return c.gl.Call("getShaderParameter", v, c.consts.compileStatus).Truthy()
}

func (c *webglContext) ShaderInfoLog(s gfx.Shader) string {
	v, ok := c.shaders[s]
	if !ok {
		return ""
	}
	log := c.gl.Call("getShaderInfoLog", v)
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (c *webglContext) DeleteShader(s gfx.Shader) {
	if v, ok := c.shaders[s]; ok {
		c.gl.Call("deleteShader", v)
		delete(c.shaders, s)
	}
}

func (c *webglContext) CreateProgram() gfx.Program {
	v := c.gl.Call("createProgram")
	if v.IsNull() {
		return 0
	}
	p := gfx.Program(c.alloc())
	c.programs[p] = v
	return p
}

func (c *webglContext) AttachShader(p gfx.Program, s gfx.Shader) {
	pv, ok := c.programs[p]
	sv, ok2 := c.shaders[s]
	if ok && ok2 {
		c.gl.Call("attachShader", pv, sv)
	}
}

func (c *webglContext) LinkProgram(p gfx.Program) {
	if v, ok := c.programs[p]; ok {
		c.gl.Call("linkProgram", v)
	}
}

func (c *webglContext) ProgramLinked(p gfx.Program) bool {
	v, ok := c.programs[p]
	if !ok {
		return false
	}
	return c.gl.Call("getProgramParameter", v, c.consts.linkStatus).Truthy()
}

func (c *webglContext) ProgramInfoLog(p gfx.Program) string {
	v, ok := c.programs[p]
	if !ok {
		return ""
	}
	log := c.gl.Call("getProgramInfoLog", v)
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (c *webglContext) DeleteProgram(p gfx.Program) {
	v, ok := c.programs[p]
	if !ok {
		return
	}
	c.gl.Call("deleteProgram", v)
	delete(c.programs, p)
	for loc, owner := range c.uniformOwner {
		if owner == p {
			delete(c.uniformOwner, loc)
			delete(c.uniforms, loc)
		}
	}
}

func (c *webglContext) UseProgram(p gfx.Program) {
	if v, ok := c.programs[p]; ok {
		c.gl.Call("useProgram", v)
	}
}

func (c *webglContext) GetAttribLocation(p gfx.Program, name string) gfx.AttribLocation {
	v, ok := c.programs[p]
	if !ok {
		return gfx.InactiveAttrib
	}
	return gfx.AttribLocation(c.gl.Call("getAttribLocation", v, name).Int())
}

func (c *webglContext) GetUniformLocation(p gfx.Program, name string) gfx.UniformLocation {
	v, ok := c.programs[p]
	if !ok {
		return gfx.InactiveUniform
	}
	loc := c.gl.Call("getUniformLocation", v, name)
	if loc.IsNull() || loc.IsUndefined() {
		return gfx.InactiveUniform
	}
	id := gfx.UniformLocation(c.alloc())
	c.uniforms[id] = loc
	c.uniformOwner[id] = p
	return id
}

func (c *webglContext) EnableVertexAttribArray(a gfx.AttribLocation) {
	c.gl.Call("enableVertexAttribArray", int(a))
}

func (c *webglContext) VertexAttribPointer(a gfx.AttribLocation, size, stride, offset int) {
	c.gl.Call("vertexAttribPointer", int(a), size, c.consts.floatType, false, stride, offset)
}

func (c *webglContext) CreateBuffer() gfx.Buffer {
	v := c.gl.Call("createBuffer")
	if v.IsNull() {
		return 0
	}
	b := gfx.Buffer(c.alloc())
	c.buffers[b] = v
	return b
}

func (c *webglContext) BindBuffer(b gfx.Buffer) {
	v, ok := c.buffers[b]
	if !ok {
		v = js.Null()
	}
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, v)
}

func (c *webglContext) BufferData(data []float32) {
	c.gl.Call("bufferData", c.consts.arrayBuffer, float32Array(data), c.consts.staticDraw)
}

func (c *webglContext) DeleteBuffer(b gfx.Buffer) {
	if v, ok := c.buffers[b]; ok {
		c.gl.Call("deleteBuffer", v)
		delete(c.buffers, b)
	}
}

func (c *webglContext) Uniform1f(l gfx.UniformLocation, v float32) {
	if loc, ok := c.uniforms[l]; ok {
		c.gl.Call("uniform1f", loc, v)
	}
}

func (c *webglContext) Uniform2f(l gfx.UniformLocation, x, y float32) {
	if loc, ok := c.uniforms[l]; ok {
		c.gl.Call("uniform2f", loc, x, y)
	}
}

func (c *webglContext) Viewport(x, y, width, height int) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *webglContext) DrawArrays(mode gfx.DrawMode, first, count int) {
	m := c.consts.triangles
	if mode == gfx.TriangleStrip {
		m = c.consts.triangleStrip
	}
	c.gl.Call("drawArrays", m, first, count)
}

func newContext(handle any) (gfx.Context, error) {
	gl, ok := handle.(js.Value)
	if !ok {
		return nil, fmt.Errorf("webgl: unexpected context handle %T", handle)
	}
	c, err := newWebGLContext(gl)
	if err != nil {
		return nil, err
	}
	return c, nil
}
