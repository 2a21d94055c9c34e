package gfx

// Handles returned by a Context. Zero is never a valid object.
type (
	Shader          uint32
	Program         uint32
	Buffer          uint32
	AttribLocation  int32
	UniformLocation int32
)

// InactiveUniform is returned for uniforms the program does not use.
// Writes to it are ignored.
const InactiveUniform UniformLocation = -1

// InactiveAttrib is returned for attributes the program does not use.
const InactiveAttrib AttribLocation = -1

type ShaderType int

const (
	VertexShader ShaderType = iota + 1
	FragmentShader
)

func (t ShaderType) String() string {
	switch t {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	case StageLink:
		return "link"
	default:
		return "unknown"
	}
}

type DrawMode int

const (
	Triangles DrawMode = iota + 1
	TriangleStrip
)

// Context is the immediate-mode graphics context an Engine draws with.
// It mirrors the subset of the GL/WebGL2 API the engine needs; all calls
// must be made from the goroutine that owns the context.
//
// BindBuffer, BufferData and VertexAttribPointer operate on the array
// buffer target. VertexAttribPointer describes tightly packed float32
// components.
type Context interface {
	CreateShader(t ShaderType) Shader
	ShaderSource(s Shader, source string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	GetAttribLocation(p Program, name string) AttribLocation
	GetUniformLocation(p Program, name string) UniformLocation
	EnableVertexAttribArray(a AttribLocation)
	VertexAttribPointer(a AttribLocation, size, stride, offset int)

	CreateBuffer() Buffer
	BindBuffer(b Buffer)
	BufferData(data []float32)
	DeleteBuffer(b Buffer)

	Uniform1f(l UniformLocation, v float32)
	Uniform2f(l UniformLocation, x, y float32)

	Viewport(x, y, width, height int)
	DrawArrays(mode DrawMode, first, count int)
}

// Surface is the drawable an Engine is bound to.
type Surface interface {
	// Context returns the graphics context bound to the surface.
	Context() (Context, error)
	// SetBackingSize resizes the surface's framebuffer in physical pixels.
	SetBackingSize(width, height int)
}
