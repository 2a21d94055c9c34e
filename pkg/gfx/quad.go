package gfx

const (
	quadComponents = 2
	quadVertices   = 4
)

// quadVertexData covers clip space with a triangle strip:
// bottom-left, bottom-right, top-left, top-right.
var quadVertexData = [quadVertices * quadComponents]float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

func uploadQuad(ctx Context) Buffer {
	data := quadVertexData
	buffer := ctx.CreateBuffer()
	ctx.BindBuffer(buffer)
	ctx.BufferData(data[:])
	return buffer
}

func bindQuadAttrib(ctx Context, p Program, buffer Buffer) {
	loc := ctx.GetAttribLocation(p, attribPosition)
	if loc < 0 {
		Logger().Debug("gfx: program does not read the position attribute", "program", p)
		return
	}
	ctx.BindBuffer(buffer)
	ctx.EnableVertexAttribArray(loc)
	ctx.VertexAttribPointer(loc, quadComponents, 0, 0)
}

func drawQuad(ctx Context) {
	ctx.DrawArrays(TriangleStrip, 0, quadVertices)
}
