package gfx

const (
	uniformResolution = "resolution"
	uniformTime       = "time"
	uniformMouse      = "mouse"
	attribPosition    = "position"
)

// uniformBindings caches the locations of the engine uniforms for one
// program. A new set is resolved whenever the current program changes.
type uniformBindings struct {
	program    Program
	resolution UniformLocation
	time       UniformLocation
	mouse      UniformLocation
}

func resolveUniforms(ctx Context, p Program) uniformBindings {
	b := uniformBindings{
		program:    p,
		resolution: lookupUniform(ctx, p, uniformResolution),
		time:       lookupUniform(ctx, p, uniformTime),
		mouse:      lookupUniform(ctx, p, uniformMouse),
	}
	Logger().Debug("gfx: uniforms resolved",
		"program", p,
		"resolution", b.resolution,
		"time", b.time,
		"mouse", b.mouse,
	)
	return b
}

func lookupUniform(ctx Context, p Program, name string) UniformLocation {
	loc := ctx.GetUniformLocation(p, name)
	if loc < 0 {
		return InactiveUniform
	}
	return loc
}

func setFloat(ctx Context, loc UniformLocation, v float32) {
	if loc == InactiveUniform {
		return
	}
	ctx.Uniform1f(loc, v)
}

func setVec2(ctx Context, loc UniformLocation, x, y float32) {
	if loc == InactiveUniform {
		return
	}
	ctx.Uniform2f(loc, x, y)
}
