package gfx

import _ "embed"

// VertexSource is the fixed vertex stage: it passes the quad corners
// through unchanged.
//
//go:embed shaders/quad.vert
var VertexSource string

// DefaultFragmentSource is the built-in fragment stage compiled at startup.
// It animates a colour field from the time and pixel position uniforms.
//
//go:embed shaders/default.frag
var DefaultFragmentSource string
