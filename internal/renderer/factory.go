package renderer

import "github.com/kjkrol/shaderpad/pkg/gfx"

// NewContextFactory returns the factory that turns a platform's native
// context handle into a gfx.Context for the current build target.
func NewContextFactory() gfx.ContextFactory {
	return newContext
}
