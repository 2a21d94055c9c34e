//go:build !js && !cgo

package renderer

import (
	"errors"

	"github.com/kjkrol/shaderpad/pkg/gfx"
)

var errNoCgo = errors.New("renderer: OpenGL backend requires cgo")

func newContext(any) (gfx.Context, error) {
	return nil, errNoCgo
}
