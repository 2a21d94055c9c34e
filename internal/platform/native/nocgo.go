//go:build !js && !cgo

package native

import (
	"errors"

	"github.com/kjkrol/shaderpad/internal/platform"
)

// NewWindowWrapper fails on builds without cgo: GLFW is a C library.
func NewWindowWrapper(platform.WindowConfig) (platform.PlatformWindowWrapper, error) {
	return nil, errors.New("native: desktop windows require cgo")
}
