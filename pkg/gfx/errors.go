package gfx

import "errors"

var (
	ErrNoContext    = errors.New("gfx: surface has no usable graphics context")
	ErrNotSetUp     = errors.New("gfx: engine is not set up")
	ErrAlreadySetUp = errors.New("gfx: engine is already set up")
	ErrClosed       = errors.New("gfx: engine is closed")
)

// LinkFailedMessage is the CompileError text reported when linking fails.
const LinkFailedMessage = "Unable to link the shader program"

// StageLink marks a CompileError raised while linking.
const StageLink ShaderType = 0

// CompileError reports a fragment shader that failed to compile or a
// program that failed to link. Error returns the driver diagnostic as is,
// so it can be shown to the user without reformatting.
type CompileError struct {
	Stage ShaderType
	Log   string
}

func (e *CompileError) Error() string {
	return e.Log
}

// IsLinkError reports whether the error was raised by the link step.
func (e *CompileError) IsLinkError() bool {
	return e.Stage == StageLink
}
