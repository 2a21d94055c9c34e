//go:build !js && cgo

package native

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kjkrol/shaderpad/internal/platform"
)

type glfwWindowWrapper struct {
	window *glfw.Window
	title  string
	events *platform.EventQueue
	closed bool
}

// NewWindowWrapper opens a hidden window with an OpenGL 3.3 core
// context made current on the calling goroutine, which is locked to its OS
// thread for the lifetime of the window.
func NewWindowWrapper(conf platform.WindowConfig) (platform.PlatformWindowWrapper, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &glfwWindowWrapper{
		window: window,
		title:  conf.Title,
		events: platform.NewEventQueue(),
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		width, height, ratio := w.Size()
		w.events.Push(platform.Resize{Width: width, Height: height, PixelRatio: ratio})
	})
	window.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		width, height, ratio := w.Size()
		w.events.Push(platform.Resize{Width: width, Height: height, PixelRatio: ratio})
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		_, _, ratio := w.Size()
		w.events.Push(platform.MotionNotify{X: x * ratio, Y: y * ratio})
	})
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		label := glfw.GetKeyName(key, scancode)
		if key == glfw.KeyEscape {
			label = "Escape"
		}
		w.events.Push(platform.KeyPress{Code: uint64(key), Label: label})
	})
	window.SetCloseCallback(func(_ *glfw.Window) {
		w.events.Push(platform.DestroyNotify{})
	})

	return w, nil
}

func (w *glfwWindowWrapper) Show() {
	w.window.Show()
	w.events.Push(platform.CreateNotify{})
}

func (w *glfwWindowWrapper) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.window.SetFramebufferSizeCallback(nil)
	w.window.SetContentScaleCallback(nil)
	w.window.SetCursorPosCallback(nil)
	w.window.SetKeyCallback(nil)
	w.window.SetCloseCallback(nil)
	w.window.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
}

// NextEventTimeout never waits: presentation is paced by the swap interval,
// so a frame is due whenever no input is pending.
func (w *glfwWindowWrapper) NextEventTimeout(_ int) platform.Event {
	if e, ok := w.events.Pop(); ok {
		return e
	}
	glfw.PollEvents()
	if e, ok := w.events.Pop(); ok {
		return e
	}
	return platform.Frame{Timestamp: w.Now()}
}

func (w *glfwWindowWrapper) GLContext() any {
	return w.window
}

func (w *glfwWindowWrapper) Size() (int, int, float64) {
	width, height := w.window.GetSize()
	fbWidth, _ := w.window.GetFramebufferSize()
	ratio := 1.0
	if width > 0 && fbWidth > 0 {
		ratio = float64(fbWidth) / float64(width)
	}
	return width, height, ratio
}

// SetBackingSize is a no-op: the window system owns the framebuffer size.
func (w *glfwWindowWrapper) SetBackingSize(int, int) {}

func (w *glfwWindowWrapper) BeginFrame() {}

func (w *glfwWindowWrapper) EndFrame() {
	w.window.SwapBuffers()
}

func (w *glfwWindowWrapper) Now() time.Duration {
	return time.Duration(glfw.GetTime() * float64(time.Second))
}

func (w *glfwWindowWrapper) ShowError(string) {
	w.window.SetTitle(w.title + " [shader error]")
}

func (w *glfwWindowWrapper) ClearError() {
	w.window.SetTitle(w.title)
}
