//go:build js && wasm

package native

import (
	"math"
	"syscall/js"
	"time"

	"github.com/kjkrol/shaderpad/internal/platform"
)

const editorStyle = `position:fixed;inset:0;width:100vw;height:100vh;box-sizing:border-box;` +
	`margin:0;padding:1.5rem;border:0;resize:none;outline:none;background:rgba(0,0,0,0.6);` +
	`color:#fff;font:14px/1.4 monospace;white-space:pre;tab-size:4;`

const errorStyle = `position:fixed;left:0;right:0;bottom:0;margin:0;padding:0.75rem 1.5rem;` +
	`max-height:40vh;overflow:auto;z-index:2;background:rgba(160,0,0,0.85);color:#fff;` +
	`font:12px/1.4 monospace;white-space:pre-wrap;display:none;`

const controlsStyle = `position:fixed;right:1rem;top:1rem;z-index:3;color:#fff;` +
	`font:12px monospace;user-select:none;`

type listener struct {
	target js.Value
	typ    string
	fn     js.Func
}

type wasmWindowWrapper struct {
	window   js.Value
	canvas   js.Value
	editor   js.Value
	errorBox js.Value
	controls js.Value
	gl       js.Value
	events   *platform.EventQueue
	closed   bool

	frameFn   js.Func
	frameID   js.Value
	listeners []listener
}

// NewWindowWrapper builds the editing page: a full-window WebGL2
// canvas, a text area over it, an error panel and the edit-mode toggle.
func NewWindowWrapper(conf platform.WindowConfig) (platform.PlatformWindowWrapper, error) {
	global := js.Global()
	doc := global.Get("document")
	if conf.Title != "" {
		doc.Set("title", conf.Title)
	}
	body := doc.Get("body")
	body.Get("style").Set("margin", "0")

	canvas := doc.Call("createElement", "canvas")
	canvas.Get("style").Set("cssText", "position:fixed;top:0;left:0;width:100vw;height:100vh;z-index:0;")
	body.Call("appendChild", canvas)

	editor := doc.Call("createElement", "textarea")
	editor.Get("style").Set("cssText", editorStyle)
	for _, attr := range [][2]string{
		{"spellcheck", "false"},
		{"autocorrect", "off"},
		{"autocapitalize", "off"},
		{"translate", "no"},
	} {
		editor.Call("setAttribute", attr[0], attr[1])
	}
	editor.Set("value", conf.InitialSource)
	body.Call("appendChild", editor)

	errorBox := doc.Call("createElement", "pre")
	errorBox.Get("style").Set("cssText", errorStyle)
	body.Call("appendChild", errorBox)

	controls := doc.Call("createElement", "label")
	controls.Get("style").Set("cssText", controlsStyle)
	toggle := doc.Call("createElement", "input")
	toggle.Set("type", "checkbox")
	controls.Call("appendChild", toggle)
	controls.Call("appendChild", doc.Call("createTextNode", " edit"))
	body.Call("appendChild", controls)

	w := &wasmWindowWrapper{
		window:   global,
		canvas:   canvas,
		editor:   editor,
		errorBox: errorBox,
		controls: controls,
		gl:       canvas.Call("getContext", "webgl2"),
		events:   platform.NewEventQueue(),
		frameID:  js.Undefined(),
	}
	w.setEditMode(false)

	w.listen(global, "resize", func(js.Value) {
		width, height, ratio := w.Size()
		w.events.Push(platform.Resize{Width: width, Height: height, PixelRatio: ratio})
	})
	w.listen(canvas, "mousemove", func(e js.Value) {
		rect := canvas.Call("getBoundingClientRect")
		_, _, ratio := w.Size()
		x := (e.Get("clientX").Float() - rect.Get("left").Float()) * ratio
		y := (e.Get("clientY").Float() - rect.Get("top").Float()) * ratio
		w.events.Push(platform.MotionNotify{X: x, Y: y})
	})
	w.listen(editor, "input", func(js.Value) {
		w.events.Push(platform.SourceEdited{Text: editor.Get("value").String()})
	})
	w.listen(toggle, "change", func(js.Value) {
		w.setEditMode(toggle.Get("checked").Bool())
	})
	w.listen(global, "keydown", func(e js.Value) {
		w.events.Push(platform.KeyPress{Label: e.Get("key").String()})
	})

	w.frameFn = js.FuncOf(func(this js.Value, args []js.Value) any {
		w.frameID = js.Undefined()
		var ts time.Duration
		if len(args) > 0 {
			ts = millis(args[0].Float())
		}
		w.events.Push(platform.Frame{Timestamp: ts})
		return nil
	})

	return w, nil
}

func (w *wasmWindowWrapper) listen(target js.Value, typ string, f func(js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		var e js.Value
		if len(args) > 0 {
			e = args[0]
		}
		f(e)
		return nil
	})
	target.Call("addEventListener", typ, fn)
	w.listeners = append(w.listeners, listener{target: target, typ: typ, fn: fn})
}

func (w *wasmWindowWrapper) setEditMode(on bool) {
	style := w.editor.Get("style")
	canvasStyle := w.canvas.Get("style")
	if on {
		canvasStyle.Set("zIndex", "-1")
		style.Set("zIndex", "1")
		style.Set("opacity", "1")
		style.Set("pointerEvents", "auto")
		return
	}
	canvasStyle.Set("zIndex", "0")
	style.Set("zIndex", "-1")
	style.Set("opacity", "0")
	style.Set("pointerEvents", "none")
}

func (w *wasmWindowWrapper) Show() {
	w.events.Push(platform.CreateNotify{})
	w.requestFrame()
}

func (w *wasmWindowWrapper) requestFrame() {
	if w.closed || !w.frameID.IsUndefined() {
		return
	}
	w.frameID = w.window.Call("requestAnimationFrame", w.frameFn)
}

// Close cancels the pending animation frame and removes every listener so
// no callback reaches a disposed engine.
func (w *wasmWindowWrapper) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if !w.frameID.IsUndefined() {
		w.window.Call("cancelAnimationFrame", w.frameID)
		w.frameID = js.Undefined()
	}
	for _, l := range w.listeners {
		l.target.Call("removeEventListener", l.typ, l.fn)
		l.fn.Release()
	}
	w.listeners = nil
	w.frameFn.Release()
	for _, el := range []js.Value{w.canvas, w.editor, w.errorBox, w.controls} {
		el.Call("remove")
	}
	w.events.Push(platform.DestroyNotify{})
}

func (w *wasmWindowWrapper) NextEventTimeout(timeoutMs int) platform.Event {
	return w.events.Wait(time.Duration(timeoutMs) * time.Millisecond)
}

func (w *wasmWindowWrapper) GLContext() any {
	return w.gl
}

func (w *wasmWindowWrapper) Size() (int, int, float64) {
	ratio := 1.0
	if dpr := w.window.Get("devicePixelRatio"); dpr.Truthy() {
		ratio = math.Max(1, dpr.Float())
	}
	return w.window.Get("innerWidth").Int(), w.window.Get("innerHeight").Int(), ratio
}

func (w *wasmWindowWrapper) SetBackingSize(width, height int) {
	w.canvas.Set("width", width)
	w.canvas.Set("height", height)
}

func (w *wasmWindowWrapper) BeginFrame() {}

func (w *wasmWindowWrapper) EndFrame() {
	w.requestFrame()
}

func (w *wasmWindowWrapper) Now() time.Duration {
	return millis(w.window.Get("performance").Call("now").Float())
}

func (w *wasmWindowWrapper) ShowError(message string) {
	w.errorBox.Set("textContent", message)
	w.errorBox.Get("style").Set("display", "block")
}

func (w *wasmWindowWrapper) ClearError() {
	w.errorBox.Set("textContent", "")
	w.errorBox.Get("style").Set("display", "none")
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
