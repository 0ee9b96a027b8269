//go:build js && wasm

package webgl

import (
	"errors"
	"log/slog"
	"syscall/js"
	"time"

	"github.com/toxichemicals/GO/holy-webgl/loop"
	"github.com/toxichemicals/GO/holy-webgl/surface"
)

// CanvasID is the element the tutorials draw into.
const CanvasID = "game-surface"

// Context modes, standard first. Older browsers only expose the prefixed one.
const (
	ModeWebGL             surface.Mode = "webgl"
	ModeExperimentalWebGL surface.Mode = "experimental-webgl"
)

var webModes = []surface.Mode{ModeWebGL, ModeExperimentalWebGL}

var errNoContext = errors.New("getContext returned null")

// Canvas is a <canvas> element with a WebGL context. It implements
// loop.Surface by parking PollEvents until the browser's next animation
// frame.
type Canvas struct {
	el     js.Value
	mode   surface.Mode
	device *Device
	logger *slog.Logger

	frames  chan float64
	onFrame js.Func
	onSize  js.Func

	// rAF timestamps in milliseconds
	first, last float64

	resized  bool
	onResize func(width, height int)
	closed   bool
}

// OpenCanvas finds the element with the given id and acquires a WebGL
// context on it. When the browser offers none, the user gets an alert and
// the error wraps surface.ErrUnsupported.
func OpenCanvas(id string, logger *slog.Logger) (*Canvas, error) {
	doc := js.Global().Get("document")
	el := doc.Call("getElementById", id)
	if !el.Truthy() {
		return nil, errors.New("no <canvas id=\"" + id + "\"> element")
	}

	request := func(mode surface.Mode) (js.Value, error) {
		ctx := el.Call("getContext", string(mode))
		if !ctx.Truthy() {
			return js.Value{}, errNoContext
		}
		return ctx, nil
	}
	alert := func(msg string) { js.Global().Call("alert", msg) }

	ctx, mode, err := surface.Acquire(request, webModes, logger, alert)
	if err != nil {
		return nil, err
	}

	c := &Canvas{
		el:     el,
		mode:   mode,
		device: newDevice(ctx),
		logger: logger,
		frames: make(chan float64, 1),
		first:  -1,
	}
	c.onFrame = js.FuncOf(func(_ js.Value, args []js.Value) any {
		select {
		case c.frames <- args[0].Float():
		default:
		}
		return nil
	})
	c.onSize = js.FuncOf(func(js.Value, []js.Value) any {
		c.resized = true
		return nil
	})
	js.Global().Call("addEventListener", "resize", c.onSize)
	js.Global().Call("requestAnimationFrame", c.onFrame)

	logger.Info("canvas ready", "mode", mode, "width", el.Get("width").Int(), "height", el.Get("height").Int())
	return c, nil
}

// Device is the gfx.Device drawing into this canvas.
func (c *Canvas) Device() *Device { return c.device }

// Mode is the context mode the canvas was created with.
func (c *Canvas) Mode() surface.Mode { return c.mode }

// Size is the drawing buffer size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.el.Get("width").Int(), c.el.Get("height").Int()
}

// OnResize registers fn to run when the page resizes the canvas. The canvas
// drawing buffer is matched to its CSS size before fn runs.
func (c *Canvas) OnResize(fn func(width, height int)) { c.onResize = fn }

// Clock reports time since the first animation frame, using the
// timestamps the browser passes to requestAnimationFrame callbacks.
func (c *Canvas) Clock() loop.Clock {
	return func() time.Duration {
		if c.first < 0 {
			return 0
		}
		return time.Duration((c.last - c.first) * float64(time.Millisecond))
	}
}

// PollEvents blocks until the browser schedules the next frame.
func (c *Canvas) PollEvents() {
	ts := <-c.frames
	if c.first < 0 {
		c.first = ts
	}
	c.last = ts

	if c.resized {
		c.resized = false
		w, h := c.el.Get("clientWidth").Int(), c.el.Get("clientHeight").Int()
		if w > 0 && h > 0 {
			c.el.Set("width", w)
			c.el.Set("height", h)
			if c.onResize != nil {
				c.onResize(w, h)
			}
		}
	}
}

// ShouldClose reports whether Close has been called.
func (c *Canvas) ShouldClose() bool { return c.closed }

// SwapBuffers asks for the next frame. The browser composites the canvas on
// its own once the callback returns.
func (c *Canvas) SwapBuffers() {
	js.Global().Call("requestAnimationFrame", c.onFrame)
}

// Close stops the frame loop. The frame callback stays alive because one
// request may still be pending in the browser.
func (c *Canvas) Close() {
	c.closed = true
	js.Global().Call("removeEventListener", "resize", c.onSize)
	c.onSize.Release()
}

var _ loop.Surface = (*Canvas)(nil)
