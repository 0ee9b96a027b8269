// Package core is the desktop platform: a GLFW window with an OpenGL context
// and a gfx.Device backed by go-gl.
package core

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/toxichemicals/GO/holy-webgl/loop"
	"github.com/toxichemicals/GO/holy-webgl/surface"
)

// Context modes, most capable first. The device only needs the 3.3 core
// feature set, so both can run the tutorials.
const (
	ModeGL41 surface.Mode = "opengl-4.1-core"
	ModeGL33 surface.Mode = "opengl-3.3-core"
)

var desktopModes = []surface.Mode{ModeGL41, ModeGL33}

// WindowConfig sizes and names the window.
type WindowConfig struct {
	Width, Height int
	Title         string
	VSync         bool
}

// Window is a GLFW window with a current OpenGL context. It implements
// loop.Surface. All methods must run on the main OS thread.
type Window struct {
	win    *glfw.Window
	mode   surface.Mode
	title  string
	logger *slog.Logger

	// Internal state for the main loop
	running bool

	// VSync control state
	vsyncEnabled   bool
	vKeyWasPressed bool

	fps      loop.FPSMeter
	onResize func(width, height int)
}

// OpenWindow initializes GLFW and creates the window, asking for an OpenGL 4.1
// core context first and falling back to 3.3 core. When neither is available
// the user is told on stderr and GLFW is shut down again.
func OpenWindow(cfg WindowConfig, logger *slog.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	request := func(mode surface.Mode) (*glfw.Window, error) {
		glfw.DefaultWindowHints()
		switch mode {
		case ModeGL41:
			glfw.WindowHint(glfw.ContextVersionMajor, 4)
			glfw.WindowHint(glfw.ContextVersionMinor, 1)
		case ModeGL33:
			glfw.WindowHint(glfw.ContextVersionMajor, 3)
			glfw.WindowHint(glfw.ContextVersionMinor, 3)
		default:
			return nil, fmt.Errorf("unknown context mode %q", mode)
		}
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		glfw.WindowHint(glfw.Resizable, glfw.True)
		return glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	}
	notify := func(msg string) { fmt.Fprintln(os.Stderr, msg) }

	win, mode, err := surface.Acquire(request, desktopModes, logger, notify)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	w := &Window{
		win:     win,
		mode:    mode,
		title:   cfg.Title,
		logger:  logger,
		running: true,
	}
	w.win.MakeContextCurrent()
	w.setVSync(cfg.VSync)

	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	logger.Info("window open", "mode", mode, "width", cfg.Width, "height", cfg.Height)
	return w, nil
}

// Mode is the context mode the window was created with.
func (w *Window) Mode() surface.Mode { return w.mode }

// FramebufferSize is the drawable size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

// OnResize registers fn to run whenever the framebuffer changes size.
func (w *Window) OnResize(fn func(width, height int)) { w.onResize = fn }

func (w *Window) setVSync(on bool) {
	w.vsyncEnabled = on
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

// PollEvents processes window events: Escape closes, V toggles vsync.
func (w *Window) PollEvents() {
	glfw.PollEvents()

	if w.win.GetKey(glfw.KeyEscape) == glfw.Press {
		w.running = false
	}

	currentVState := w.win.GetKey(glfw.KeyV)
	if currentVState == glfw.Press && !w.vKeyWasPressed {
		w.setVSync(!w.vsyncEnabled)
		w.logger.Info("vsync toggled", "enabled", w.vsyncEnabled)
	}
	w.vKeyWasPressed = currentVState == glfw.Press
}

// ShouldClose reports a close request from the window manager or Escape.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose() || !w.running
}

// SwapBuffers presents the frame and refreshes the FPS shown in the title.
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
	if fps, ok := w.fps.Tick(time.Now()); ok {
		w.win.SetTitle(fmt.Sprintf("%s | FPS: %.2f", w.title, fps))
	}
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	glfw.Terminate()
}

var _ loop.Surface = (*Window)(nil)
