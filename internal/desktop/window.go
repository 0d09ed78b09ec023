//go:build !js

package desktop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"fireworks/internal/fx"
)

// Options configure the overlay window. A zero size covers the primary monitor.
type Options struct {
	Width, Height int
	Title         string
	Logger        *slog.Logger
}

// Window is a transparent, undecorated, always-on-top glfw window acting
// as the fireworks viewport. It implements fx.Host and fx.Scheduler.
type Window struct {
	win     *glfw.Window
	surface *Surface
	pacer   *framePacer
	log     *slog.Logger

	onClick  func(x, y float64)
	onResize func()
}

// Open creates the window and its GL 4.1 core context. Must be called on
// the main (locked) OS thread.
func Open(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w, h := opts.Width, opts.Height
	refresh := 0
	if mon := glfw.GetPrimaryMonitor(); mon != nil {
		mode := mon.GetVideoMode()
		refresh = mode.RefreshRate
		if w <= 0 || h <= 0 {
			w, h = mode.Width, mode.Height
		}
	}
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}
	title := opts.Title
	if title == "" {
		title = "fireworks"
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.False)
	glfw.WindowHint(glfw.Floating, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(w, h, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	wd := &Window{win: win, pacer: newFramePacer(refresh), log: logger}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		if wd.onResize != nil {
			wd.onResize()
		}
	})
	win.SetMouseButtonCallback(func(gw *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if btn != glfw.MouseButtonLeft || action != glfw.Press || wd.onClick == nil {
			return
		}
		x, y := cursorFramebufferPos(gw)
		wd.onClick(x, y)
	})
	win.SetKeyCallback(func(gw *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.SetShouldClose(true)
		}
	})
	return wd, nil
}

// Bind routes window clicks and framebuffer resizes to the engine.
func (w *Window) Bind(e *fx.Engine) {
	w.onClick = e.Click
	w.onResize = e.ViewportResized
}

func (w *Window) ViewportSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// CreateSurface builds the GL surface. The window itself is the overlay,
// so the placement only moves it to the top-left corner when fixed.
func (w *Window) CreateSurface(o fx.Overlay) (fx.Surface, error) {
	for _, opt := range unsupportedOverlay(o) {
		w.log.Warn("overlay option not supported by the desktop window, it will capture clicks", "option", opt)
	}
	if o.Fixed {
		w.win.SetPos(o.Left, o.Top)
	}
	s, err := newSurface(w.win, w.pacer)
	if err != nil {
		return nil, err
	}
	w.surface = s
	return s, nil
}

// NextFrame polls window events. Frame pacing normally comes from the
// vsync'd buffer swap in Surface.Present; frames that skipped it are
// slowed to the display rate here.
func (w *Window) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.pacer.wait(ctx); err != nil {
		return err
	}
	glfw.PollEvents()
	if w.win.ShouldClose() {
		return fx.ErrSurfaceClosed
	}
	return nil
}

func (w *Window) Destroy() {
	if w.surface != nil {
		w.surface.Destroy()
		w.surface = nil
	}
	w.win.Destroy()
	glfw.Terminate()
}
