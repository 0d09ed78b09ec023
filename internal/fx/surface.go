package fx

import (
	"fmt"
	"log/slog"
)

// Overlay describes how a surface is placed over the page.
type Overlay struct {
	Fixed            bool // pinned to the viewport, ignores scrolling
	Left, Top        int
	FullViewport     bool // 100% width and height
	InputTransparent bool // clicks reach the content underneath
	ZIndex           int
}

// DefaultOverlay is the placement the surface manager always requests.
func DefaultOverlay() Overlay {
	return Overlay{
		Fixed:            true,
		FullViewport:     true,
		InputTransparent: true,
		ZIndex:           TopLayer,
	}
}

// Surface is a drawing target with a resizable pixel buffer.
type Surface interface {
	Canvas
	Size() (w, h int)
	Resize(w, h int)
}

// Presenter is implemented by surfaces that must publish a finished frame
// (swap buffers, blit an offscreen target).
type Presenter interface {
	Present() error
}

// Host is the environment the overlay attaches to: a browser document,
// a desktop window or an offscreen image.
type Host interface {
	ViewportSize() (w, h int)
	CreateSurface(o Overlay) (Surface, error)
}

// SurfaceManager owns the overlay surface and keeps its buffer the size of
// the viewport. It never touches surface contents.
type SurfaceManager struct {
	host    Host
	surface Surface
	log     *slog.Logger
}

func NewSurfaceManager(host Host, logger *slog.Logger) *SurfaceManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SurfaceManager{host: host, log: logger}
}

// Initialize creates the overlay surface and sizes it to the viewport.
func (m *SurfaceManager) Initialize() error {
	if m.host == nil {
		return fmt.Errorf("surface init: no host: %w", ErrNoSurface)
	}
	s, err := m.host.CreateSurface(DefaultOverlay())
	if err != nil {
		return fmt.Errorf("surface init: %w: %w", ErrNoSurface, err)
	}
	if s == nil {
		return fmt.Errorf("surface init: host returned no surface: %w", ErrNoSurface)
	}
	m.surface = s
	m.OnViewportResize()
	return nil
}

// OnViewportResize re-reads the viewport and resizes the pixel buffer.
// Calling it with an unchanged viewport is a no-op.
func (m *SurfaceManager) OnViewportResize() {
	if m.surface == nil {
		return
	}
	w, h := m.host.ViewportSize()
	if w <= 0 || h <= 0 {
		m.log.Debug("ignoring empty viewport", "width", w, "height", h)
		return
	}
	cw, ch := m.surface.Size()
	if cw == w && ch == h {
		return
	}
	m.surface.Resize(w, h)
	m.log.Debug("surface resized", "width", w, "height", h)
}

// Surface returns the managed surface, nil before Initialize succeeds.
func (m *SurfaceManager) Surface() Surface {
	return m.surface
}
