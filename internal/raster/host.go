package raster

import (
	"context"

	"fireworks/internal/fx"
)

// Host is an offscreen viewport. Width and Height may be changed between
// frames to simulate a window resize.
type Host struct {
	Width, Height int
	// Fail, when set, is returned by CreateSurface.
	Fail error

	surface *Surface
	overlay fx.Overlay
}

func (h *Host) ViewportSize() (int, int) { return h.Width, h.Height }

func (h *Host) CreateSurface(o fx.Overlay) (fx.Surface, error) {
	if h.Fail != nil {
		return nil, h.Fail
	}
	h.overlay = o
	h.surface = New(0, 0)
	return h.surface, nil
}

// Surface returns the surface created by the engine, nil before Run.
func (h *Host) Surface() *Surface { return h.surface }

func (h *Host) Overlay() fx.Overlay { return h.overlay }

// Counter is a scheduler that grants Frames frames without waiting and
// then reports fx.ErrStopped. Before, if set, runs ahead of each frame
// with its 1-based number.
type Counter struct {
	Frames int
	Before func(frame int)

	n int
}

func (c *Counter) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.n >= c.Frames {
		return fx.ErrStopped
	}
	c.n++
	if c.Before != nil {
		c.Before(c.n)
	}
	return nil
}
