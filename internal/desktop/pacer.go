//go:build !js

package desktop

import (
	"context"
	"time"

	"fireworks/internal/fx"
)

// framePacer keeps the loop at the display rate when a frame ends without
// a vsync'd buffer swap, e.g. after a failed paint.
type framePacer struct {
	interval time.Duration
	last     time.Time
	swapped  bool
}

func newFramePacer(refreshHz int) *framePacer {
	if refreshHz <= 0 {
		refreshHz = 60
	}
	return &framePacer{interval: time.Second / time.Duration(refreshHz)}
}

// Swapped records that the previous frame was presented.
func (p *framePacer) Swapped() { p.swapped = true }

// next returns how long to wait before starting the frame at now. A swap
// since the last frame already blocked on vsync, so no wait is needed.
func (p *framePacer) next(now time.Time) time.Duration {
	var d time.Duration
	if !p.swapped && !p.last.IsZero() {
		d = max(0, p.interval-now.Sub(p.last))
	}
	p.swapped = false
	p.last = now.Add(d)
	return d
}

func (p *framePacer) wait(ctx context.Context) error {
	d := p.next(time.Now())
	if d == 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// unsupportedOverlay lists the overlay options a glfw window cannot honour.
// glfw 3.3 has no mouse passthrough, so the window receives every click
// inside it.
func unsupportedOverlay(o fx.Overlay) []string {
	var opts []string
	if o.InputTransparent {
		opts = append(opts, "input_transparent")
	}
	return opts
}
