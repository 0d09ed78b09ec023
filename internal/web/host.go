//go:build js && wasm

package web

import (
	"context"
	"errors"
	"math"
	"strconv"
	"syscall/js"

	"fireworks/internal/fx"
)

// Host attaches a full-viewport <canvas> to the current document.
type Host struct {
	window   js.Value
	document js.Value
	canvas   js.Value

	callbacks []js.Func
	listeners []listener

	frameCb js.Func
	frameCh chan struct{}
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

func NewHost() *Host {
	h := &Host{
		window:   js.Global(),
		document: js.Global().Get("document"),
		frameCh:  make(chan struct{}, 1),
	}
	h.frameCb = js.FuncOf(func(js.Value, []js.Value) any {
		select {
		case h.frameCh <- struct{}{}:
		default:
		}
		return nil
	})
	h.callbacks = append(h.callbacks, h.frameCb)
	return h
}

func (h *Host) ViewportSize() (int, int) {
	return h.window.Get("innerWidth").Int(), h.window.Get("innerHeight").Int()
}

// CreateSurface appends a canvas styled from the overlay placement.
func (h *Host) CreateSurface(o fx.Overlay) (fx.Surface, error) {
	if h.document.IsUndefined() || h.document.IsNull() {
		return nil, errors.New("no document")
	}
	body := h.document.Get("body")
	if body.IsNull() || body.IsUndefined() {
		return nil, errors.New("document has no body")
	}
	canvas := h.document.Call("createElement", "canvas")
	ctx := canvas.Call("getContext", "2d")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, errors.New("2d context unsupported")
	}

	style := canvas.Get("style")
	if o.Fixed {
		style.Set("position", "fixed")
	}
	style.Set("left", strconv.Itoa(o.Left)+"px")
	style.Set("top", strconv.Itoa(o.Top)+"px")
	if o.FullViewport {
		style.Set("width", "100%")
		style.Set("height", "100%")
	}
	if o.InputTransparent {
		style.Set("pointerEvents", "none")
	}
	style.Set("zIndex", strconv.Itoa(o.ZIndex))
	body.Call("appendChild", canvas)

	h.canvas = canvas
	return &Canvas{el: canvas, ctx: ctx}, nil
}

// Bind routes document clicks and window resizes to the engine.
func (h *Host) Bind(e *fx.Engine) {
	h.listen(h.document, "click", func(ev js.Value) {
		e.Click(ev.Get("clientX").Float(), ev.Get("clientY").Float())
	})
	h.listen(h.window, "resize", func(js.Value) {
		e.ViewportResized()
	})
}

func (h *Host) listen(target js.Value, event string, fn func(ev js.Value)) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	target.Call("addEventListener", event, cb)
	h.listeners = append(h.listeners, listener{target: target, event: event, fn: cb})
}

// NextFrame waits for requestAnimationFrame. Cancelling ctx cancels the
// pending request.
func (h *Host) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := h.window.Call("requestAnimationFrame", h.frameCb)
	select {
	case <-h.frameCh:
		return nil
	case <-ctx.Done():
		h.window.Call("cancelAnimationFrame", id)
		return ctx.Err()
	}
}

// Close removes listeners and the canvas and releases JS callbacks.
func (h *Host) Close() {
	for _, l := range h.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	h.listeners = nil
	for _, cb := range h.callbacks {
		cb.Release()
	}
	h.callbacks = nil
	if !h.canvas.IsUndefined() && !h.canvas.IsNull() {
		h.canvas.Call("remove")
	}
}

// Canvas adapts a CanvasRenderingContext2D to fx.Surface. Failed JS calls
// panic with js.Error, which the simulator recovers per frame.
type Canvas struct {
	el, ctx js.Value
}

func (c *Canvas) Size() (int, int) {
	return c.el.Get("width").Int(), c.el.Get("height").Int()
}

// Resize sets the pixel buffer size; the browser clears the canvas.
func (c *Canvas) Resize(w, h int) {
	c.el.Set("width", w)
	c.el.Set("height", h)
}

func (c *Canvas) SetComposite(op fx.CompositeOp) {
	c.ctx.Set("globalCompositeOperation", op.String())
}

func (c *Canvas) SetFill(f fx.Fill) {
	c.ctx.Set("fillStyle", cssRGBA(f))
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.ctx.Call("fillRect", x, y, w, h)
}

func (c *Canvas) FillCircle(cx, cy, r float64) {
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", cx, cy, r, 0, 2*math.Pi)
	c.ctx.Call("fill")
}
