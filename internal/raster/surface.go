// Package raster is an offscreen fx.Surface backed by a float32
// premultiplied RGBA buffer. Shape coverage comes from x/image/vector;
// the canvas composite operators are applied per pixel on top of it.
// It is used for headless recording and tests.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"fireworks/internal/fx"
)

// Surface implements fx.Surface in memory.
type Surface struct {
	w, h int
	pix  []float32 // premultiplied RGBA, row-major

	op   fx.CompositeOp
	fill [4]float32 // premultiplied

	raster vector.Rasterizer
	mask   image.Alpha // coverage of the last shape
}

func New(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

// Resize reallocates and clears the buffer, like a canvas whose width or
// height attribute is assigned. An unchanged size keeps the contents.
func (s *Surface) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == s.w && h == s.h && s.pix != nil {
		return
	}
	s.w, s.h = w, h
	s.pix = make([]float32, w*h*4)
}

func (s *Surface) SetComposite(op fx.CompositeOp) { s.op = op }

func (s *Surface) SetFill(f fx.Fill) {
	a := float32(clamp01(f.Alpha))
	s.fill = [4]float32{
		float32(f.Col.R) / 255 * a,
		float32(f.Col.G) / 255 * a,
		float32(f.Col.B) / 255 * a,
		a,
	}
}

// FillRect paints an axis-aligned rectangle with area coverage on partially
// covered edge pixels.
func (s *Surface) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	px0, py0, px1, py1 := s.clip(x, y, x+w, y+h)
	z := s.path(px0, py0, px1, py1)
	if z == nil {
		return
	}
	ox, oy := float32(px0), float32(py0)
	x0, y0 := float32(x)-ox, float32(y)-oy
	x1, y1 := float32(x+w)-ox, float32(y+h)-oy
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
	s.fillPath(px0, py0, px1, py1)
}

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// FillCircle paints an anti-aliased disc.
func (s *Surface) FillCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	px0, py0, px1, py1 := s.clip(cx-r, cy-r, cx+r, cy+r)
	z := s.path(px0, py0, px1, py1)
	if z == nil {
		return
	}
	x, y := float32(cx)-float32(px0), float32(cy)-float32(py0)
	rr := float32(r)
	k := rr * kappa
	z.MoveTo(x+rr, y)
	z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	z.ClosePath()
	s.fillPath(px0, py0, px1, py1)
}

// path readies the rasterizer for a shape whose pixel box is
// [px0, px1) x [py0, py1). Path coordinates are relative to (px0, py0).
// It returns nil when the box is empty.
func (s *Surface) path(px0, py0, px1, py1 int) *vector.Rasterizer {
	w, h := px1-px0, py1-py0
	if w <= 0 || h <= 0 {
		return nil
	}
	s.raster.Reset(w, h)
	s.raster.DrawOp = draw.Src
	return &s.raster
}

// fillPath rasterizes the pending path into the coverage mask and blends
// the fill through it.
func (s *Surface) fillPath(px0, py0, px1, py1 int) {
	w, h := px1-px0, py1-py0
	if n := w * h; cap(s.mask.Pix) < n {
		s.mask.Pix = make([]uint8, n)
	} else {
		s.mask.Pix = s.mask.Pix[:n]
	}
	s.mask.Stride = w
	s.mask.Rect = image.Rect(0, 0, w, h)
	s.raster.Draw(&s.mask, s.mask.Rect, image.Opaque, image.Point{})

	for y := 0; y < h; y++ {
		row := s.mask.Pix[y*w : (y+1)*w]
		for x, m := range row {
			if m != 0 {
				s.blend(((py0+y)*s.w+px0+x)*4, float32(m)/255)
			}
		}
	}
}

func (s *Surface) blend(i int, cov float32) {
	d := s.pix[i : i+4 : i+4]
	sa := s.fill[3] * cov
	switch s.op {
	case fx.DestinationOut:
		k := 1 - sa
		d[0] *= k
		d[1] *= k
		d[2] *= k
		d[3] *= k
	case fx.Lighter:
		for c := 0; c < 4; c++ {
			d[c] = min(1, d[c]+s.fill[c]*cov)
		}
	default:
		k := 1 - sa
		for c := 0; c < 4; c++ {
			d[c] = s.fill[c]*cov + d[c]*k
		}
	}
}

// clip converts a float box to the pixel range it touches on the surface.
func (s *Surface) clip(x0, y0, x1, y1 float64) (int, int, int, int) {
	px0 := max(0, int(math.Floor(x0)))
	py0 := max(0, int(math.Floor(y0)))
	px1 := min(s.w, int(math.Ceil(x1)))
	py1 := min(s.h, int(math.Ceil(y1)))
	return px0, py0, px1, py1
}

// Pixel returns the premultiplied RGBA value at (x, y).
func (s *Surface) Pixel(x, y int) [4]float32 {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return [4]float32{}
	}
	i := (y*s.w + x) * 4
	return [4]float32{s.pix[i], s.pix[i+1], s.pix[i+2], s.pix[i+3]}
}

// Image returns a straight-alpha snapshot of the buffer.
func (s *Surface) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.w, s.h))
	for i := 0; i < len(s.pix); i += 4 {
		a := s.pix[i+3]
		if a <= 0 {
			continue
		}
		img.Pix[i] = unpremul(s.pix[i], a)
		img.Pix[i+1] = unpremul(s.pix[i+1], a)
		img.Pix[i+2] = unpremul(s.pix[i+2], a)
		img.Pix[i+3] = to8(a)
	}
	return img
}

// Flatten composites the snapshot over an opaque background colour.
func (s *Surface) Flatten(bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	br, bgc, bb := float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255
	for i := 0; i < len(s.pix); i += 4 {
		k := 1 - s.pix[i+3]
		img.Pix[i] = to8(s.pix[i] + br*k)
		img.Pix[i+1] = to8(s.pix[i+1] + bgc*k)
		img.Pix[i+2] = to8(s.pix[i+2] + bb*k)
		img.Pix[i+3] = 255
	}
	return img
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func unpremul(c, a float32) uint8 {
	return to8(c / a)
}
