package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// Recorder collects flattened frames and encodes them as an animated GIF.
type Recorder struct {
	Background color.RGBA
	Delay      int // per frame, in 1/100 s

	anim gif.GIF
}

func NewRecorder(bg color.RGBA, delay int) *Recorder {
	if delay <= 0 {
		delay = 2
	}
	return &Recorder{Background: bg, Delay: delay}
}

// Capture quantises the current surface contents into a new frame.
func (r *Recorder) Capture(s *Surface) {
	src := s.Flatten(r.Background)
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
	r.anim.Image = append(r.anim.Image, dst)
	r.anim.Delay = append(r.anim.Delay, r.Delay)
}

func (r *Recorder) Frames() int { return len(r.anim.Image) }

func (r *Recorder) Encode(w io.Writer) error {
	if len(r.anim.Image) == 0 {
		return errors.New("raster: no frames captured")
	}
	if err := gif.EncodeAll(w, &r.anim); err != nil {
		return fmt.Errorf("gif encode: %w", err)
	}
	return nil
}
