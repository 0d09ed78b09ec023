package raster

import (
	"bytes"
	"context"
	"image/color"
	"image/gif"
	"math"
	"testing"

	"pgregory.net/rapid"

	"fireworks/internal/fx"
)

var (
	red   = fx.RGB{R: 255}
	white = fx.RGB{R: 255, G: 255, B: 255}
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-5 }

func assertPixel(t *testing.T, s *Surface, x, y int, want [4]float32) {
	t.Helper()
	got := s.Pixel(x, y)
	for c := 0; c < 4; c++ {
		if !near(got[c], want[c]) {
			t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
		}
	}
}

func TestCompositing(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Surface)
		want [4]float32
	}{
		{"source-over opaque", func(s *Surface) {
			s.SetFill(fx.Fill{Col: red, Alpha: 1})
			s.FillRect(0, 0, 4, 4)
		}, [4]float32{1, 0, 0, 1}},
		{"source-over half on white", func(s *Surface) {
			s.SetFill(fx.Fill{Col: white, Alpha: 1})
			s.FillRect(0, 0, 4, 4)
			s.SetFill(fx.Fill{Col: red, Alpha: 0.5})
			s.FillRect(0, 0, 4, 4)
		}, [4]float32{1, 0.5, 0.5, 1}},
		{"destination-out fades", func(s *Surface) {
			s.SetFill(fx.Fill{Col: white, Alpha: 1})
			s.FillRect(0, 0, 4, 4)
			s.SetComposite(fx.DestinationOut)
			s.SetFill(fx.Fill{Alpha: 0.2})
			s.FillRect(0, 0, 4, 4)
		}, [4]float32{0.8, 0.8, 0.8, 0.8}},
		{"destination-out ignores colour", func(s *Surface) {
			s.SetFill(fx.Fill{Col: white, Alpha: 1})
			s.FillRect(0, 0, 4, 4)
			s.SetComposite(fx.DestinationOut)
			s.SetFill(fx.Fill{Col: red, Alpha: 0.5})
			s.FillRect(0, 0, 4, 4)
		}, [4]float32{0.5, 0.5, 0.5, 0.5}},
		{"lighter adds and clamps", func(s *Surface) {
			s.SetComposite(fx.Lighter)
			s.SetFill(fx.Fill{Col: red, Alpha: 0.6})
			s.FillRect(0, 0, 4, 4)
			s.FillRect(0, 0, 4, 4)
		}, [4]float32{1, 0, 0, 1}},
		{"lighter partial", func(s *Surface) {
			s.SetComposite(fx.Lighter)
			s.SetFill(fx.Fill{Col: red, Alpha: 0.25})
			s.FillRect(0, 0, 4, 4)
			s.SetFill(fx.Fill{Col: fx.RGB{B: 255}, Alpha: 0.5})
			s.FillRect(0, 0, 4, 4)
		}, [4]float32{0.25, 0, 0.5, 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(4, 4)
			tt.draw(s)
			assertPixel(t, s, 2, 2, tt.want)
		})
	}
}

func TestFillRectPartialCoverage(t *testing.T) {
	s := New(4, 1)
	s.SetFill(fx.Fill{Col: white, Alpha: 1})
	s.FillRect(0.5, 0, 2, 1)

	// Coverage is quantised to 8 bits.
	wantAlpha := []float32{0.5, 1, 0.5, 0}
	for x, want := range wantAlpha {
		got := s.Pixel(x, 0)
		if math.Abs(float64(got[3]-want)) > 1.0/255 {
			t.Errorf("pixel %d alpha = %v, want %v", x, got[3], want)
		}
		if got[0] != got[3] {
			t.Errorf("pixel %d premultiplied white %v", x, got)
		}
	}
}

func TestFillCircleCoverageMatchesArea(t *testing.T) {
	s := New(40, 40)
	s.SetFill(fx.Fill{Col: white, Alpha: 1})
	s.FillCircle(20.3, 19.6, 8)

	var sum float64
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			sum += float64(s.Pixel(x, y)[3])
		}
	}
	want := math.Pi * 8 * 8
	if math.Abs(sum-want) > want*0.01 {
		t.Errorf("covered area = %.2f, want about %.2f", sum, want)
	}
}

func TestFillCircleClippedAtEdge(t *testing.T) {
	s := New(10, 10)
	s.SetFill(fx.Fill{Col: white, Alpha: 1})
	s.FillCircle(0, 5, 3)

	assertPixel(t, s, 0, 5, [4]float32{1, 1, 1, 1})
	assertPixel(t, s, 5, 5, [4]float32{})
}

func TestFillCircle(t *testing.T) {
	s := New(20, 20)
	s.SetFill(fx.Fill{Col: white, Alpha: 1})
	s.FillCircle(10, 10, 3)

	assertPixel(t, s, 10, 10, [4]float32{1, 1, 1, 1})
	assertPixel(t, s, 0, 0, [4]float32{})
	assertPixel(t, s, 18, 10, [4]float32{})
	edge := s.Pixel(12, 10) // partially covered rim
	if edge[3] <= 0 || edge[3] > 1 {
		t.Errorf("edge alpha = %v", edge[3])
	}
}

func TestFillOffSurfaceIsClipped(t *testing.T) {
	s := New(8, 8)
	s.SetFill(fx.Fill{Col: white, Alpha: 1})
	s.FillCircle(-50, -50, 3)
	s.FillCircle(4, 100, 3)
	s.FillRect(-10, -10, 5, 5)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assertPixel(t, s, x, y, [4]float32{})
		}
	}
}

func TestResize(t *testing.T) {
	s := New(4, 4)
	s.SetFill(fx.Fill{Col: white, Alpha: 1})
	s.FillRect(0, 0, 4, 4)

	s.Resize(4, 4)
	assertPixel(t, s, 1, 1, [4]float32{1, 1, 1, 1})

	s.Resize(6, 3)
	if w, h := s.Size(); w != 6 || h != 3 {
		t.Fatalf("size %dx%d", w, h)
	}
	assertPixel(t, s, 1, 1, [4]float32{})
}

func TestImageUnpremultiplies(t *testing.T) {
	s := New(1, 1)
	s.SetFill(fx.Fill{Col: red, Alpha: 0.5})
	s.FillRect(0, 0, 1, 1)

	got := s.Image().NRGBAAt(0, 0)
	want := color.NRGBA{R: 255, A: 128}
	if got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	flat := s.Flatten(color.RGBA{B: 255, A: 255}).RGBAAt(0, 0)
	if flat.R != 128 || flat.B != 128 || flat.A != 255 {
		t.Errorf("flattened = %v", flat)
	}
}

func TestDestinationOutNeverBrightens(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(2, 2)
		s.SetComposite(fx.Lighter)
		s.SetFill(fx.Fill{Col: fx.RGB{R: 200, G: 120, B: 40}, Alpha: rapid.Float64Range(0, 1).Draw(t, "alpha")})
		s.FillRect(0, 0, 2, 2)

		s.SetComposite(fx.DestinationOut)
		frames := rapid.IntRange(1, 50).Draw(t, "frames")
		for i := 0; i < frames; i++ {
			before := s.Pixel(0, 0)
			s.SetFill(fx.Fill{Alpha: rapid.Float64Range(0, 1).Draw(t, "fade")})
			s.FillRect(0, 0, 2, 2)
			after := s.Pixel(0, 0)
			for c := 0; c < 4; c++ {
				if after[c] > before[c] || after[c] < 0 {
					t.Fatalf("channel %d went %v -> %v", c, before[c], after[c])
				}
			}
			if after[0] > after[3]+1e-6 {
				t.Fatalf("premultiplied colour %v above alpha %v", after[0], after[3])
			}
		}
	})
}

func TestEngineRendersBurstAndFades(t *testing.T) {
	host := &Host{Width: 64, Height: 64}
	var e *fx.Engine
	sched := &Counter{Frames: 300, Before: func(n int) {
		if n == 1 {
			e.Click(32, 32)
		}
	}}
	e, err := fx.New(fx.Config{Host: host, Scheduler: sched, System: fx.NewParticleSystem(-1, 9)})
	if err != nil {
		t.Fatal(err)
	}

	var litAfterFirst float32
	e.Events().Subscribe(fx.EventFrame, func(ev fx.Event) {
		if ev.Frame == 1 {
			for y := 0; y < 64; y++ {
				for x := 0; x < 64; x++ {
					litAfterFirst = max(litAfterFirst, host.Surface().Pixel(x, y)[3])
				}
			}
		}
	})

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if litAfterFirst < 0.5 {
		t.Errorf("max alpha after first frame = %v", litAfterFirst)
	}
	if host.Overlay().ZIndex != fx.TopLayer || !host.Overlay().InputTransparent {
		t.Errorf("overlay = %+v", host.Overlay())
	}
	if st := e.Stats(); st.Frames != 300 || st.Particles != 0 {
		t.Errorf("stats = %+v", st)
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if a := host.Surface().Pixel(x, y)[3]; a > 1e-3 {
				t.Fatalf("pixel (%d, %d) alpha %v after fade", x, y, a)
			}
		}
	}
}

func TestEngineFollowsHostResize(t *testing.T) {
	host := &Host{Width: 800, Height: 600}
	var e *fx.Engine
	sched := &Counter{Frames: 2, Before: func(n int) {
		if n == 2 {
			host.Width, host.Height = 1024, 768
			e.ViewportResized()
		}
	}}
	e, err := fx.New(fx.Config{Host: host, Scheduler: sched})
	if err != nil {
		t.Fatal(err)
	}
	var sizes [][2]int
	e.Events().Subscribe(fx.EventFrame, func(fx.Event) {
		w, h := host.Surface().Size()
		sizes = append(sizes, [2]int{w, h})
	})
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(sizes) != 2 || sizes[0] != [2]int{800, 600} || sizes[1] != [2]int{1024, 768} {
		t.Errorf("sizes = %v", sizes)
	}
}

func TestRecorderEncodes(t *testing.T) {
	s := New(16, 16)
	r := NewRecorder(color.RGBA{A: 255}, 4)
	if err := r.Encode(&bytes.Buffer{}); err == nil {
		t.Error("Encode with no frames succeeded")
	}

	r.Capture(s)
	s.SetFill(fx.Fill{Col: white, Alpha: 1})
	s.FillCircle(8, 8, 4)
	r.Capture(s)

	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 2 || g.Delay[1] != 4 {
		t.Fatalf("frames = %d, delays = %v", len(g.Image), g.Delay)
	}
	r0, _, _, _ := g.Image[1].At(8, 8).RGBA()
	if r0>>8 < 200 {
		t.Errorf("centre of second frame = %d, want bright", r0>>8)
	}
}
