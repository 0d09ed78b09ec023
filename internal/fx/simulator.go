package fx

import (
	"fmt"
	"log/slog"
)

// Simulator advances the particle collection once per frame and paints it
// onto a borrowed surface. It never resizes the surface.
type Simulator struct {
	ps   *ParticleSystem
	log  *slog.Logger
	hues *hueCache
}

func NewSimulator(ps *ParticleSystem, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{ps: ps, log: logger}
}

func (s *Simulator) System() *ParticleSystem { return s.ps }

// SpawnBurst adds one burst centred on (x, y).
func (s *Simulator) SpawnBurst(x, y float64) {
	s.ps.SpawnBurst(x, y)
}

// Tick integrates physics, drops expired particles and paints the
// survivors. Physics always runs; a paint failure is returned wrapped in
// ErrPaint and leaves the collection consistent for the next tick.
func (s *Simulator) Tick(surf Surface) error {
	s.ps.Update()
	if surf == nil {
		return nil
	}
	return s.Paint(surf)
}

// Paint fades the previous frame and draws every live particle additively.
func (s *Simulator) Paint(surf Surface) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPaint, r)
		}
	}()

	sim := s.ps.Sim
	if s.hues == nil || s.hues.sat != sim.Saturation || s.hues.light != sim.Lightness {
		s.hues = newHueCache(sim.Saturation, sim.Lightness)
	}

	w, h := surf.Size()
	surf.SetComposite(DestinationOut)
	surf.SetFill(Fill{Col: Palette.Trail, Alpha: sim.TrailAlpha})
	surf.FillRect(0, 0, float64(w), float64(h))

	surf.SetComposite(Lighter)
	for i := range s.ps.P {
		p := &s.ps.P[i]
		surf.SetFill(Fill{Col: s.hues.get(p.Hue), Alpha: p.Opacity})
		surf.FillCircle(p.X, p.Y, p.Radius)
	}

	if pr, ok := surf.(Presenter); ok {
		if perr := pr.Present(); perr != nil {
			return fmt.Errorf("%w: present: %w", ErrPaint, perr)
		}
	}
	return nil
}
