package fx

// SimParams are the per-tick physics and paint constants.
type SimParams struct {
	Gravity    float64
	TrailAlpha float64
	Saturation float64
	Lightness  float64
}

func DefaultSim() SimParams {
	return SimParams{
		Gravity:    Gravity,
		TrailAlpha: TrailAlpha,
		Saturation: ParticleSaturation,
		Lightness:  ParticleLightness,
	}
}

// Update advances every particle by one tick and drops the ones whose
// opacity reached zero. Survivors keep their relative (spawn) order.
func (ps *ParticleSystem) Update() {
	g := ps.Sim.Gravity
	n := 0
	for i := range ps.P {
		p := ps.P[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += g
		p.Opacity -= p.Decay
		if !p.Alive() {
			continue
		}
		ps.P[n] = p
		n++
	}
	ps.P = ps.P[:n]
}
