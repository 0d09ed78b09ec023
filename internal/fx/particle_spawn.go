package fx

import "math"

// BurstParams shapes the particles created by one click.
type BurstParams struct {
	Count                int
	SpeedMin, SpeedMax   float64
	RadiusMin, RadiusMax float64
	DecayMin, DecayMax   float64
	HueMin, HueMax       float64
}

func DefaultBurst() BurstParams {
	return BurstParams{
		Count:     BurstCount,
		SpeedMin:  BurstSpeedMin,
		SpeedMax:  BurstSpeedMax,
		RadiusMin: BurstRadiusMin,
		RadiusMax: BurstRadiusMax,
		DecayMin:  BurstDecayMin,
		DecayMax:  BurstDecayMax,
		HueMin:    BurstHueMin,
		HueMax:    BurstHueMax,
	}
}

// BurstAngle is the launch angle of the i-th particle of a burst of n.
func BurstAngle(i, n int) float64 {
	return 2 * math.Pi * float64(i) / float64(n)
}

// SpawnBurst appends one radial burst centred on (x, y). Coordinates are
// not constrained to the surface; off-screen sparks may drift into view.
func (ps *ParticleSystem) SpawnBurst(x, y float64) {
	b := ps.Burst
	if b.Count <= 0 {
		return
	}
	ps.reserve(b.Count)
	r := ps.rng

	for i := 0; i < b.Count; i++ {
		ang := BurstAngle(i, b.Count)
		spd := r.RangeF(b.SpeedMin, b.SpeedMax)
		ps.P = append(ps.P, Particle{
			X: x, Y: y,
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Opacity: 1.0,
			Radius:  r.RangeF(b.RadiusMin, b.RadiusMax),
			Decay:   r.RangeF(b.DecayMin, b.DecayMax),
			Hue:     r.RangeF(b.HueMin, b.HueMax),
		})
	}
	ps.trim()
}
