package fx

// Particle is a single firework spark in surface pixel space.
type Particle struct {
	X, Y   float64
	VX, VY float64 // pixels per tick

	Opacity float64 // [0..1], strictly decreasing
	Radius  float64
	Decay   float64 // subtracted from Opacity every tick
	Hue     float64 // degrees
}

// Alive reports whether the particle still has visible opacity.
func (p *Particle) Alive() bool {
	return p.Opacity > expiryEpsilon
}

// ParticleSystem owns the particle collection. P is kept in spawn order,
// oldest first, so the ceiling can evict the oldest sparks.
type ParticleSystem struct {
	Max   int // 0 = unbounded
	P     []Particle
	Burst BurstParams
	Sim   SimParams

	rng *Rand
}

// NewParticleSystem creates a system with default burst and tick parameters.
// maxParticles < 0 selects MaxParticles, 0 leaves the collection unbounded.
func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles < 0 {
		maxParticles = MaxParticles
	}
	capHint := maxParticles
	if capHint == 0 || capHint > MaxParticles {
		capHint = MaxParticles
	}
	return &ParticleSystem{
		Max:   maxParticles,
		P:     make([]Particle, 0, capHint),
		Burst: DefaultBurst(),
		Sim:   DefaultSim(),
		rng:   NewRand(seed),
	}
}

func (ps *ParticleSystem) Len() int { return len(ps.P) }

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
}

// Add appends a particle, evicting the oldest one when the ceiling is reached.
func (ps *ParticleSystem) Add(p Particle) {
	ps.reserve(1)
	ps.P = append(ps.P, p)
}

// reserve makes room for n new particles by dropping the oldest ones.
func (ps *ParticleSystem) reserve(n int) {
	if ps.Max <= 0 {
		return
	}
	over := len(ps.P) + n - ps.Max
	if over <= 0 {
		return
	}
	if over >= len(ps.P) {
		ps.P = ps.P[:0]
		return
	}
	m := copy(ps.P, ps.P[over:])
	ps.P = ps.P[:m]
}

// trim drops the oldest particles beyond the ceiling. A burst larger than
// the ceiling keeps only its newest sparks.
func (ps *ParticleSystem) trim() {
	if ps.Max <= 0 || len(ps.P) <= ps.Max {
		return
	}
	m := copy(ps.P, ps.P[len(ps.P)-ps.Max:])
	ps.P = ps.P[:m]
}
