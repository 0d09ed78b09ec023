package fx

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

const tol = 1e-9

func TestSpawnBurstCountAndAngles(t *testing.T) {
	ps := NewParticleSystem(-1, 7)
	ps.SpawnBurst(100, 100)

	if ps.Len() != BurstCount {
		t.Fatalf("len = %d, want %d", ps.Len(), BurstCount)
	}
	for i, p := range ps.P {
		spd := math.Hypot(p.VX, p.VY)
		if spd < BurstSpeedMin || spd >= BurstSpeedMax {
			t.Errorf("particle %d: speed %v outside [%v, %v)", i, spd, BurstSpeedMin, BurstSpeedMax)
		}
		ang := BurstAngle(i, BurstCount)
		if math.Abs(p.VX/spd-math.Cos(ang)) > tol || math.Abs(p.VY/spd-math.Sin(ang)) > tol {
			t.Errorf("particle %d: direction (%v, %v) does not match angle %v", i, p.VX, p.VY, ang)
		}
		if p.X != 100 || p.Y != 100 {
			t.Errorf("particle %d: origin (%v, %v)", i, p.X, p.Y)
		}
		if p.Opacity != 1 {
			t.Errorf("particle %d: opacity %v", i, p.Opacity)
		}
	}
}

func TestSpawnBurstRanges(t *testing.T) {
	ps := NewParticleSystem(0, 99)
	for i := 0; i < 20; i++ {
		ps.SpawnBurst(0, 0)
	}
	for i, p := range ps.P {
		if p.Radius < BurstRadiusMin || p.Radius >= BurstRadiusMax {
			t.Errorf("particle %d: radius %v", i, p.Radius)
		}
		if p.Decay < BurstDecayMin || p.Decay >= BurstDecayMax {
			t.Errorf("particle %d: decay %v", i, p.Decay)
		}
		if p.Hue < BurstHueMin || p.Hue >= BurstHueMax {
			t.Errorf("particle %d: hue %v", i, p.Hue)
		}
	}
}

func TestBurstAngleEvenlySpaced(t *testing.T) {
	if got := BurstAngle(0, 45); got != 0 {
		t.Errorf("first angle = %v", got)
	}
	step := 2 * math.Pi / 45
	for i := 1; i < 45; i++ {
		d := BurstAngle(i, 45) - BurstAngle(i-1, 45)
		if math.Abs(d-step) > tol {
			t.Errorf("gap %d = %v, want %v", i, d, step)
		}
	}
}

func TestTwoBurstsWithoutTick(t *testing.T) {
	ps := NewParticleSystem(-1, 1)
	ps.SpawnBurst(10, 10)
	ps.SpawnBurst(500, 20)
	if ps.Len() != 90 {
		t.Fatalf("len = %d, want 90", ps.Len())
	}
}

func TestFiveTicksAfterBurst(t *testing.T) {
	ps := NewParticleSystem(-1, 3)
	ps.SpawnBurst(100, 100)
	start := append([]Particle(nil), ps.P...)

	for i := 0; i < 5; i++ {
		ps.Update()
	}

	if ps.Len() != 45 {
		t.Fatalf("len = %d, want 45", ps.Len())
	}
	g := ps.Sim.Gravity
	for i, p := range ps.P {
		s := start[i]
		wantX := 100 + 5*s.VX
		wantY := 100 + 5*s.VY + 10*g // g*(0+1+2+3+4)
		if math.Abs(p.X-wantX) > tol || math.Abs(p.Y-wantY) > tol {
			t.Errorf("particle %d at (%v, %v), want (%v, %v)", i, p.X, p.Y, wantX, wantY)
		}
		if math.Abs(p.Opacity-(1-5*s.Decay)) > tol {
			t.Errorf("particle %d opacity %v, want %v", i, p.Opacity, 1-5*s.Decay)
		}
		if math.Abs(p.VY-(s.VY+5*g)) > tol {
			t.Errorf("particle %d vy %v", i, p.VY)
		}
	}
}

func TestDecayRemovalTick(t *testing.T) {
	tests := []struct {
		decay     float64
		removedAt int
	}{
		{0.035, 29},
		{0.015, 67},
		{0.02, 50},
		{0.5, 2},
		{1, 1},
	}
	for _, tt := range tests {
		ps := NewParticleSystem(0, 1)
		ps.Add(Particle{Opacity: 1, Decay: tt.decay, Radius: 2})
		tick := 0
		for ps.Len() > 0 && tick < 1000 {
			ps.Update()
			tick++
		}
		if tick != tt.removedAt {
			t.Errorf("decay %v: removed at tick %d, want %d", tt.decay, tick, tt.removedAt)
		}
	}
}

func TestUpdateKeepsSpawnOrder(t *testing.T) {
	ps := NewParticleSystem(0, 1)
	for i := 0; i < 6; i++ {
		d := 0.1
		if i%2 == 0 {
			d = 0.6
		}
		ps.Add(Particle{X: float64(i), Opacity: 1, Decay: d})
	}
	ps.Update()
	ps.Update()
	if ps.Len() != 3 {
		t.Fatalf("len = %d, want 3", ps.Len())
	}
	for i, want := range []float64{1, 3, 5} {
		if ps.P[i].X != want {
			t.Errorf("P[%d].X = %v, want %v", i, ps.P[i].X, want)
		}
	}
}

func TestCeilingDropsOldest(t *testing.T) {
	ps := NewParticleSystem(100, 1)
	ps.Burst.Count = 40
	ps.SpawnBurst(1, 0)
	ps.SpawnBurst(2, 0)
	ps.SpawnBurst(3, 0)

	if ps.Len() != 100 {
		t.Fatalf("len = %d, want 100", ps.Len())
	}
	// 20 of the first burst were evicted.
	for i, p := range ps.P {
		want := 1.0
		switch {
		case i >= 60:
			want = 3
		case i >= 20:
			want = 2
		}
		if p.X != want {
			t.Fatalf("P[%d].X = %v, want %v", i, p.X, want)
		}
	}
}

func TestUnboundedCollection(t *testing.T) {
	ps := NewParticleSystem(0, 1)
	for i := 0; i < 150; i++ {
		ps.SpawnBurst(0, 0)
	}
	if ps.Len() != 150*BurstCount {
		t.Fatalf("len = %d", ps.Len())
	}
}

func TestDefaultCeiling(t *testing.T) {
	ps := NewParticleSystem(-1, 1)
	for i := 0; i < 120; i++ {
		ps.SpawnBurst(0, 0)
	}
	if ps.Len() != MaxParticles {
		t.Fatalf("len = %d, want %d", ps.Len(), MaxParticles)
	}
}

func TestOpacityDecreasesByDecay(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		decay := rapid.Float64Range(0.001, 0.5).Draw(t, "decay")
		ticks := rapid.IntRange(1, 300).Draw(t, "ticks")

		ps := NewParticleSystem(0, 1)
		ps.Add(Particle{Opacity: 1, Decay: decay})
		prev := 1.0
		for k := 1; k <= ticks; k++ {
			ps.Update()
			if ps.Len() == 0 {
				if rem := 1 - float64(k)*decay; rem > 1e-6 {
					t.Fatalf("removed at tick %d with %v opacity left", k, rem)
				}
				return
			}
			op := ps.P[0].Opacity
			if op <= 0 {
				t.Fatalf("tick %d: kept particle with opacity %v", k, op)
			}
			if math.Abs(prev-decay-op) > 1e-12 {
				t.Fatalf("tick %d: opacity %v, want %v", k, op, prev-decay)
			}
			prev = op
		}
	})
}

func TestCollectionInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxN := rapid.IntRange(1, 1000).Draw(t, "max")
		ps := NewParticleSystem(maxN, rapid.Uint64().Draw(t, "seed"))
		steps := rapid.SliceOfN(rapid.Bool(), 1, 200).Draw(t, "steps")
		for _, spawn := range steps {
			if spawn {
				ps.SpawnBurst(rapid.Float64Range(-100, 2000).Draw(t, "x"), rapid.Float64Range(-100, 2000).Draw(t, "y"))
			} else {
				ps.Update()
				for i := range ps.P {
					if !ps.P[i].Alive() {
						t.Fatalf("expired particle %d kept: %+v", i, ps.P[i])
					}
				}
			}
			if ps.Len() > maxN {
				t.Fatalf("len %d over ceiling %d", ps.Len(), maxN)
			}
		}
	})
}

func TestBurstLargerThanCeiling(t *testing.T) {
	ps := NewParticleSystem(10, 1)
	ps.SpawnBurst(0, 0)
	if ps.Len() != 10 {
		t.Fatalf("len = %d, want 10", ps.Len())
	}
	// The newest sparks of the burst survive, in spawn order.
	for i := range ps.P {
		want := BurstAngle(BurstCount-10+i, BurstCount)
		got := math.Atan2(ps.P[i].VY, ps.P[i].VX)
		if got < 0 {
			got += 2 * math.Pi
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("particle %d angle %v, want %v", i, got, want)
		}
	}

	ps.SpawnBurst(5, 5)
	if ps.Len() != 10 || ps.P[0].X != 5 {
		t.Errorf("second burst: len %d, first x %v", ps.Len(), ps.P[0].X)
	}
}
