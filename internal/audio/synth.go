package audio

import (
	"encoding/binary"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

const burstDuration = 0.7 // seconds

// frameSize is one stereo float32 frame in bytes.
const frameSize = 8

// putFrame stores a stereo frame at index i as little-endian float32.
func putFrame(buf []byte, i int, left, right float64) {
	binary.LittleEndian.PutUint32(buf[i*frameSize:], math.Float32bits(float32(left)))
	binary.LittleEndian.PutUint32(buf[i*frameSize+4:], math.Float32bits(float32(right)))
}

// noise is a seeded LCG producing samples in [-1, 1].
type noise uint64

func (n *noise) next() float64 {
	*n = *n*6364136223846793005 + 1442695040888963407
	return float64(int64(*n>>33)-int64(1<<30)) / float64(1<<30)
}

// panGains maps pan in [-1,1] (left..right) to equal-power channel gains.
func panGains(pan float64) (l, r float64) {
	pan = math.Max(-1, math.Min(1, pan))
	a := (pan + 1) * math.Pi / 4
	return math.Cos(a), math.Sin(a)
}

// genBurst renders one firework: a low thump followed by a sparse crackle
// tail, panned to the burst position.
func genBurst(pan float64, seed uint64) []byte {
	n := int(burstDuration * SampleRate)
	buf := make([]byte, n*frameSize)
	gl, gr := panGains(pan)
	rnd := noise(seed)

	phase := 0.0
	lp := 0.0
	crackle := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		// Thump: pitch falls 180 -> 50 Hz.
		freq := 180 * math.Pow(50.0/180.0, math.Min(1, p*4))
		phase += 2 * math.Pi * freq / SampleRate
		thump := math.Sin(phase) * math.Exp(-p*14) * 0.55

		// Initial pop: lowpassed noise burst.
		raw := rnd.next()
		lp = lp*0.6 + raw*0.4
		pop := 0.0
		if p < 0.05 {
			pop = lp * (1 - p/0.05) * 0.5
		}

		// Crackle: random short clicks whose density thins out.
		if p > 0.08 && rnd.next() > 1-0.004*(1-p) {
			crackle = 0.45 * (0.5 + 0.5*math.Abs(rnd.next()))
		}
		crackle *= 0.93
		sparks := crackle * raw

		// tanh bounds the mix to (-1, 1).
		s := math.Tanh(thump + pop + sparks)
		putFrame(buf, i, s*gl, s*gr)
	}
	return buf
}
