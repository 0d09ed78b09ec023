package audio

import (
	"bytes"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// maxConcurrent limits simultaneous burst sounds to avoid speaker clipping.
const maxConcurrent = 3

// Player plays procedurally generated burst sounds through oto.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64

	active  atomic.Int32
	variant atomic.Uint64
}

// New opens the audio device. Callers should continue without sound when
// it fails.
func New(volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio init: %w", err)
	}
	return &Player{ctx: ctx, ready: ready, volume: clamp(volume, 0, 1)}, nil
}

// PlayBurst plays one burst sound. pan is -1 (left) to 1 (right). It
// returns immediately; playback runs on its own goroutine.
func (p *Player) PlayBurst(pan float64) {
	if p == nil || p.volume <= 0 {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	if p.active.Add(1) > maxConcurrent {
		p.active.Add(-1)
		return
	}
	seed := p.variant.Add(1) ^ uint64(time.Now().UnixNano())
	samples := genBurst(pan, seed)
	go func() {
		defer p.active.Add(-1)
		player := p.ctx.NewPlayer(bytes.NewReader(samples))
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Pan converts an x coordinate on a surface of the given width to a pan value.
func Pan(x float64, width int) float64 {
	if width <= 0 {
		return 0
	}
	return clamp(x/float64(width)*2-1, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
