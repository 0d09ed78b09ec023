//go:build !js

package desktop

import (
	"reflect"
	"testing"
	"time"

	"fireworks/internal/fx"
)

func TestFramePacer(t *testing.T) {
	p := newFramePacer(50) // 20ms
	t0 := time.Unix(100, 0)

	if d := p.next(t0); d != 0 {
		t.Fatalf("first frame waits %v", d)
	}
	// No swap: the rest of the interval is slept.
	if d := p.next(t0.Add(5 * time.Millisecond)); d != 15*time.Millisecond {
		t.Fatalf("unswapped frame waits %v, want 15ms", d)
	}
	// Timing resumes from the end of the wait.
	if d := p.next(t0.Add(45 * time.Millisecond)); d != 0 {
		t.Fatalf("late frame waits %v", d)
	}

	p.Swapped()
	if d := p.next(t0.Add(46 * time.Millisecond)); d != 0 {
		t.Fatalf("swapped frame waits %v", d)
	}
	if d := p.next(t0.Add(50 * time.Millisecond)); d != 16*time.Millisecond {
		t.Fatalf("frame after swap waits %v, want 16ms", d)
	}
}

func TestFramePacerDefaultRate(t *testing.T) {
	if p := newFramePacer(0); p.interval != time.Second/60 {
		t.Errorf("interval = %v", p.interval)
	}
}

func TestUnsupportedOverlay(t *testing.T) {
	if got := unsupportedOverlay(fx.DefaultOverlay()); !reflect.DeepEqual(got, []string{"input_transparent"}) {
		t.Errorf("default overlay: %v", got)
	}
	o := fx.DefaultOverlay()
	o.InputTransparent = false
	if got := unsupportedOverlay(o); len(got) != 0 {
		t.Errorf("opaque overlay: %v", got)
	}
}
