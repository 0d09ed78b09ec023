package fx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler is the host's frame clock. NextFrame blocks until the host is
// ready for the next repaint. It returns ctx.Err() when ctx is cancelled
// and ErrSurfaceClosed (or ErrStopped) when the host has no more frames.
type Scheduler interface {
	NextFrame(ctx context.Context) error
}

type State int32

const (
	StateIdle     State = iota // constructed, Run not called yet
	StateRunning               // frame loop active
	StateStopped               // Stop called or the host went away
	StateDisabled              // no drawing surface; clicks are ignored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateDisabled:
		return "disabled"
	}
	return "unknown"
}

// Config wires an Engine to its host.
type Config struct {
	Host      Host
	Scheduler Scheduler
	// System is the particle collection. Nil creates one with the default
	// ceiling and a clock seed.
	System *ParticleSystem
	Events *EventBus
	Logger *slog.Logger
}

// Stats is a point-in-time snapshot of the engine counters.
type Stats struct {
	State         State
	Frames        uint64
	Bursts        uint64
	PaintFailures uint64
	Particles     int
}

type click struct{ x, y float64 }

// Engine runs the overlay: it owns the surface manager and the simulator
// and drives them from a single frame loop. Click, ViewportResized, Stop
// and Stats are safe to call from any goroutine.
type Engine struct {
	log       *slog.Logger
	scheduler Scheduler
	surfaces  *SurfaceManager
	sim       *Simulator
	events    *EventBus

	clicks   chan click
	resized  atomic.Bool
	stopping atomic.Bool
	state    atomic.Int32

	frames    atomic.Uint64
	bursts    atomic.Uint64
	failures  atomic.Uint64
	particles atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates an Engine with the supplied configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.Host == nil {
		return nil, errors.New("fx: host is required")
	}
	if cfg.Scheduler == nil {
		return nil, errors.New("fx: scheduler is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ps := cfg.System
	if ps == nil {
		ps = NewParticleSystem(-1, uint64(time.Now().UnixNano()))
	}
	events := cfg.Events
	if events == nil {
		events = NewEventBus()
	}
	return &Engine{
		log:       logger,
		scheduler: cfg.Scheduler,
		surfaces:  NewSurfaceManager(cfg.Host, logger),
		sim:       NewSimulator(ps, logger),
		events:    events,
		clicks:    make(chan click, clickQueueSize),
	}, nil
}

func (e *Engine) Events() *EventBus { return e.events }

// Surface returns the overlay surface once Run has initialised it.
func (e *Engine) Surface() Surface { return e.surfaces.Surface() }

func (e *Engine) State() State { return State(e.state.Load()) }

// Click queues a burst at surface coordinates (x, y). It is applied at the
// start of the next frame. Clicks on a stopped or disabled engine, or
// beyond the queue capacity, are dropped.
func (e *Engine) Click(x, y float64) {
	switch e.State() {
	case StateStopped, StateDisabled:
		return
	}
	select {
	case e.clicks <- click{x: x, y: y}:
	default:
		e.log.Debug("click dropped, queue full", "x", x, "y", y)
	}
}

// ViewportResized marks the viewport as changed. The surface is resized
// before the next frame paints.
func (e *Engine) ViewportResized() {
	e.resized.Store(true)
}

// Run initialises the surface and loops until ctx is cancelled, Stop is
// called or the scheduler reports the host closed. A missing surface
// disables the engine and returns an error wrapping ErrNoSurface; the
// caller is expected to carry on without the animation.
func (e *Engine) Run(ctx context.Context) error {
	if !e.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		if e.State() == StateStopped {
			return ErrStopped
		}
		return ErrStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()
	if e.stopping.Load() {
		cancel()
	}

	if err := e.surfaces.Initialize(); err != nil {
		e.state.Store(int32(StateDisabled))
		e.log.ErrorContext(ctx, "fireworks disabled", "err", err)
		return err
	}
	w, h := e.surfaces.Surface().Size()
	e.log.InfoContext(ctx, "fireworks running", "width", w, "height", h)

	defer e.state.Store(int32(StateStopped))
	for {
		if err := e.scheduler.NextFrame(ctx); err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrSurfaceClosed) || errors.Is(err, ErrStopped) {
				e.log.DebugContext(ctx, "frame loop finished", "frames", e.frames.Load(), "reason", err)
				return nil
			}
			return fmt.Errorf("next frame: %w", err)
		}
		e.frame(ctx)
	}
}

// Stop ends the frame loop and cancels the pending frame request.
// Calling Stop before Run makes Run return ErrStopped.
func (e *Engine) Stop() {
	e.stopping.Store(true)
	e.state.CompareAndSwap(int32(StateIdle), int32(StateStopped))
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Unlock()
}

func (e *Engine) Stats() Stats {
	return Stats{
		State:         e.State(),
		Frames:        e.frames.Load(),
		Bursts:        e.bursts.Load(),
		PaintFailures: e.failures.Load(),
		Particles:     int(e.particles.Load()),
	}
}

// frame runs one tick: pending resize, queued clicks, physics and paint.
func (e *Engine) frame(ctx context.Context) {
	n := e.frames.Add(1)

	if e.resized.Swap(false) {
		e.surfaces.OnViewportResize()
		w, h := e.surfaces.Surface().Size()
		e.events.Emit(Event{Type: EventResize, X: float64(w), Y: float64(h), Frame: n})
	}
	e.drainClicks(ctx, n)

	ps := e.sim.System()
	if err := e.sim.Tick(e.surfaces.Surface()); err != nil {
		e.failures.Add(1)
		e.log.WarnContext(ctx, "frame skipped", "frame", n, "err", err)
		e.events.Emit(Event{Type: EventPaintFailed, Frame: n, Err: err})
	}
	e.particles.Store(int64(ps.Len()))
	e.events.Emit(Event{Type: EventFrame, Data: ps.Len(), Frame: n})
}

func (e *Engine) drainClicks(ctx context.Context, n uint64) {
	for {
		select {
		case c := <-e.clicks:
			e.sim.SpawnBurst(c.x, c.y)
			e.bursts.Add(1)
			e.log.DebugContext(ctx, "burst", "x", c.x, "y", c.y, "frame", n)
			e.events.Emit(Event{Type: EventBurst, X: c.x, Y: c.y, Data: e.sim.System().Burst.Count, Frame: n})
		default:
			return
		}
	}
}
