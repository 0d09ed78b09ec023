package fx

import "errors"

var (
	// ErrNoSurface reports that the host cannot provide a drawing surface.
	// The animation is disabled; nothing else depends on it.
	ErrNoSurface = errors.New("fx: drawing surface unavailable")

	// ErrPaint wraps a failure raised while painting a single frame.
	ErrPaint = errors.New("fx: paint failed")

	// ErrStopped is returned by Run after Stop.
	ErrStopped = errors.New("fx: engine stopped")

	// ErrSurfaceClosed is returned by a Scheduler when the host surface
	// went away (window closed, page unloaded).
	ErrSurfaceClosed = errors.New("fx: surface closed")
)

// ErrStarted is returned by a second call to Run.
var ErrStarted = errors.New("fx: engine already started")
