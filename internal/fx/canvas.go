package fx

// CompositeOp selects how newly painted pixels combine with the surface.
type CompositeOp uint8

const (
	// SourceOver paints on top of existing content.
	SourceOver CompositeOp = iota
	// DestinationOut erases existing content by the source alpha.
	DestinationOut
	// Lighter adds source colour to existing content.
	Lighter
)

func (op CompositeOp) String() string {
	switch op {
	case SourceOver:
		return "source-over"
	case DestinationOut:
		return "destination-out"
	case Lighter:
		return "lighter"
	}
	return "unknown"
}

// Canvas is the 2D drawing context a host surface exposes.
// Implementations may panic on a failed drawing call; the simulator
// recovers and skips the rest of that frame.
type Canvas interface {
	SetComposite(op CompositeOp)
	SetFill(f Fill)
	FillRect(x, y, w, h float64)
	FillCircle(cx, cy, r float64)
}
