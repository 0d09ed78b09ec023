package fx

type EventType int

const (
	EventBurst       EventType = iota // X, Y: burst centre; Data: particles spawned
	EventResize                       // X, Y: new surface width, height
	EventPaintFailed                  // Err: the wrapped ErrPaint
	EventFrame                        // Data: live particles after the tick
)

type Event struct {
	Type  EventType
	X, Y  float64
	Data  int
	Frame uint64
	Err   error
}

type EventHandler func(Event)

// EventBus dispatches engine events synchronously on the frame loop.
// Subscribe before Run; the bus is not safe for concurrent mutation.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
