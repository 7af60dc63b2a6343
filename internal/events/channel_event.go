package events

// ChannelEvent fans a value out to registered channels. Sends never block:
// a listener whose buffer is full misses that value.
type ChannelEvent[T any] struct {
	registry[chan<- T, T]
}

// NewChannelEvent creates a ChannelEvent. With replay set, a channel that
// starts listening after the first Notify immediately receives the latest
// value.
func NewChannelEvent[T any](replay bool) *ChannelEvent[T] {
	e := &ChannelEvent[T]{}
	e.init(replay)
	return e
}

// Listen registers ch and returns a func that unregisters it
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}

	id, last, send := e.add(ch)
	if send {
		trySend(ch, last)
	}
	return e.remover(id)
}

// Notify publishes value to every listener
func (e *ChannelEvent[T]) Notify(value T) {
	for _, ch := range e.publish(value) {
		trySend(ch, value)
	}
}

func trySend[T any](ch chan<- T, value T) {
	select {
	case ch <- value:
	default:
	}
}
