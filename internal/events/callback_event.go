package events

// CallbackEvent calls registered funcs synchronously on the notifying
// goroutine, in no particular order.
type CallbackEvent[T any] struct {
	registry[func(T), T]
}

// NewCallbackEvent creates a CallbackEvent. With replay set, a callback
// registered after the first Notify is called at once with the latest value.
func NewCallbackEvent[T any](replay bool) *CallbackEvent[T] {
	e := &CallbackEvent[T]{}
	e.init(replay)
	return e
}

// Listen registers callback and returns a func that unregisters it
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}

	id, last, send := e.add(callback)
	if send {
		callback(last)
	}
	return e.remover(id)
}

// Notify calls every listener with value
func (e *CallbackEvent[T]) Notify(value T) {
	for _, callback := range e.publish(value) {
		callback(value)
	}
}
