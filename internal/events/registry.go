package events

import "sync"

// registry is the listener bookkeeping shared by ChannelEvent and
// CallbackEvent. L is the listener type, T the published value.
type registry[L any, T any] struct {
	mu        sync.RWMutex
	listeners map[uint64]L
	nextID    uint64

	replay bool // hand the last value to new listeners
	last   T
	hasAny bool
}

func (r *registry[L, T]) init(replay bool) {
	r.listeners = make(map[uint64]L)
	r.replay = replay
}

// add stores listener and returns its id plus the value to replay, if any
func (r *registry[L, T]) add(listener L) (uint64, T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	return id, r.last, r.replay && r.hasAny
}

func (r *registry[L, T]) remover(id uint64) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.listeners, id)
			r.mu.Unlock()
		})
	}
}

// publish records value and returns a snapshot of the current listeners
func (r *registry[L, T]) publish(value T) []L {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = value
	r.hasAny = true
	snapshot := make([]L, 0, len(r.listeners))
	for _, l := range r.listeners {
		snapshot = append(snapshot, l)
	}
	return snapshot
}

func (r *registry[L, T]) listenerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}
