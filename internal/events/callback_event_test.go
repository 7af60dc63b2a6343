package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackEvent_ListenNotify(t *testing.T) {
	event := NewCallbackEvent[int](false)

	var got []int
	unregister := event.Listen(func(v int) { got = append(got, v) })
	assert.Equal(t, 1, event.listenerCount())

	event.Notify(1)
	event.Notify(2)
	assert.Equal(t, []int{1, 2}, got)

	unregister()
	event.Notify(3)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, event.listenerCount())
}

func TestCallbackEvent_Replay(t *testing.T) {
	event := NewCallbackEvent[string](true)

	var calls int
	unregister := event.Listen(func(string) { calls++ })
	assert.Equal(t, 0, calls)
	unregister()

	event.Notify("latest")

	var got string
	defer event.Listen(func(v string) { got = v })()
	assert.Equal(t, "latest", got)
}

func TestCallbackEvent_ListenerCanUnregisterItself(t *testing.T) {
	event := NewCallbackEvent[int](false)

	var calls int
	var unregister func()
	unregister = event.Listen(func(int) {
		calls++
		unregister()
	})

	event.Notify(1)
	event.Notify(2)
	assert.Equal(t, 1, calls)
}

func TestCallbackEvent_ConcurrentNotify(t *testing.T) {
	event := NewCallbackEvent[int](true)

	var mu sync.Mutex
	total := 0
	defer event.Listen(func(v int) {
		mu.Lock()
		total += v
		mu.Unlock()
	})()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event.Notify(1)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, total)
}

func TestCallbackEvent_NilCallbackPanics(t *testing.T) {
	event := NewCallbackEvent[int](false)
	assert.Panics(t, func() { event.Listen(nil) })
}
