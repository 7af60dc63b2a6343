package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for event")
	}
	var zero T
	return zero
}

func assertEmpty[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Errorf("Unexpected value received: %v", v)
	default:
	}
}

func TestChannelEvent_ListenNotify(t *testing.T) {
	event := NewChannelEvent[string](false)

	ch := make(chan string, 10)
	unregister := event.Listen(ch)
	assert.Equal(t, 1, event.listenerCount())

	event.Notify("a")
	event.Notify("b")
	assert.Equal(t, "a", receive(t, ch))
	assert.Equal(t, "b", receive(t, ch))

	unregister()
	assert.Equal(t, 0, event.listenerCount())

	event.Notify("c")
	assertEmpty(t, ch)

	// Unregistering twice is harmless
	unregister()
	assert.Equal(t, 0, event.listenerCount())
}

func TestChannelEvent_MultipleListeners(t *testing.T) {
	event := NewChannelEvent[int](false)

	ch1 := make(chan int, 1)
	ch2 := make(chan int, 1)
	defer event.Listen(ch1)()
	defer event.Listen(ch2)()

	event.Notify(42)
	assert.Equal(t, 42, receive(t, ch1))
	assert.Equal(t, 42, receive(t, ch2))
}

func TestChannelEvent_Replay(t *testing.T) {
	event := NewChannelEvent[string](true)

	early := make(chan string, 1)
	defer event.Listen(early)()
	assertEmpty(t, early)

	event.Notify("first")
	assert.Equal(t, "first", receive(t, early))

	late := make(chan string, 1)
	defer event.Listen(late)()
	assert.Equal(t, "first", receive(t, late))
}

func TestChannelEvent_NoReplay(t *testing.T) {
	event := NewChannelEvent[string](false)
	event.Notify("first")

	ch := make(chan string, 1)
	defer event.Listen(ch)()
	assertEmpty(t, ch)

	event.Notify("second")
	assert.Equal(t, "second", receive(t, ch))
}

func TestChannelEvent_FullChannelDoesNotBlock(t *testing.T) {
	event := NewChannelEvent[int](false)

	ch := make(chan int)
	defer event.Listen(ch)()

	done := make(chan struct{})
	go func() {
		event.Notify(1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Notify blocked on a full channel")
	}
}

func TestChannelEvent_NilChannelPanics(t *testing.T) {
	event := NewChannelEvent[int](false)
	assert.Panics(t, func() { event.Listen(nil) })
}

func TestChannelEvent_NothingToReplayBeforeNotify(t *testing.T) {
	event := NewChannelEvent[int](true)

	ch := make(chan int, 1)
	defer event.Listen(ch)()
	assertEmpty(t, ch)
}
