// Package safego starts goroutines whose panics are written to the app log
// before the process dies. The terminal UI owns stdout, so a bare panic
// trace would otherwise be lost.
package safego

import (
	"log"
	"runtime/debug"
	"sync"
)

// Go runs fn on a new goroutine. A panic is logged together with name and
// the stack, then re-raised.
func Go(logger *log.Logger, name string, fn func()) {
	go run(logger, name, fn)
}

func run(logger *log.Logger, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
			panic(r)
		}
	}()
	fn()
}

// Group tracks goroutines started through it so their owner can wait for
// them on shutdown.
type Group struct {
	logger *log.Logger
	wg     sync.WaitGroup
}

// NewGroup creates a Group that logs panics to logger
func NewGroup(logger *log.Logger) *Group {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Group{logger: logger}
}

// Go starts fn as a tracked goroutine
func (g *Group) Go(name string, fn func()) {
	g.wg.Add(1)
	Go(g.logger, name, func() {
		defer g.wg.Done()
		fn()
	})
}

// Wait blocks until every goroutine started by the group has returned
func (g *Group) Wait() {
	g.wg.Wait()
}
