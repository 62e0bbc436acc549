package async

import (
	"fmt"
	"sync"
)

// Kind identifies what an Event carries.
type Kind int

const (
	// Next carries a value.
	Next Kind = iota
	// Error terminates the stream with an error.
	Error
	// Completed terminates the stream successfully.
	Completed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Next:
		return "next"
	case Error:
		return "error"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single notification delivered to a subscriber.
type Event[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// Terminal reports whether the event ends the stream.
func (e Event[T]) Terminal() bool {
	return e.Kind != Next
}

// Emitter receives the notifications of a stream source.
type Emitter[T any] interface {
	Next(value T)
	Error(err error)
	Complete()
}

// guardedEmitter serializes delivery and drops everything after the first
// terminal event.
type guardedEmitter[T any] struct {
	mu      sync.Mutex
	done    bool
	deliver func(Event[T])
}

func newGuardedEmitter[T any](deliver func(Event[T])) *guardedEmitter[T] {
	return &guardedEmitter[T]{deliver: deliver}
}

func (g *guardedEmitter[T]) emit(ev Event[T]) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done {
		return
	}
	if ev.Terminal() {
		g.done = true
	}
	g.deliver(ev)
}

func (g *guardedEmitter[T]) Next(value T) { g.emit(Event[T]{Kind: Next, Value: value}) }

func (g *guardedEmitter[T]) Error(err error) { g.emit(Event[T]{Kind: Error, Err: err}) }

func (g *guardedEmitter[T]) Complete() { g.emit(Event[T]{Kind: Completed}) }

// forward replays an event on an emitter.
func forward[T any](e Emitter[T], ev Event[T]) {
	switch ev.Kind {
	case Next:
		e.Next(ev.Value)
	case Error:
		e.Error(ev.Err)
	case Completed:
		e.Complete()
	}
}
