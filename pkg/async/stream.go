// Package async provides the asynchronous primitives returned by mocked calls.
//
// A Stream is a cold, lazily started sequence of events: nothing happens until
// Subscribe, and every subscription runs the source again. Single, Maybe,
// Completable and Observable wrap a Stream and give it the cardinality of the
// corresponding call shape. Schedulers decide where the source runs
// (SubscribeOn) and where its events are delivered (ObserveOn).
package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrNoElements is returned when a Single completes without a value.
var ErrNoElements = errors.New("sequence contains no elements")

// Source produces the events of one subscription.
type Source[T any] func(ctx context.Context, e Emitter[T])

// Stream is a cold sequence of events.
type Stream[T any] struct {
	source Source[T]
}

// Create builds a stream from a source function.
func Create[T any](source Source[T]) *Stream[T] {
	return &Stream[T]{source: source}
}

// Just emits v and completes.
func Just[T any](v T) *Stream[T] {
	return Create(func(_ context.Context, e Emitter[T]) {
		e.Next(v)
		e.Complete()
	})
}

// Empty completes without emitting.
func Empty[T any]() *Stream[T] {
	return Create(func(_ context.Context, e Emitter[T]) {
		e.Complete()
	})
}

// Fail terminates with err.
func Fail[T any](err error) *Stream[T] {
	return Create(func(_ context.Context, e Emitter[T]) {
		e.Error(err)
	})
}

// FromSlice emits the values in order and completes.
func FromSlice[T any](values []T) *Stream[T] {
	values = append([]T(nil), values...)
	return Create(func(_ context.Context, e Emitter[T]) {
		for _, v := range values {
			e.Next(v)
		}
		e.Complete()
	})
}

// Subscribe starts a subscription and delivers its events to fn.
// fn is never called concurrently and never after a terminal event.
func (s *Stream[T]) Subscribe(ctx context.Context, fn func(Event[T])) {
	s.source(ctx, newGuardedEmitter(fn))
}

// Map transforms each value. An error from fn terminates the stream.
func Map[T, U any](s *Stream[T], fn func(T) (U, error)) *Stream[U] {
	return Create(func(ctx context.Context, out Emitter[U]) {
		s.source(ctx, &mapEmitter[T, U]{out: out, fn: fn})
	})
}

type mapEmitter[T, U any] struct {
	out    Emitter[U]
	fn     func(T) (U, error)
	failed atomic.Bool
}

// Next stops calling fn once it has failed.
func (m *mapEmitter[T, U]) Next(value T) {
	if m.failed.Load() {
		return
	}
	mapped, err := m.fn(value)
	if err != nil {
		m.failed.Store(true)
		m.out.Error(err)
		return
	}
	m.out.Next(mapped)
}

func (m *mapEmitter[T, U]) Error(err error) { m.out.Error(err) }

func (m *mapEmitter[T, U]) Complete() { m.out.Complete() }

// MapErr transforms the terminal error, if any.
func (s *Stream[T]) MapErr(fn func(error) error) *Stream[T] {
	return Create(func(ctx context.Context, out Emitter[T]) {
		s.source(ctx, &mapErrEmitter[T]{Emitter: out, fn: fn})
	})
}

type mapErrEmitter[T any] struct {
	Emitter[T]
	fn func(error) error
}

func (m *mapErrEmitter[T]) Error(err error) { m.Emitter.Error(m.fn(err)) }

// SubscribeOn runs the source on sch.
func (s *Stream[T]) SubscribeOn(sch Scheduler) *Stream[T] {
	return Create(func(ctx context.Context, out Emitter[T]) {
		sch.Schedule(func() {
			s.source(ctx, out)
		})
	})
}

// ObserveOn delivers events on sch, preserving their order.
func (s *Stream[T]) ObserveOn(sch Scheduler) *Stream[T] {
	return Create(func(ctx context.Context, out Emitter[T]) {
		s.source(ctx, &observeQueue[T]{sch: sch, out: out})
	})
}

// observeQueue buffers the events of one subscription and drains them with a
// single task at a time, so a concurrent scheduler cannot reorder them.
type observeQueue[T any] struct {
	mu       sync.Mutex
	sch      Scheduler
	out      Emitter[T]
	pending  []Event[T]
	draining bool
}

func (q *observeQueue[T]) push(ev Event[T]) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()

	q.sch.Schedule(q.drain)
}

func (q *observeQueue[T]) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		ev := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		forward(q.out, ev)
	}
}

func (q *observeQueue[T]) Next(value T) { q.push(Event[T]{Kind: Next, Value: value}) }

func (q *observeQueue[T]) Error(err error) { q.push(Event[T]{Kind: Error, Err: err}) }

func (q *observeQueue[T]) Complete() { q.push(Event[T]{Kind: Completed}) }

// Materialized is the recorded outcome of one subscription.
type Materialized[T any] struct {
	Values    []T
	Err       error
	Completed bool
}

// Terminated reports whether the stream ended, with or without an error.
func (m Materialized[T]) Terminated() bool {
	return m.Completed || m.Err != nil
}

// Materialize subscribes and blocks until the stream terminates. If ctx ends
// first, the events seen so far are returned together with ctx.Err().
func (s *Stream[T]) Materialize(ctx context.Context) (Materialized[T], error) {
	var (
		mu   sync.Mutex
		m    Materialized[T]
		done = make(chan struct{})
	)

	s.Subscribe(ctx, func(ev Event[T]) {
		mu.Lock()
		defer mu.Unlock()

		switch ev.Kind {
		case Next:
			m.Values = append(m.Values, ev.Value)
		case Error:
			m.Err = ev.Err
			close(done)
		case Completed:
			m.Completed = true
			close(done)
		}
	})

	select {
	case <-done:
		mu.Lock()
		defer mu.Unlock()
		return m, nil
	case <-ctx.Done():
		mu.Lock()
		defer mu.Unlock()
		snapshot := Materialized[T]{Values: append([]T(nil), m.Values...), Err: m.Err, Completed: m.Completed}
		if snapshot.Terminated() {
			return snapshot, nil
		}
		return snapshot, ctx.Err()
	}
}
