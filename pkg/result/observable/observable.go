// Package observable configures results for calls returning an async.Observable.
package observable

import (
	"asyncmock/pkg/async"
	"asyncmock/pkg/result"
)

// Result is an immutable stream result.
type Result[T any] struct {
	outcome result.Outcome[T]
}

// Sequence returns a result emitting values in order, then completing.
func Sequence[T any](values ...T) *Result[T] {
	values = append([]T(nil), values...)
	return Generate(func(e async.Emitter[T]) {
		for _, v := range values {
			e.Next(v)
		}
		e.Complete()
	})
}

// Value returns a result emitting v, then completing.
func Value[T any](v T) *Result[T] {
	return Sequence(v)
}

// Generate returns a result that hands each subscription's emitter to fn.
// fn must finish with Error or Complete.
func Generate[T any](fn func(async.Emitter[T])) *Result[T] {
	return &Result[T]{outcome: result.EmissionOf(fn)}
}

// Throw returns a result failing with err.
func Throw[T any](err error) *Result[T] {
	return &Result[T]{outcome: result.FailureOf[T](err)}
}

// Outcome returns the configured outcome. A nil result is Pending.
func (r *Result[T]) Outcome() result.Outcome[T] {
	if r == nil {
		return result.Outcome[T]{}
	}
	return r.outcome
}

// Resolve returns the Observable this result describes.
func (r *Result[T]) Resolve() *async.Observable[T] {
	return async.NewObservable(result.Resolve(r.Outcome(), result.ObservablePolicy))
}
