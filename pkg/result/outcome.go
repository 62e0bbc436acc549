// Package result models what a mocked asynchronous call should produce and
// turns that model into the primitive the caller awaits.
//
// An Outcome is built once by a factory and never changes. Resolve converts
// it to an async.Stream under a Policy describing the call shape, so the
// four shape packages (single, maybe, completable, observable) share one
// implementation and differ only in which outcomes they accept and what an
// unconfigured outcome means.
package result

import (
	"fmt"

	"asyncmock/pkg/async"
)

// Thunk produces a value when a resolved primitive is subscribed to.
type Thunk[T any] func() (T, error)

// Const returns a thunk that always yields v.
func Const[T any](v T) Thunk[T] {
	return func() (T, error) { return v, nil }
}

// Kind identifies the active variant of an Outcome.
type Kind int

const (
	// Pending is the zero Outcome: nothing was configured.
	Pending Kind = iota
	// Value produces one value from a thunk.
	Value
	// Failure produces an error.
	Failure
	// Completed completes without a value.
	Completed
	// Emission drives an emitter function, for streams.
	Emission
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Value:
		return "value"
	case Failure:
		return "failure"
	case Completed:
		return "completed"
	case Emission:
		return "emission"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is an immutable description of a mocked call's result.
// The zero value is Pending.
type Outcome[T any] struct {
	kind  Kind
	thunk Thunk[T]
	err   error
	emit  func(async.Emitter[T])
}

// ValueOf returns an outcome that evaluates thunk on every subscription.
func ValueOf[T any](thunk Thunk[T]) Outcome[T] {
	if thunk == nil {
		panic("result: nil thunk")
	}
	return Outcome[T]{kind: Value, thunk: thunk}
}

// FailureOf returns an outcome that fails with err.
func FailureOf[T any](err error) Outcome[T] {
	if err == nil {
		panic("result: nil error")
	}
	return Outcome[T]{kind: Failure, err: err}
}

// CompletedOf returns an outcome that completes without a value.
func CompletedOf[T any]() Outcome[T] {
	return Outcome[T]{kind: Completed}
}

// EmissionOf returns an outcome that hands every subscription's emitter to fn.
// fn must end with Error or Complete.
func EmissionOf[T any](fn func(async.Emitter[T])) Outcome[T] {
	if fn == nil {
		panic("result: nil emitter function")
	}
	return Outcome[T]{kind: Emission, emit: fn}
}

// Kind returns the active variant.
func (o Outcome[T]) Kind() Kind {
	return o.kind
}

// Err returns the configured error of a Failure outcome.
func (o Outcome[T]) Err() error {
	return o.err
}
