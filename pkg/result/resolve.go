package result

import (
	"context"
	"fmt"
	"reflect"

	"asyncmock/pkg/async"
	"asyncmock/pkg/mockerr"
)

// Shape names an asynchronous call pattern.
type Shape string

const (
	ShapeSingle      Shape = "single"
	ShapeMaybe       Shape = "maybe"
	ShapeCompletable Shape = "completable"
	ShapeObservable  Shape = "observable"
)

// Policy describes which outcomes a shape accepts.
type Policy struct {
	Shape            Shape
	AllowValue       bool
	AllowCompleted   bool
	AllowEmission    bool
	PendingCompletes bool
}

var (
	// SinglePolicy requires exactly one value or an error.
	SinglePolicy = Policy{Shape: ShapeSingle, AllowValue: true}

	// MaybePolicy allows an empty completion and treats Pending as one.
	MaybePolicy = Policy{Shape: ShapeMaybe, AllowValue: true, AllowCompleted: true, PendingCompletes: true}

	// CompletablePolicy carries no value and treats Pending as completion.
	CompletablePolicy = Policy{Shape: ShapeCompletable, AllowCompleted: true, PendingCompletes: true}

	// ObservablePolicy accepts everything and treats Pending as an empty stream.
	ObservablePolicy = Policy{Shape: ShapeObservable, AllowValue: true, AllowCompleted: true, AllowEmission: true, PendingCompletes: true}
)

// Resolve converts an outcome into a stream under policy p.
//
// An outcome the shape cannot represent is a programmer error and panics
// here, before anything is scheduled. Thunks and emitter functions run on
// each subscription of the returned stream.
func Resolve[T any](o Outcome[T], p Policy) *async.Stream[T] {
	switch o.kind {
	case Pending:
		if !p.PendingCompletes {
			panic(fmt.Sprintf("%s results must produce a value or an error", p.Shape))
		}
		return async.Empty[T]()

	case Value:
		if !p.AllowValue {
			panic(fmt.Sprintf("%s results cannot carry a value", p.Shape))
		}
		thunk := o.thunk
		return async.Create(func(_ context.Context, e async.Emitter[T]) {
			v, err := thunk()
			if err != nil {
				e.Error(err)
				return
			}
			e.Next(v)
			e.Complete()
		})

	case Failure:
		return async.Fail[T](o.err)

	case Completed:
		if !p.AllowCompleted {
			panic(fmt.Sprintf("%s results cannot complete without a value", p.Shape))
		}
		return async.Empty[T]()

	case Emission:
		if !p.AllowEmission {
			panic(fmt.Sprintf("%s results cannot emit a sequence", p.Shape))
		}
		emit := o.emit
		return async.Create(func(_ context.Context, e async.Emitter[T]) {
			emit(e)
		})

	default:
		panic(fmt.Sprintf("unknown outcome kind %s", o.kind))
	}
}

// Cast asserts that raw holds a T. A nil raw value is accepted for types that
// can be nil.
func Cast[T any](raw any) (T, error) {
	if v, ok := raw.(T); ok {
		return v, nil
	}

	var zero T
	expected := mockerr.TypeOf[T]()
	if raw == nil {
		switch expected.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return zero, nil
		}
	}
	return zero, &mockerr.WrongTypeError{Expected: expected, Found: reflect.TypeOf(raw)}
}
