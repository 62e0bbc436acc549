// Package maybe configures results for calls returning an async.Maybe.
//
// An unconfigured maybe result completes empty rather than failing.
package maybe

import (
	"io/fs"

	"google.golang.org/protobuf/proto"

	"asyncmock/pkg/async"
	"asyncmock/pkg/result"
)

// Result is an immutable zero-or-one-value result.
type Result[T any] struct {
	outcome result.Outcome[T]
}

// Value returns a result producing v.
func Value[T any](v T) *Result[T] {
	return From(result.ValueOf(result.Const(v)))
}

// Func returns a result producing fn() each time the call is awaited.
func Func[T any](fn func() T) *Result[T] {
	return From(result.ValueOf(func() (T, error) { return fn(), nil }))
}

// Try returns a result producing fn(); an error from fn fails the call.
func Try[T any](fn func() (T, error)) *Result[T] {
	return From(result.ValueOf(result.Thunk[T](fn)))
}

// Throw returns a result failing with err.
func Throw[T any](err error) *Result[T] {
	return From(result.FailureOf[T](err))
}

// Completed returns a result completing without a value.
func Completed[T any]() *Result[T] {
	return From(result.CompletedOf[T]())
}

// JSON returns a result decoding text when the call is awaited.
func JSON[T any](text string) *Result[T] {
	return From(result.ValueOf(result.JSON[T](text)))
}

// JSONFile returns a result decoding name from fsys when the call is awaited.
func JSONFile[T any](fsys fs.FS, name, ext string) *Result[T] {
	return From(result.ValueOf(result.JSONFile[T](fsys, name, ext)))
}

// YAML returns a result decoding text when the call is awaited.
func YAML[T any](text string) *Result[T] {
	return From(result.ValueOf(result.YAML[T](text)))
}

// YAMLFile returns a result decoding name from fsys when the call is awaited.
func YAMLFile[T any](fsys fs.FS, name, ext string) *Result[T] {
	return From(result.ValueOf(result.YAMLFile[T](fsys, name, ext)))
}

// ProtoJSON returns a result decoding protobuf JSON text into a new message.
func ProtoJSON[M proto.Message](text string, newMsg func() M) *Result[M] {
	return From(result.ValueOf(result.ProtoJSON(text, newMsg)))
}

// From wraps an outcome.
func From[T any](o result.Outcome[T]) *Result[T] {
	return &Result[T]{outcome: o}
}

// Outcome returns the configured outcome. A nil result is Pending.
func (r *Result[T]) Outcome() result.Outcome[T] {
	if r == nil {
		return result.Outcome[T]{}
	}
	return r.outcome
}

// Resolve returns the Maybe this result describes.
func (r *Result[T]) Resolve() *async.Maybe[T] {
	return async.NewMaybe(result.Resolve(r.Outcome(), result.MaybePolicy))
}
