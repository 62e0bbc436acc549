package mock

import (
	"asyncmock/pkg/async"
	"asyncmock/pkg/report"
	"asyncmock/pkg/result"
	"asyncmock/pkg/result/completable"
	"asyncmock/pkg/result/maybe"
	"asyncmock/pkg/result/observable"
	"asyncmock/pkg/result/single"
)

// Single returns the Single configured by r, or an unexpected call failure
// when r is nil.
func Single[T any](m Mock, r *single.Result[T]) *async.Single[T] {
	a := m.core()
	c := a.begin(report.Caller(1), result.ShapeSingle)
	if r == nil {
		return async.NewSingle(async.Fail[T](c.unexpected())).Background(a.subscribeOn, a.observeOn)
	}
	s := r.Resolve()
	c.resolved()
	return s.Background(a.subscribeOn, a.observeOn)
}

// SingleAny is Single for a type-erased result. A value that is not a T
// is reported and fails the Single with *mockerr.WrongTypeError.
func SingleAny[T any](m Mock, r *single.Result[any]) *async.Single[T] {
	a := m.core()
	c := a.begin(report.Caller(1), result.ShapeSingle)
	if r == nil {
		return async.NewSingle(async.Fail[T](c.unexpected())).Background(a.subscribeOn, a.observeOn)
	}
	s := async.Map(r.Resolve().Stream(), caster[T](c))
	c.resolved()
	return async.NewSingle(s).Background(a.subscribeOn, a.observeOn)
}

// Maybe returns the Maybe configured by r, or an unexpected call failure
// when r is nil.
func Maybe[T any](m Mock, r *maybe.Result[T]) *async.Maybe[T] {
	a := m.core()
	c := a.begin(report.Caller(1), result.ShapeMaybe)
	if r == nil {
		return async.NewMaybe(async.Fail[T](c.unexpected())).Background(a.subscribeOn, a.observeOn)
	}
	s := r.Resolve()
	c.resolved()
	return s.Background(a.subscribeOn, a.observeOn)
}

// MaybeAny is Maybe for a type-erased result.
func MaybeAny[T any](m Mock, r *maybe.Result[any]) *async.Maybe[T] {
	a := m.core()
	c := a.begin(report.Caller(1), result.ShapeMaybe)
	if r == nil {
		return async.NewMaybe(async.Fail[T](c.unexpected())).Background(a.subscribeOn, a.observeOn)
	}
	s := async.Map(r.Resolve().Stream(), caster[T](c))
	c.resolved()
	return async.NewMaybe(s).Background(a.subscribeOn, a.observeOn)
}

// Completable returns the Completable configured by r, or an unexpected call
// failure when r is nil.
func Completable(m Mock, r *completable.Result) *async.Completable {
	a := m.core()
	c := a.begin(report.Caller(1), result.ShapeCompletable)
	if r == nil {
		return async.NewCompletable(async.Fail[struct{}](c.unexpected())).Background(a.subscribeOn, a.observeOn)
	}
	s := r.Resolve()
	c.resolved()
	return s.Background(a.subscribeOn, a.observeOn)
}

// Observable returns the Observable configured by r, or an unexpected call
// failure when r is nil.
func Observable[T any](m Mock, r *observable.Result[T]) *async.Observable[T] {
	a := m.core()
	c := a.begin(report.Caller(1), result.ShapeObservable)
	if r == nil {
		return async.NewObservable(async.Fail[T](c.unexpected())).Background(a.subscribeOn, a.observeOn)
	}
	s := r.Resolve()
	c.resolved()
	return s.Background(a.subscribeOn, a.observeOn)
}

// ObservableAny is Observable for a type-erased result. The first value that
// is not a T ends the stream with *mockerr.WrongTypeError.
func ObservableAny[T any](m Mock, r *observable.Result[any]) *async.Observable[T] {
	a := m.core()
	c := a.begin(report.Caller(1), result.ShapeObservable)
	if r == nil {
		return async.NewObservable(async.Fail[T](c.unexpected())).Background(a.subscribeOn, a.observeOn)
	}
	s := async.Map(r.Resolve().Stream(), caster[T](c))
	c.resolved()
	return async.NewObservable(s).Background(a.subscribeOn, a.observeOn)
}
