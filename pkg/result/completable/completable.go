// Package completable configures results for calls returning an async.Completable.
package completable

import (
	"asyncmock/pkg/async"
	"asyncmock/pkg/result"
)

// Result is an immutable completion-only result.
type Result struct {
	outcome result.Outcome[struct{}]
}

// Completed returns a result that completes.
func Completed() *Result {
	return &Result{outcome: result.CompletedOf[struct{}]()}
}

// Throw returns a result failing with err.
func Throw(err error) *Result {
	return &Result{outcome: result.FailureOf[struct{}](err)}
}

// Outcome returns the configured outcome. A nil result is Pending.
func (r *Result) Outcome() result.Outcome[struct{}] {
	if r == nil {
		return result.Outcome[struct{}]{}
	}
	return r.outcome
}

// Resolve returns the Completable this result describes.
func (r *Result) Resolve() *async.Completable {
	return async.NewCompletable(result.Resolve(r.Outcome(), result.CompletablePolicy))
}
