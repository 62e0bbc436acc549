// Package expect blocks on mocked primitives and reports a descriptive
// failure when they do not end the way a test expects.
//
// Every wait is bounded. Failures are attributed to the line calling the
// helper and sent to the given sink, so they can be captured like any other
// assertion failure.
package expect

import (
	"context"
	"fmt"
	"time"

	"asyncmock/pkg/config"
	"asyncmock/pkg/async"
	"asyncmock/pkg/mockerr"
	"asyncmock/pkg/report"
)

type options struct {
	timeout time.Duration
}

// Option adjusts a single wait.
type Option func(*options)

// WithTimeout bounds the wait by d instead of ASYNCMOCK_WAIT_TIMEOUT.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func newOptions(opts []Option) options {
	o := options{timeout: config.Current().WaitTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// wait materializes s within the timeout. ok is false when the timeout was
// reported.
func wait[T any](sink report.Sink, at report.Location, shape string, s *async.Stream[T], opts []Option) (async.Materialized[T], bool) {
	o := newOptions(opts)
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	m, err := s.Materialize(ctx)
	if err != nil {
		sink.Fail(fmt.Sprintf("Timed out after %s waiting for %s", o.timeout, shape), at)
		return m, false
	}
	return m, true
}

// SingleSuccess waits for s to produce its value.
func SingleSuccess[T any](sink report.Sink, s *async.Single[T], opts ...Option) (T, bool) {
	at := report.Caller(1)
	var zero T

	m, ok := wait(sink, at, "single", s.Stream(), opts)
	if !ok {
		return zero, false
	}
	err := m.Err
	if err == nil && len(m.Values) == 0 {
		err = async.ErrNoElements
	}
	if err != nil {
		sink.Fail(fmt.Sprintf("Expected a single value, got error %s instead", mockerr.Describe(err)), at)
		return zero, false
	}
	return m.Values[0], true
}

// SingleError waits for s to fail.
func SingleError[T any](sink report.Sink, s *async.Single[T], opts ...Option) error {
	at := report.Caller(1)

	m, ok := wait(sink, at, "single", s.Stream(), opts)
	if !ok {
		return nil
	}
	if m.Err == nil {
		sink.Fail("Expected an error, but got a success instead", at)
		return nil
	}
	return m.Err
}

// MaybeValue waits for m to produce a value.
func MaybeValue[T any](sink report.Sink, mb *async.Maybe[T], opts ...Option) (T, bool) {
	at := report.Caller(1)
	var zero T

	m, ok := wait(sink, at, "maybe", mb.Stream(), opts)
	if !ok {
		return zero, false
	}
	if m.Err != nil {
		sink.Fail(fmt.Sprintf("Expected a value, got error %s instead", mockerr.Describe(m.Err)), at)
		return zero, false
	}
	if len(m.Values) == 0 {
		sink.Fail("Expected a value to be returned, but Maybe completed without one", at)
		return zero, false
	}
	return m.Values[0], true
}

// MaybeCompletion waits for mb to complete without a value.
func MaybeCompletion[T any](sink report.Sink, mb *async.Maybe[T], opts ...Option) bool {
	at := report.Caller(1)

	m, ok := wait(sink, at, "maybe", mb.Stream(), opts)
	if !ok {
		return false
	}
	if m.Err != nil {
		sink.Fail(fmt.Sprintf("Expected successful completion, got a %s instead", mockerr.Describe(m.Err)), at)
		return false
	}
	if len(m.Values) > 0 {
		sink.Fail("Expected successful completion without a value, but had a value returned", at)
		return false
	}
	return true
}

// MaybeError waits for mb to fail.
func MaybeError[T any](sink report.Sink, mb *async.Maybe[T], opts ...Option) error {
	at := report.Caller(1)

	m, ok := wait(sink, at, "maybe", mb.Stream(), opts)
	if !ok {
		return nil
	}
	if m.Err != nil {
		return m.Err
	}
	if len(m.Values) > 0 {
		sink.Fail("Expected an error, but got a value instead", at)
	} else {
		sink.Fail("Expected an error, but Maybe completed instead", at)
	}
	return nil
}

// CompletableCompletion waits for c to complete.
func CompletableCompletion(sink report.Sink, c *async.Completable, opts ...Option) bool {
	at := report.Caller(1)

	m, ok := wait(sink, at, "completable", c.Stream(), opts)
	if !ok {
		return false
	}
	if m.Err != nil {
		sink.Fail(fmt.Sprintf("Expected successful completion, got a %s instead", mockerr.Describe(m.Err)), at)
		return false
	}
	return true
}

// CompletableError waits for c to fail.
func CompletableError(sink report.Sink, c *async.Completable, opts ...Option) error {
	at := report.Caller(1)

	m, ok := wait(sink, at, "completable", c.Stream(), opts)
	if !ok {
		return nil
	}
	if m.Err == nil {
		sink.Fail("Expected an error, but completed instead", at)
		return nil
	}
	return m.Err
}

// ObservableCompletion waits for o to complete and returns its values.
func ObservableCompletion[T any](sink report.Sink, o *async.Observable[T], opts ...Option) []T {
	at := report.Caller(1)

	m, ok := wait(sink, at, "observable", o.Stream(), opts)
	if !ok {
		return nil
	}
	if m.Err != nil {
		sink.Fail(fmt.Sprintf("Expected successful completion, got a %s instead", mockerr.Describe(m.Err)), at)
		return nil
	}
	return m.Values
}

// ObservableError waits for o to fail and returns the values emitted before
// the error, and the error.
func ObservableError[T any](sink report.Sink, o *async.Observable[T], opts ...Option) ([]T, error) {
	at := report.Caller(1)

	m, ok := wait(sink, at, "observable", o.Stream(), opts)
	if !ok {
		return m.Values, nil
	}
	if m.Err == nil {
		sink.Fail("Expected an error, but completed instead", at)
		return m.Values, nil
	}
	return m.Values, m.Err
}
