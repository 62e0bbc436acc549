package async

import "context"

// Single produces exactly one value or an error.
type Single[T any] struct {
	stream *Stream[T]
}

// NewSingle wraps a stream as a Single. Only the first value is used.
func NewSingle[T any](s *Stream[T]) *Single[T] {
	return &Single[T]{stream: s}
}

// Stream returns the underlying stream.
func (s *Single[T]) Stream() *Stream[T] { return s.stream }

// Background runs the source on work and delivers on observe.
func (s *Single[T]) Background(work, observe Scheduler) *Single[T] {
	return NewSingle(s.stream.SubscribeOn(work).ObserveOn(observe))
}

// Await blocks for the value. Completion without a value yields ErrNoElements.
func (s *Single[T]) Await(ctx context.Context) (T, error) {
	var zero T
	m, err := s.stream.Materialize(ctx)
	if err != nil {
		return zero, err
	}
	if m.Err != nil {
		return zero, m.Err
	}
	if len(m.Values) == 0 {
		return zero, ErrNoElements
	}
	return m.Values[0], nil
}

// Maybe produces at most one value, an empty completion or an error.
type Maybe[T any] struct {
	stream *Stream[T]
}

// NewMaybe wraps a stream as a Maybe.
func NewMaybe[T any](s *Stream[T]) *Maybe[T] {
	return &Maybe[T]{stream: s}
}

// Stream returns the underlying stream.
func (m *Maybe[T]) Stream() *Stream[T] { return m.stream }

// Background runs the source on work and delivers on observe.
func (m *Maybe[T]) Background(work, observe Scheduler) *Maybe[T] {
	return NewMaybe(m.stream.SubscribeOn(work).ObserveOn(observe))
}

// Await blocks for termination. ok is false when the Maybe completed empty.
func (m *Maybe[T]) Await(ctx context.Context) (value T, ok bool, err error) {
	res, err := m.stream.Materialize(ctx)
	if err != nil {
		return value, false, err
	}
	if res.Err != nil {
		return value, false, res.Err
	}
	if len(res.Values) == 0 {
		return value, false, nil
	}
	return res.Values[0], true, nil
}

// Completable signals completion or an error and carries no value.
type Completable struct {
	stream *Stream[struct{}]
}

// NewCompletable wraps a stream as a Completable. Values are ignored.
func NewCompletable(s *Stream[struct{}]) *Completable {
	return &Completable{stream: s}
}

// Stream returns the underlying stream.
func (c *Completable) Stream() *Stream[struct{}] { return c.stream }

// Background runs the source on work and delivers on observe.
func (c *Completable) Background(work, observe Scheduler) *Completable {
	return NewCompletable(c.stream.SubscribeOn(work).ObserveOn(observe))
}

// Await blocks for termination and returns the error, if any.
func (c *Completable) Await(ctx context.Context) error {
	res, err := c.stream.Materialize(ctx)
	if err != nil {
		return err
	}
	return res.Err
}

// Observable produces any number of values followed by a terminal event.
type Observable[T any] struct {
	stream *Stream[T]
}

// NewObservable wraps a stream as an Observable.
func NewObservable[T any](s *Stream[T]) *Observable[T] {
	return &Observable[T]{stream: s}
}

// Stream returns the underlying stream.
func (o *Observable[T]) Stream() *Stream[T] { return o.stream }

// Background runs the source on work and delivers on observe.
func (o *Observable[T]) Background(work, observe Scheduler) *Observable[T] {
	return NewObservable(o.stream.SubscribeOn(work).ObserveOn(observe))
}

// Materialize blocks for termination and returns every event seen.
func (o *Observable[T]) Materialize(ctx context.Context) (Materialized[T], error) {
	return o.stream.Materialize(ctx)
}

// Collect blocks for termination and returns the values in emission order.
func (o *Observable[T]) Collect(ctx context.Context) ([]T, error) {
	res, err := o.stream.Materialize(ctx)
	if err != nil {
		return res.Values, err
	}
	return res.Values, res.Err
}
