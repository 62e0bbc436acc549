package mock_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"asyncmock/internal/metrics"
	"asyncmock/internal/test/testutil"
	"asyncmock/pkg/async"
	"asyncmock/pkg/config"
	"asyncmock/pkg/expect"
	"asyncmock/pkg/mock"
	"asyncmock/pkg/mockerr"
	"asyncmock/pkg/result/completable"
	"asyncmock/pkg/result/maybe"
	"asyncmock/pkg/result/observable"
	"asyncmock/pkg/result/single"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errRemote = errors.New("remote failed")

type mockClient struct {
	*mock.Async

	GetResult     *single.Result[string]
	AnyResult     *single.Result[any]
	FindResult    *maybe.Result[int]
	FindAnyResult *maybe.Result[any]
	PostResult    *completable.Result
	WatchResult   *observable.Result[int]
	WatchAny      *observable.Result[any]
}

func (m *mockClient) Get() *async.Single[string] { return mock.Single(m, m.GetResult) }
func (m *mockClient) GetInt() *async.Single[int] { return mock.SingleAny[int](m, m.AnyResult) }
func (m *mockClient) Find() *async.Maybe[int] { return mock.Maybe(m, m.FindResult) }
func (m *mockClient) FindInt() *async.Maybe[int] { return mock.MaybeAny[int](m, m.FindAnyResult) }
func (m *mockClient) Post() *async.Completable { return mock.Completable(m, m.PostResult) }
func (m *mockClient) Watch() *async.Observable[int] { return mock.Observable(m, m.WatchResult) }
func (m *mockClient) WatchInt() *async.Observable[int] { return mock.ObservableAny[int](m, m.WatchAny) }
func (m *mockClient) Close() error { return m.UnexpectedFunctionCall() }

type baseClient struct {
	*mock.Base

	GetResult *single.Result[string]
}

func (m *baseClient) Get() *async.Single[string] { return mock.Single(m, m.GetResult) }

func newClient(t *testing.T, opts ...mock.Option) (*mockClient, *testutil.SinkRecorder) {
	sink := testutil.NewSinkRecorder()
	m := &mockClient{Async: mock.New(sink, opts...)}
	t.Cleanup(m.Wait)
	return m, sink
}

func TestSingleResolvesConfiguredResult(t *testing.T) {
	m, sink := newClient(t)
	ctx := testutil.Context(t)

	m.GetResult = single.Value("hello")
	v, err := m.Get().Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	m.GetResult = single.Throw[string](errRemote)
	_, err = m.Get().Await(ctx)
	assert.ErrorIs(t, err, errRemote)

	assert.Empty(t, sink.Messages())
}

func TestUnexpectedCalls(t *testing.T) {
	tests := []struct {
		name     string
		call     func(m *mockClient, ctx context.Context) error
		function string
	}{
		{
			name: "single",
			call: func(m *mockClient, ctx context.Context) error {
				_, err := m.Get().Await(ctx)
				return err
			},
			function: "mockClient.Get",
		},
		{
			name: "single any",
			call: func(m *mockClient, ctx context.Context) error {
				_, err := m.GetInt().Await(ctx)
				return err
			},
			function: "mockClient.GetInt",
		},
		{
			name: "maybe",
			call: func(m *mockClient, ctx context.Context) error {
				_, _, err := m.Find().Await(ctx)
				return err
			},
			function: "mockClient.Find",
		},
		{
			name: "maybe any",
			call: func(m *mockClient, ctx context.Context) error {
				_, _, err := m.FindInt().Await(ctx)
				return err
			},
			function: "mockClient.FindInt",
		},
		{
			name: "completable",
			call: func(m *mockClient, ctx context.Context) error {
				return m.Post().Await(ctx)
			},
			function: "mockClient.Post",
		},
		{
			name: "observable",
			call: func(m *mockClient, ctx context.Context) error {
				_, err := m.Watch().Collect(ctx)
				return err
			},
			function: "mockClient.Watch",
		},
		{
			name: "observable any",
			call: func(m *mockClient, ctx context.Context) error {
				_, err := m.WatchInt().Collect(ctx)
				return err
			},
			function: "mockClient.WatchInt",
		},
		{
			name: "plain method",
			call: func(m *mockClient, _ context.Context) error {
				return m.Close()
			},
			function: "mockClient.Close",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, sink := newClient(t)

			err := tt.call(m, testutil.Context(t))

			var unexpected *mockerr.UnexpectedCallError
			require.ErrorAs(t, err, &unexpected)
			assert.Equal(t, tt.function, unexpected.Function)
			assert.ErrorIs(t, err, mockerr.ErrUnexpectedCall)
			assert.Equal(t, []string{"Unexpected function call " + tt.function}, sink.Messages())
			last, _ := sink.Last()
			assert.Equal(t, "mock_test.go", filepath.Base(last.Location.File))
		})
	}
}

func TestUnexpectedCallReportedWhenCalledNotWhenAwaited(t *testing.T) {
	m, sink := newClient(t)

	_ = m.Get()

	assert.Equal(t, []string{"Unexpected function call mockClient.Get"}, sink.Messages())
}

func TestSingleAnyChecksType(t *testing.T) {
	m, sink := newClient(t)
	ctx := testutil.Context(t)

	m.AnyResult = single.Value[any](42)
	v, err := m.GetInt().Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Empty(t, sink.Messages())

	m.AnyResult = single.Value[any]("forty-two")
	_, err = m.GetInt().Await(ctx)

	var wrong *mockerr.WrongTypeError
	require.ErrorAs(t, err, &wrong)
	assert.ErrorIs(t, err, mockerr.ErrWrongType)
	assert.Equal(t, []string{"Expected to return a int, but got a string instead."}, sink.Messages())
}

func TestMaybeAnyChecksType(t *testing.T) {
	m, sink := newClient(t)
	ctx := testutil.Context(t)

	m.FindAnyResult = maybe.Completed[any]()
	_, ok, err := m.FindInt().Await(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	m.FindAnyResult = maybe.Value[any](1.5)
	_, _, err = m.FindInt().Await(ctx)
	assert.ErrorIs(t, err, mockerr.ErrWrongType)
	assert.Equal(t, []string{"Expected to return a int, but got a float64 instead."}, sink.Messages())
}

func TestObservableAnyStopsAtFirstWrongType(t *testing.T) {
	m, sink := newClient(t)

	m.WatchAny = observable.Sequence[any](1, 2, "three", 4)
	got, err := m.WatchInt().Materialize(testutil.Context(t))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, got.Values)
	assert.ErrorIs(t, got.Err, mockerr.ErrWrongType)
	assert.Equal(t, []string{"Expected to return a int, but got a string instead."}, sink.Messages())
}

func TestConfiguredShapes(t *testing.T) {
	m, sink := newClient(t)
	ctx := testutil.Context(t)

	m.FindResult = maybe.Value(7)
	v, ok, err := m.Find().Await(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	m.PostResult = completable.Completed()
	assert.NoError(t, m.Post().Await(ctx))

	m.PostResult = completable.Throw(errRemote)
	assert.ErrorIs(t, m.Post().Await(ctx), errRemote)

	m.WatchResult = observable.Sequence(1, 2, 3)
	values, err := m.Watch().Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)

	assert.Empty(t, sink.Messages())
}

func TestBaseAttributesFailuresToDeclaration(t *testing.T) {
	sink := testutil.NewSinkRecorder()
	m := &baseClient{Base: mock.NewBase(sink)}
	t.Cleanup(m.Wait)

	declared := m.Declared()
	require.Equal(t, "mock_test.go", filepath.Base(declared.File))
	assert.Equal(t, "TestBaseAttributesFailuresToDeclaration", declared.Function)

	_, err := m.Get().Await(testutil.Context(t))
	assert.ErrorIs(t, err, mockerr.ErrUnexpectedCall)

	got := sink.RequireFailure(t, "Unexpected function call baseClient.Get")
	assert.Equal(t, declared.Line, got.Location.Line)
}

func TestNilSinkDiscards(t *testing.T) {
	m := &mockClient{Async: mock.New(nil)}
	t.Cleanup(m.Wait)

	assert.NotNil(t, m.Sink())
	_, err := m.Get().Await(testutil.Context(t))
	assert.ErrorIs(t, err, mockerr.ErrUnexpectedCall)
}

func TestCallsAreLogged(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	m, _ := newClient(t, mock.WithLogger(logger.Entry()))

	m.GetResult = single.Value("ok")
	_, err := m.Get().Await(testutil.Context(t))
	require.NoError(t, err)

	entry := logger.Hook().RequireEntry(t, logrus.DebugLevel, "mocked call")
	assert.Equal(t, "mockClient.Get", entry.Data["function"])
	assert.Equal(t, "single", entry.Data["shape"])
	assert.NotEmpty(t, entry.Data["call_id"])
	logger.Hook().RequireNoEntry(t, logrus.InfoLevel, "unexpected function call")

	m.GetResult = nil
	_, _ = m.Get().Await(testutil.Context(t))
	logger.Hook().RequireEntry(t, logrus.InfoLevel, "unexpected function call")
}

func TestCallsAreCounted(t *testing.T) {
	met := testutil.NewTestMetrics(t, "asyncmock")
	m, _ := newClient(t, mock.WithMetrics(met.Metrics()))
	ctx := testutil.Context(t)

	m.GetResult = single.Value("ok")
	_, err := m.Get().Await(ctx)
	require.NoError(t, err)

	m.GetResult = nil
	_, _ = m.Get().Await(ctx)

	m.AnyResult = single.Value[any]("nope")
	_, _ = m.GetInt().Await(ctx)

	met.RequireCalls("single", "mockClient.Get", metrics.OutcomeResolved, 1)
	met.RequireCalls("single", "mockClient.Get", metrics.OutcomeUnexpected, 1)
	met.RequireCalls("single", "mockClient.GetInt", metrics.OutcomeWrongType, 1)
	assert.Equal(t, 2.0, met.Failures("single"))
	met.RequireScrapeContains(`asyncmock_calls_total{function="mockClient.Get",outcome="unexpected",shape="single"} 1`)
}

func TestSchedulers(t *testing.T) {
	serial := async.NewSerial()
	t.Cleanup(serial.Close)

	m, _ := newClient(t, mock.WithSubscribeOn(async.Immediate), mock.WithObserveOn(serial))
	m.WatchResult = observable.Sequence(1, 2, 3)

	values, err := m.Watch().Collect(testutil.Context(t))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestPendingMaybeCompletesWithoutValue(t *testing.T) {
	m, sink := newClient(t)
	m.FindResult = new(maybe.Result[int])
	waits := testutil.NewSinkRecorder()

	assert.True(t, expect.MaybeCompletion(waits, m.Find()))
	waits.RequireNoFailures(t)

	v, ok := expect.MaybeValue(waits, m.Find())
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, []string{"Expected a value to be returned, but Maybe completed without one"}, waits.Messages())

	sink.RequireNoFailures(t)
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BackgroundWorkers = 1
	cfg.LogLevel = "error"

	m, sink := newClient(t, mock.WithConfig(cfg))
	m.WatchResult = observable.Sequence(4, 5)
	m.GetResult = single.Value("one worker")

	values, err := m.Watch().Collect(testutil.Context(t))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, values)

	got, ok := expect.SingleSuccess(sink, m.Get())
	assert.True(t, ok)
	assert.Equal(t, "one worker", got)
	sink.RequireNoFailures(t)
}
