// Package mock turns configured results into the asynchronous primitives a
// mocked method returns.
//
// A test double embeds *Async or *Base and exposes one result field per
// method. Each method hands its field to Single, Maybe, Completable or
// Observable (or the *Any variants for type-erased fields):
//
//	type MockClient struct {
//		*mock.Base
//		GetResult *single.Result[Response]
//	}
//
//	func (m *MockClient) Get(url string) *async.Single[Response] {
//		return mock.Single(m, m.GetResult)
//	}
//
// A nil field marks the call as unexpected: the failure is reported to the
// mock's sink and the returned primitive fails with *mockerr.UnexpectedCallError.
// Every primitive runs on a background scheduler and is delivered on the
// mock's observe scheduler.
package mock

import (
	"github.com/sirupsen/logrus"

	"asyncmock/pkg/config"
	"asyncmock/pkg/async"
	"asyncmock/pkg/report"
)

// CallObserver receives one notification per mocked call outcome.
type CallObserver interface {
	ObserveCall(shape, function, outcome string)
}

// Mock is implemented by types embedding *Async or *Base.
type Mock interface {
	core() *Async
}

// Async is the mock-call trait shared by every mock.
type Async struct {
	sink        report.Sink
	subscribeOn async.Scheduler
	observeOn   async.Scheduler
	log         *logrus.Entry
	observer    CallObserver
	declared    *report.Location
}

// Option configures an Async.
type Option func(*Async)

// WithSubscribeOn sets the scheduler mocked calls run on.
func WithSubscribeOn(s async.Scheduler) Option {
	return func(a *Async) { a.subscribeOn = s }
}

// WithObserveOn sets the scheduler results are delivered on.
func WithObserveOn(s async.Scheduler) Option {
	return func(a *Async) { a.observeOn = s }
}

// WithLogger sets the log entry calls are logged to.
func WithLogger(entry *logrus.Entry) Option {
	return func(a *Async) { a.log = entry }
}

// WithMetrics counts calls on o, typically a *metrics.Metrics.
func WithMetrics(o CallObserver) Option {
	return func(a *Async) { a.observer = o }
}

// WithConfig sizes the background scheduler and logger from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(a *Async) {
		a.subscribeOn = async.NewBackground(cfg.BackgroundWorkers)
		a.log = logrus.NewEntry(cfg.NewLogger())
	}
}

// WithDeclaration attributes every failure to loc.
func WithDeclaration(loc report.Location) Option {
	return func(a *Async) { a.declared = &loc }
}

// New creates an Async reporting to sink. A nil sink discards failures.
// Workers and log level come from the ASYNCMOCK_ environment unless
// WithConfig overrides them.
func New(sink report.Sink, opts ...Option) *Async {
	if sink == nil {
		sink = report.Discard
	}

	cfg := config.Current()
	a := &Async{
		sink:        sink,
		subscribeOn: async.NewBackground(cfg.BackgroundWorkers),
		observeOn:   async.Immediate,
		log:         logrus.NewEntry(cfg.NewLogger()),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Async) core() *Async { return a }

// Sink returns the sink failures are reported to.
func (a *Async) Sink() report.Sink { return a.sink }

// Wait blocks until calls already running on the background scheduler return.
func (a *Async) Wait() {
	if w, ok := a.subscribeOn.(interface{ Wait() }); ok {
		w.Wait()
	}
}

// UnexpectedFunctionCall reports that the calling method must not be called
// and returns the matching error.
func (a *Async) UnexpectedFunctionCall() error {
	site := report.Caller(1)
	c := a.begin(site, "none")
	return c.unexpected()
}

// Base is an Async that attributes every failure to the place it was created.
type Base struct {
	*Async
}

// NewBase creates a Base reporting to sink and records the caller as the
// declaration site.
func NewBase(sink report.Sink, opts ...Option) *Base {
	declared := report.Caller(1)
	opts = append([]Option{WithDeclaration(declared)}, opts...)
	return &Base{Async: New(sink, opts...)}
}

// Declared returns the declaration site.
func (b *Base) Declared() report.Location {
	if b.declared == nil {
		return report.Location{}
	}
	return *b.declared
}

var _ Mock = (*Base)(nil)
