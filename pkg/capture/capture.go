// Package capture verifies that a block of code reports specific assertion
// failures.
//
// While the block runs, a Validator is installed on a report.Reporter so the
// failures it receives are matched against the expected criteria instead of
// failing the test. Once the block ends, even by panicking, the test is
// failed only if an expected failure is missing or was reported on the wrong
// line; in that case every unexpected failure is reported too. A panic is
// re-raised after settling.
//
//	capture.Expect(t, reporter, func() {
//		expect.SingleSuccess(reporter, client.GetSingle())
//	}, capture.Failure("Unexpected function call MockHTTPClient.GetSingle"))
package capture

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"asyncmock/pkg/report"
)

// Harness runs capture sessions against one reporter.
type Harness struct {
	t        assert.TestingT
	reporter *report.Reporter
	log      *logrus.Entry
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger logs each session to entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(h *Harness) { h.log = entry }
}

// New creates a harness that intercepts r and fails t.
func New(t assert.TestingT, r *report.Reporter, opts ...Option) *Harness {
	h := &Harness{
		t:        t,
		reporter: r,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Expect runs fn and checks that it reported failures matching criteria.
// It returns true when every criterion was met.
func (h *Harness) Expect(fn func(), criteria ...Criterion) bool {
	return h.expect(report.Caller(1), fn, criteria)
}

// Expect runs fn with failures on r captured and checks them against
// criteria, failing t when an expected failure is missing.
func Expect(t assert.TestingT, r *report.Reporter, fn func(), criteria ...Criterion) bool {
	return New(t, r).expect(report.Caller(1), fn, criteria)
}

func (h *Harness) expect(site report.Location, fn func(), criteria []Criterion) bool {
	if th, ok := h.t.(interface{ Helper() }); ok {
		th.Helper()
	}

	log := h.log.WithFields(logrus.Fields{
		"session":  uuid.NewString(),
		"site":     site.String(),
		"expected": len(criteria),
	})
	log.Debug("capture started")

	v := NewValidator(criteria...)
	returned := false
	defer func() {
		if returned {
			return
		}
		p := recover()
		h.settle(log, site, v)
		if p != nil {
			panic(p)
		}
	}()

	run(h.reporter, v, fn)
	returned = true
	return h.settle(log, site, v)
}

// settle reports every diagnostic at its location and returns true when
// there were none.
func (h *Harness) settle(log *logrus.Entry, site report.Location, v *Validator) bool {
	diagnostics := v.Diagnostics(site)
	log.WithFields(logrus.Fields{
		"records":     len(v.Records()),
		"extras":      len(v.Extras()),
		"diagnostics": len(diagnostics),
	}).Debug("capture settled")

	for _, d := range diagnostics {
		h.t.Errorf("%s: %s", d.Location, d.Message)
	}
	return len(diagnostics) == 0
}

// run installs v for the duration of fn. The previous sink is restored even
// if fn panics or exits the goroutine.
func run(r *report.Reporter, v *Validator, fn func()) {
	restore := r.Install(v)
	defer restore()
	fn()
}
