package mock

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"asyncmock/internal/metrics"
	"asyncmock/pkg/mockerr"
	"asyncmock/pkg/report"
	"asyncmock/pkg/result"
)

// call tracks one invocation of a mocked method.
type call struct {
	a     *Async
	shape string
	site  report.Location
	at    report.Location
	log   *logrus.Entry
}

func (a *Async) begin(site report.Location, shape result.Shape) *call {
	at := site
	if a.declared != nil {
		at = *a.declared
	}

	c := &call{
		a:     a,
		shape: string(shape),
		site:  site,
		at:    at,
		log: a.log.WithFields(logrus.Fields{
			"function": site.Function,
			"file":     filepath.Base(at.File),
			"line":     at.Line,
			"shape":    string(shape),
			"call_id":  uuid.NewString(),
		}),
	}
	c.log.Debug("mocked call")
	return c
}

func (c *call) resolved() {
	c.observe(metrics.OutcomeResolved)
}

func (c *call) unexpected() error {
	c.a.sink.Fail(fmt.Sprintf("Unexpected function call %s", c.site.Function), c.at)
	c.log.Info("unexpected function call")
	c.observe(metrics.OutcomeUnexpected)
	return &mockerr.UnexpectedCallError{Function: c.site.Function}
}

func (c *call) wrongType(err *mockerr.WrongTypeError) {
	msg := fmt.Sprintf("Expected to return a %s, but got a %s instead.",
		mockerr.TypeName(err.Expected), mockerr.TypeName(err.Found))
	c.a.sink.Fail(msg, c.at)
	c.log.WithError(err).Info("wrong result type")
	c.observe(metrics.OutcomeWrongType)
}

func (c *call) observe(outcome string) {
	if c.a.observer != nil {
		c.a.observer.ObserveCall(c.shape, c.site.Function, outcome)
	}
}

// caster returns a checked conversion from a type-erased value that reports
// a mismatch through c.
func caster[T any](c *call) func(any) (T, error) {
	return func(raw any) (T, error) {
		v, err := result.Cast[T](raw)
		if err != nil {
			if wrong, ok := err.(*mockerr.WrongTypeError); ok {
				c.wrongType(wrong)
			}
			return v, err
		}
		return v, nil
	}
}
