package capture

import (
	"fmt"
	"strings"
	"sync"

	"asyncmock/pkg/report"
)

// Criterion describes one failure a captured block is expected to report.
type Criterion struct {
	// Message is the expected failure text.
	Message string
	// Line pins the failure to a line. Zero accepts any line.
	Line int
	// Match compares a reported message with Message. Nil means equality.
	Match func(got, want string) bool
}

// Failure expects msg on any line.
func Failure(msg string) Criterion {
	return Criterion{Message: msg}
}

// FailureAt expects msg on line.
func FailureAt(msg string, line int) Criterion {
	return Criterion{Message: msg, Line: line}
}

// Matching expects a failure accepted by match.
func Matching(msg string, match func(got, want string) bool) Criterion {
	return Criterion{Message: msg, Match: match}
}

// Contains expects a failure containing fragment.
func Contains(fragment string) Criterion {
	return Matching(fragment, strings.Contains)
}

func (c Criterion) matches(got string) bool {
	if c.Match != nil {
		return c.Match(got, c.Message)
	}
	return got == c.Message
}

// Record is a failure reported while capturing.
type Record struct {
	Message  string
	Location report.Location
}

type expectation struct {
	criterion Criterion
	found     *report.Location
}

func (e *expectation) satisfied() bool {
	return e.found != nil && (e.criterion.Line == 0 || e.found.Line == e.criterion.Line)
}

// Validator is a Sink that matches reported failures against criteria.
type Validator struct {
	mu       sync.Mutex
	expected []*expectation
	records  []Record
	extras   []Record
}

// NewValidator creates a validator for the criteria.
func NewValidator(criteria ...Criterion) *Validator {
	v := &Validator{}
	for _, c := range criteria {
		v.expected = append(v.expected, &expectation{criterion: c})
	}
	return v
}

// Fail records a failure and marks the criterion it best satisfies: one
// pinned to the failure's line, then one accepting any line, then one pinned
// elsewhere, which is reported as found on the wrong line.
func (v *Validator) Fail(message string, at report.Location) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rec := Record{Message: message, Location: at}
	v.records = append(v.records, rec)

	if e := v.candidate(message, at.Line); e != nil {
		loc := at
		e.found = &loc
		return
	}
	v.extras = append(v.extras, rec)
}

func (v *Validator) candidate(message string, line int) *expectation {
	var anyLine, wrongLine *expectation
	for _, e := range v.expected {
		if e.satisfied() || !e.criterion.matches(message) {
			continue
		}
		switch e.criterion.Line {
		case line:
			return e
		case 0:
			if anyLine == nil {
				anyLine = e
			}
		default:
			if wrongLine == nil || (wrongLine.found != nil && e.found == nil) {
				wrongLine = e
			}
		}
	}
	if anyLine != nil {
		return anyLine
	}
	return wrongLine
}

// Records returns every failure seen, in order.
func (v *Validator) Records() []Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Record(nil), v.records...)
}

// Extras returns failures no criterion accepted.
func (v *Validator) Extras() []Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Record(nil), v.extras...)
}

// Missing returns the criteria not satisfied, including those found on the
// wrong line.
func (v *Validator) Missing() []Criterion {
	v.mu.Lock()
	defer v.mu.Unlock()

	var missing []Criterion
	for _, e := range v.expected {
		if !e.satisfied() {
			missing = append(missing, e.criterion)
		}
	}
	return missing
}

// Diagnostics returns one record per problem, located where it should be
// reported. It is empty when every criterion was met; extra failures are
// only listed alongside a missing one. A validator without criteria reports
// every failure as extra.
func (v *Validator) Diagnostics(site report.Location) []Record {
	v.mu.Lock()
	defer v.mu.Unlock()

	missing := len(v.expected) == 0 && len(v.extras) > 0
	for _, e := range v.expected {
		if !e.satisfied() {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	var out []Record
	for _, e := range v.expected {
		c := e.criterion
		switch {
		case e.satisfied():
		case e.found != nil:
			out = append(out, Record{
				Message:  fmt.Sprintf("Failure '%s' found on line %d, but expected to be on line %d", c.Message, e.found.Line, c.Line),
				Location: *e.found,
			})
		case c.Line != 0:
			loc := site
			loc.Line = c.Line
			out = append(out, Record{Message: fmt.Sprintf("Failure '%s' expected, but not generated", c.Message), Location: loc})
		default:
			out = append(out, Record{Message: fmt.Sprintf("Failure '%s' expected, but not generated", c.Message), Location: site})
		}
	}
	out = append(out, v.extras...)
	return out
}
