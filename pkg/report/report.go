// Package report carries assertion failures from the mocking library to the
// test that owns it.
//
// Failures go to a Sink. A Reporter is a Sink whose destination can be
// swapped for a scope with Install, which is how pkg/capture intercepts
// failures without touching any process-wide state.
package report

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/stretchr/testify/assert"
)

// Location identifies a source position.
type Location struct {
	File     string
	Line     int
	Function string
}

// String renders the location as file:line.
func (l Location) String() string {
	if l.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(l.File), l.Line)
}

// Caller returns the location of a function on the calling goroutine's stack.
// skip 0 is the caller of Caller.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = FunctionName(fn.Name())
	}
	return loc
}

// FunctionName shortens a runtime function name to Type.Method or function
// form, dropping the import path, the package name and pointer receivers.
// Version suffixes in the package element, as in gopkg.in/yaml.v3, are part
// of the package name.
func FunctionName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, ".("); i >= 0 {
		name = name[i+1:]
	} else {
		parts := strings.Split(name, ".")
		n := 1
		for n < len(parts)-1 && isVersion(parts[n]) {
			n++
		}
		if len(parts) > n {
			name = strings.Join(parts[n:], ".")
		}
	}
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")
	return name
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Sink receives assertion failures.
type Sink interface {
	Fail(message string, at Location)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(message string, at Location)

// Fail calls f.
func (f SinkFunc) Fail(message string, at Location) { f(message, at) }

// Discard drops every failure.
var Discard Sink = SinkFunc(func(string, Location) {})

type testingSink struct {
	t assert.TestingT
}

// T reports failures to a testing.T, or any other testify TestingT, as
// "file:line: message".
func T(t assert.TestingT) Sink {
	return testingSink{t: t}
}

func (s testingSink) Fail(message string, at Location) {
	if h, ok := s.t.(interface{ Helper() }); ok {
		h.Helper()
	}
	s.t.Errorf("%s: %s", at, message)
}

// Reporter forwards failures to the most recently installed sink, or to its
// base sink when nothing is installed.
type Reporter struct {
	mu    sync.Mutex
	base  Sink
	stack []*installation
}

type installation struct {
	sink Sink
}

// NewReporter creates a reporter with a base sink. A nil base discards.
func NewReporter(base Sink) *Reporter {
	if base == nil {
		base = Discard
	}
	return &Reporter{base: base}
}

// Fail forwards to the current sink.
func (r *Reporter) Fail(message string, at Location) {
	r.Current().Fail(message, at)
}

// Current returns the sink failures are forwarded to right now.
func (r *Reporter) Current() Sink {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.stack); n > 0 {
		return r.stack[n-1].sink
	}
	return r.base
}

// Install routes failures to s until restore is called. restore may be called
// more than once and in any order relative to other installations.
func (r *Reporter) Install(s Sink) (restore func()) {
	entry := &installation{sink: s}

	r.mu.Lock()
	r.stack = append(r.stack, entry)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, e := range r.stack {
				if e == entry {
					r.stack = append(r.stack[:i], r.stack[i+1:]...)
					return
				}
			}
		})
	}
}

// Depth returns the number of active installations.
func (r *Reporter) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}
