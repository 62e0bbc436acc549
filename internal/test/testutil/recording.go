package testutil

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// RecordingT is a fake testing.T that records failures instead of failing
// the running test. It satisfies testify's assert.TestingT and require.TestingT.
type RecordingT struct {
	mu       sync.Mutex
	failures []string
	fatal    bool
}

// NewRecordingT creates a new recording T
func NewRecordingT() *RecordingT {
	return &RecordingT{}
}

// Errorf records a failure
func (r *RecordingT) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

// Helper is a no-op
func (r *RecordingT) Helper() {}

// FailNow marks the recorder as fatally failed and stops the calling goroutine.
// Use Run to call code that may reach it.
func (r *RecordingT) FailNow() {
	r.mu.Lock()
	r.fatal = true
	r.mu.Unlock()
	runtime.Goexit()
}

// Run calls fn on a separate goroutine so FailNow cannot end the caller's test.
func (r *RecordingT) Run(fn func()) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
	}()
	wg.Wait()
}

// Failed reports whether any failure was recorded
func (r *RecordingT) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures) > 0 || r.fatal
}

// Failures returns the recorded failure messages
func (r *RecordingT) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}

// RequireNoFailures asserts that nothing was recorded
func (r *RecordingT) RequireNoFailures(t *testing.T) {
	t.Helper()
	require.Empty(t, r.Failures(), "unexpected failures recorded")
}

// RequireFailureContaining asserts that some recorded failure contains text
func (r *RecordingT) RequireFailureContaining(t *testing.T, text string) {
	t.Helper()
	for _, f := range r.Failures() {
		if strings.Contains(f, text) {
			return
		}
	}
	t.Errorf("No recorded failure contains %q; got %q", text, r.Failures())
}
