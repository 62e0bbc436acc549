package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"asyncmock/pkg/report"
)

// Failure is a failure received by a SinkRecorder
type Failure struct {
	Message  string
	Location report.Location
}

// SinkRecorder is a report.Sink that records failures for later checks
type SinkRecorder struct {
	mu       sync.Mutex
	failures []Failure
	notify   chan struct{}
}

// NewSinkRecorder creates an empty recorder
func NewSinkRecorder() *SinkRecorder {
	return &SinkRecorder{notify: make(chan struct{})}
}

// Fail records a failure
func (r *SinkRecorder) Fail(message string, at report.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, Failure{Message: message, Location: at})
	close(r.notify)
	r.notify = make(chan struct{})
}

// Failures returns every failure in order
func (r *SinkRecorder) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Failure(nil), r.failures...)
}

// Messages returns the recorded messages in order
func (r *SinkRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, f := range r.failures {
		out = append(out, f.Message)
	}
	return out
}

// Last returns the most recent failure
func (r *SinkRecorder) Last() (Failure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.failures) == 0 {
		return Failure{}, false
	}
	return r.failures[len(r.failures)-1], true
}

// Clear drops every recorded failure
func (r *SinkRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = nil
}

// WaitForFailure waits until message has been recorded
func (r *SinkRecorder) WaitForFailure(timeout time.Duration, message string) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		r.mu.Lock()
		for _, f := range r.failures {
			if f.Message == message {
				r.mu.Unlock()
				return nil
			}
		}
		notify := r.notify
		r.mu.Unlock()

		select {
		case <-notify:
		case <-timer.C:
			return context.DeadlineExceeded
		}
	}
}

// RequireFailure asserts that message was recorded and returns it
func (r *SinkRecorder) RequireFailure(t *testing.T, message string) Failure {
	t.Helper()
	for _, f := range r.Failures() {
		if f.Message == message {
			return f
		}
	}
	require.Failf(t, "Expected failure not found", "%q not in %q", message, r.Messages())
	return Failure{}
}

// RequireNoFailures asserts that nothing was recorded
func (r *SinkRecorder) RequireNoFailures(t *testing.T) {
	t.Helper()
	require.Empty(t, r.Messages(), "unexpected failures recorded")
}
