package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// RequireEventually asserts that a condition becomes true within a timeout
func RequireEventually(t *testing.T, condition func() bool, timeout time.Duration, msgAndArgs ...interface{}) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.Fail(t, "Condition not met within timeout", msgAndArgs...)
}

// RequirePanicMatch asserts that fn panics with a value whose string form is expected
func RequirePanicMatch(t *testing.T, fn func(), expected string) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "Expected panic")
		require.Equal(t, expected, fmt.Sprint(r))
	}()
	fn()
}

// RequireReceive waits for a value on ch, failing after DefaultTimeout
func RequireReceive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(DefaultTimeout):
		require.FailNow(t, "Timed out waiting for value")
		var zero T
		return zero
	}
}
