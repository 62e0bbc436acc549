package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds every test context unless a test asks otherwise
const DefaultTimeout = 5 * time.Second

// TestContext represents a test context
type TestContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// NewTestContext creates a new test context
func NewTestContext(t *testing.T) *TestContext {
	return NewTestContextWithTimeout(t, DefaultTimeout)
}

// NewTestContextWithTimeout creates a new test context with timeout
func NewTestContextWithTimeout(t *testing.T, timeout time.Duration) *TestContext {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return &TestContext{
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// Context returns the underlying context
func (c *TestContext) Context() context.Context {
	return c.ctx
}

// Cancel cancels the context
func (c *TestContext) Cancel() {
	c.cancel()
}

// Timeout returns the context timeout
func (c *TestContext) Timeout() time.Duration {
	return c.timeout
}

// Context returns a context that is cancelled after DefaultTimeout or when the test ends
func Context(t *testing.T) context.Context {
	return NewTestContext(t).Context()
}
