package testutil

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// TestLogger represents a test logger
type TestLogger struct {
	logger *logrus.Logger
	hook   *TestLogHook
	buffer *syncBuffer
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewTestLogger creates a debug level logger that writes to a buffer and
// records every entry
func NewTestLogger(t *testing.T) *TestLogger {
	buffer := &syncBuffer{}
	logger := logrus.New()
	logger.SetOutput(io.Writer(buffer))
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		FullTimestamp:   true,
	})

	hook := NewTestLogHook(logrus.AllLevels...)
	logger.AddHook(hook)

	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("captured log:\n%s", buffer.String())
		}
	})

	return &TestLogger{
		logger: logger,
		hook:   hook,
		buffer: buffer,
	}
}

// Logger returns the underlying logger
func (l *TestLogger) Logger() *logrus.Logger {
	return l.logger
}

// Entry returns a log entry on the underlying logger
func (l *TestLogger) Entry() *logrus.Entry {
	return logrus.NewEntry(l.logger)
}

// Hook returns the hook recording every entry
func (l *TestLogger) Hook() *TestLogHook {
	return l.hook
}

// String returns the log contents as string
func (l *TestLogger) String() string {
	return l.buffer.String()
}

// RequireContains asserts that the log contains text
func (l *TestLogger) RequireContains(t *testing.T, text string) {
	t.Helper()
	require.Contains(t, l.String(), text)
}

// TestLogHook represents a test log hook
type TestLogHook struct {
	mu      sync.RWMutex
	levels  []logrus.Level
	entries []*logrus.Entry
}

// NewTestLogHook creates a new log hook
func NewTestLogHook(levels ...logrus.Level) *TestLogHook {
	return &TestLogHook{
		levels:  levels,
		entries: make([]*logrus.Entry, 0),
	}
}

// Levels returns the hook levels
func (h *TestLogHook) Levels() []logrus.Level {
	return h.levels
}

// Fire implements logrus.Hook
func (h *TestLogHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
	return nil
}

// Entries returns the captured log entries
func (h *TestLogHook) Entries() []*logrus.Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]*logrus.Entry{}, h.entries...)
}

// Find returns the first entry with the given level and message
func (h *TestLogHook) Find(level logrus.Level, message string) (*logrus.Entry, bool) {
	for _, entry := range h.Entries() {
		if entry.Level == level && entry.Message == message {
			return entry, true
		}
	}
	return nil, false
}

// RequireEntry asserts that an entry exists and returns it
func (h *TestLogHook) RequireEntry(t *testing.T, level logrus.Level, message string) *logrus.Entry {
	t.Helper()
	entry, ok := h.Find(level, message)
	require.True(t, ok, "Log entry not found: [%s] %s", level, message)
	return entry
}

// RequireNoEntry asserts that an entry does not exist
func (h *TestLogHook) RequireNoEntry(t *testing.T, level logrus.Level, message string) {
	t.Helper()
	_, ok := h.Find(level, message)
	require.False(t, ok, "Unexpected log entry found: [%s] %s", level, message)
}
