// Package testutil contains utilities for testing.
package testutil

import (
	"io"
	"strings"
	"sync"
	"testing"
)

// TestWriter is an io.Writer that forwards writes to tb.Log.
// It is thread-safe and ensures logs are captured by the test runner.
type TestWriter struct {
	tb testing.TB
	mu sync.Mutex
}

// NewTestWriter creates a new TestWriter that forwards writes to tb.Log.
func NewTestWriter(tb testing.TB) *TestWriter {
	tb.Helper()

	return &TestWriter{tb: tb}
}

// Write forwards writes to tb.Log.
func (w *TestWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// We trim the trailing newline because tb.Log adds one automatically.
	w.tb.Logf("%s", strings.TrimSuffix(string(p), "\n"))

	return len(p), nil
}

// Input returns a reader that yields each line followed by a newline, as if typed at a prompt.
func Input(lines ...string) io.Reader {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return strings.NewReader(sb.String())
}
