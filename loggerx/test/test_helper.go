package loggerxtest

import (
	"log/slog"
	"testing"

	"github.com/clinia/kbx/loggerx"
	"github.com/clinia/kbx/testx"
)

func NewTestLogger(t testing.TB) *loggerx.Logger {
	t.Helper()
	return loggerx.NewLogger(slog.DiscardHandler)
}

// NewTestLoggerWithJSONBuffer returns a debug-level logger writing JSON
// records into a buffer the test can assert against. The buffer is safe to
// read while the code under test is still logging.
func NewTestLoggerWithJSONBuffer(t testing.TB) (*loggerx.Logger, *testx.ConcurrentBuffer) {
	t.Helper()
	buf := testx.NewConcurrentBuffer()
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return loggerx.NewLogger(h), buf
}

// NewTestLoggerWithTextBuffer is NewTestLoggerWithJSONBuffer with logfmt-style
// output for tests asserting on rendered messages rather than fields.
func NewTestLoggerWithTextBuffer(t testing.TB) (*loggerx.Logger, *testx.ConcurrentBuffer) {
	t.Helper()
	buf := testx.NewConcurrentBuffer()
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return loggerx.NewLogger(h), buf
}
