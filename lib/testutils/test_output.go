package testutils

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

// Something that makes the test also be a valid io.Writer, useful for passing
// it as an output for logs.
type testOutput struct{ testing.TB }

func (to testOutput) Write(p []byte) (n int, err error) {
	to.Logf("%s", p)
	return len(p), nil
}

// NewTestOutput returns a simple io.Writer implementation that uses the test's
// logger as an output.
func NewTestOutput(t testing.TB) io.Writer {
	return testOutput{t}
}

// NewLogger returns a new logger instance that logs everything through the
// test's t.Logf() method, so log lines end up attached to the right test.
func NewLogger(t testing.TB) logrus.FieldLogger {
	return newLogger(t)
}

// NewLoggerWithHook calls NewLogger and attaches a hook with the given levels,
// so tests can assert on logged messages. If no levels are given, all levels
// are hooked.
func NewLoggerWithHook(t testing.TB, levels ...logrus.Level) (logrus.FieldLogger, *SimpleLogrusHook) {
	l := newLogger(t)
	hook := NewLogHook(levels...)
	l.AddHook(hook)
	return l, hook
}

func newLogger(t testing.TB) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	if t == nil {
		l.SetOutput(io.Discard)
	} else {
		l.SetOutput(NewTestOutput(t))
	}
	return l
}
