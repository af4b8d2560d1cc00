// Package debuglog provides best-effort append-only logging of the
// wrapped compiler's raw output.
//
// Logging is off unless a log path is configured. Every write opens,
// appends, and closes the file, so concurrent wrapper invocations (as
// happens under cargo) interleave whole lines rather than corrupting
// each other. Failures are swallowed: debug logging must never affect
// the wrapped compilation.
package debuglog

import (
	"fmt"
	"os"
)

// Logger appends messages to a log file.
type Logger struct {
	path string
}

// New returns a logger appending to path. An empty path disables
// logging; the returned logger is still safe to use.
func New(path string) *Logger {
	return &Logger{path: path}
}

// Enabled reports whether writes will be attempted.
func (l *Logger) Enabled() bool {
	return l != nil && l.path != ""
}

// Write appends msg and a newline to the log file. Errors are ignored.
func (l *Logger) Write(msg string) {
	if !l.Enabled() {
		return
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, msg)
}
