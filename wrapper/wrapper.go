// Package wrapper runs the wrapped compiler process and filters its
// stderr through the diagnostic translator.
//
// The wrapper is transparent: stdin and stdout are connected straight
// through, the child's exit code is propagated, and stderr is rewritten
// only when the invocation asked rustc for JSON diagnostics with
// --error-format=json. Any failure inside the translation path degrades
// to emitting the captured stderr unchanged.
package wrapper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"

	"github.com/rustc-ja/rustc-ja/debuglog"
	"github.com/rustc-ja/rustc-ja/diagnostic"
	"github.com/rustc-ja/rustc-ja/phrase"
)

// jsonErrorFormatArg is the rustc argument that switches diagnostics to
// the JSONL format this wrapper can translate. Matched by exact
// comparison; the split "--error-format json" spelling is not
// recognized, matching the historical behavior.
const jsonErrorFormatArg = "--error-format=json"

// Options configures one wrapped invocation.
type Options struct {
	// Table is the phrase table used for translation. A nil table
	// disables translation.
	Table *phrase.Table
	// Disabled passes stderr through without translation.
	Disabled bool
	// Stdout and Stderr receive the child's output. They default to
	// os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Log receives the raw child stderr before translation.
	Log *debuglog.Logger
}

// Run spawns command with args, streams its stdout through unchanged,
// captures its stderr, translates the stderr when args request JSON
// diagnostics, and returns the child's exit code.
//
// A non-nil error means the wrapper itself failed (spawn, plumbing);
// the returned code is then 1. Child compilation failures are not
// errors: the child's own exit code is returned with a nil error.
func Run(command string, args []string, opts Options) (int, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return 1, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return 1, fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("failed to spawn command: %w", err)
	}

	// Stream stdout through while collecting stderr. Both pipes must be
	// drained before Wait; Wait closes them.
	var stderrBuf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(opts.Stdout, stdoutPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&stderrBuf, stderrPipe)
		return err
	})
	copyErr := g.Wait()
	waitErr := cmd.Wait()

	if copyErr != nil {
		return 1, fmt.Errorf("failed to read command output: %w", copyErr)
	}

	data := stderrBuf.Bytes()
	if opts.Log.Enabled() {
		opts.Log.Write("RESPONSE")
		opts.Log.Write(string(data))
	}

	if !opts.Disabled && opts.Table != nil && hasJSONErrorFormat(args) {
		data = diagnostic.TranslateStream(data, opts.Table)
	}

	if _, err := opts.Stderr.Write(data); err != nil {
		return 1, fmt.Errorf("failed to write stderr: %w", err)
	}

	return exitCode(waitErr)
}

// hasJSONErrorFormat reports whether the child was asked for JSON
// diagnostics.
func hasJSONErrorFormat(args []string) bool {
	for _, a := range args {
		if a == jsonErrorFormatArg {
			return true
		}
	}
	return false
}

// exitCode maps the result of cmd.Wait to the code this process should
// exit with. A child killed by a signal has no exit code; 1 is used
// then.
func exitCode(waitErr error) (int, error) {
	if waitErr == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, fmt.Errorf("failed to wait for command: %w", waitErr)
}
