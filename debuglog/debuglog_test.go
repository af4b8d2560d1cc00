package debuglog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	log := New(path)

	if !log.Enabled() {
		t.Fatal("Enabled() = false for configured path")
	}

	log.Write("RESPONSE")
	log.Write("line two")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error: %v", err)
	}
	if string(data) != "RESPONSE\nline two\n" {
		t.Fatalf("log contents = %q", data)
	}
}

func TestDisabledLoggerIsSilent(t *testing.T) {
	log := New("")
	if log.Enabled() {
		t.Fatal("Enabled() = true for empty path")
	}
	log.Write("dropped")

	var nilLog *Logger
	if nilLog.Enabled() {
		t.Fatal("nil logger reports enabled")
	}
	nilLog.Write("also dropped")
}

func TestWriteSwallowsErrors(t *testing.T) {
	// Path points inside a missing directory; Write must not panic or
	// create anything.
	log := New(filepath.Join(t.TempDir(), "missing", "debug.log"))
	log.Write("dropped")
}
