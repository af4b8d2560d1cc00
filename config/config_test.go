package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RUSTC_JA_PHRASE_FILE", "")
	t.Setenv("RUSTC_JA_DEBUG_LOG", "")
	t.Setenv("RUSTC_JA_DISABLE", "")
}

func TestPathHonorsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	got, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	want := filepath.Join("/xdg", "rustc-ja", "config.yaml")
	if got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestLoadFileMissingYieldsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile(missing) error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Fatalf("LoadFile(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadFileParsesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "phrase_file: /opt/translate.json\ndebug_log: /tmp/rustc-ja.log\nlanguage: ja\ndisable: true\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.PhraseFile != "/opt/translate.json" {
		t.Fatalf("PhraseFile = %q", cfg.PhraseFile)
	}
	if cfg.DebugLog != "/tmp/rustc-ja.log" {
		t.Fatalf("DebugLog = %q", cfg.DebugLog)
	}
	if cfg.Language != "ja" {
		t.Fatalf("Language = %q", cfg.Language)
	}
	if !cfg.Disable {
		t.Fatal("Disable = false, want true")
	}
}

func TestLoadFileMalformedYieldsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	cfg, err := LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile(malformed) should report an error")
	}
	if *cfg != (Config{}) {
		t.Fatalf("LoadFile(malformed) = %+v, want usable defaults", cfg)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	clearConfigEnv(t)

	confDir := filepath.Join(dir, "rustc-ja")
	if err := os.MkdirAll(confDir, 0755); err != nil {
		t.Fatalf("os.MkdirAll() error: %v", err)
	}
	data := "debug_log: /from/file.log\n"
	if err := os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte(data), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	t.Setenv("RUSTC_JA_DEBUG_LOG", "/from/env.log")
	t.Setenv("RUSTC_JA_DISABLE", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DebugLog != "/from/env.log" {
		t.Fatalf("DebugLog = %q, want env override", cfg.DebugLog)
	}
	if !cfg.Disable {
		t.Fatal("Disable = false, want true from env")
	}
}
