package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustc-ja/rustc-ja/config"
	"github.com/rustc-ja/rustc-ja/phrase"
)

func TestResolveTable(t *testing.T) {
	oldCfg := cfg
	t.Cleanup(func() { cfg = oldCfg })
	cfg = &config.Config{}

	t.Run("embedded table by default", func(t *testing.T) {
		if got := resolveTable(""); got != phrase.Default() {
			t.Fatal("resolveTable(\"\") should return the embedded table")
		}
	})

	t.Run("explicit file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "translate.json")
		data := `[{"en": "custom phrase", "ja": "カスタムフレーズ"}]`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("os.WriteFile() error: %v", err)
		}

		table := resolveTable(path)
		if table.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", table.Len())
		}
		if got := table.Translate("custom phrase"); got != "カスタムフレーズ" {
			t.Fatalf("Translate() = %q", got)
		}
	})

	t.Run("broken file falls back to embedded", func(t *testing.T) {
		if got := resolveTable(filepath.Join(t.TempDir(), "missing.json")); got != phrase.Default() {
			t.Fatal("resolveTable(missing) should fall back to the embedded table")
		}
	})

	t.Run("configured file is used", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "translate.json")
		data := `[{"en": "from config", "ja": "設定から"}]`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("os.WriteFile() error: %v", err)
		}
		cfg = &config.Config{PhraseFile: path}
		t.Cleanup(func() { cfg = &config.Config{} })

		if got := resolveTable("").Translate("from config"); got != "設定から" {
			t.Fatalf("Translate() = %q", got)
		}
	})
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	if !root.DisableFlagParsing {
		t.Fatal("root command must not parse wrapped command flags")
	}

	for _, name := range []string{"translate", "phrases", "version"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}
