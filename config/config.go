// Package config — rustc-ja configuration file support.
//
// rustc-ja works with zero configuration. When a config file exists at
//
//	$XDG_CONFIG_HOME/rustc-ja/config.yaml  (default: ~/.config/rustc-ja/)
//
// its settings override the built-in defaults. Environment variables
// override the file in turn:
//
//	RUSTC_JA_PHRASE_FILE  path to an external translate.json
//	RUSTC_JA_DEBUG_LOG    path for raw-output debug logging
//	RUSTC_JA_DISABLE      any non-empty value disables translation
//
// A missing config file is not an error. A malformed one is reported to
// the caller but still yields usable defaults — configuration problems
// must never break the wrapped compilation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "rustc-ja"
	configFileName = "config.yaml"
)

// Config holds the wrapper settings.
type Config struct {
	// PhraseFile is a path to an external translate.json overriding the
	// embedded phrase table.
	PhraseFile string `yaml:"phrase_file,omitempty"`
	// DebugLog is the file the raw compiler output is appended to.
	// Empty disables debug logging.
	DebugLog string `yaml:"debug_log,omitempty"`
	// Language is the locale for the wrapper's own messages. Empty
	// means auto-detect from the environment.
	Language string `yaml:"language,omitempty"`
	// Disable turns diagnostic translation off; the wrapper becomes a
	// transparent pass-through.
	Disable bool `yaml:"disable,omitempty"`
}

// Path returns the config file location following the XDG base
// directory convention.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", configDirName, configFileName), nil
}

// Load reads the config file from its default location and applies
// environment overrides. The returned Config is always usable; the
// error only reports why file settings could not be honored.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := &Config{}
		applyEnv(cfg)
		return cfg, err
	}
	cfg, err := LoadFile(path)
	applyEnv(cfg)
	return cfg, err
}

// LoadFile reads one config file. A missing file yields defaults with
// no error; a malformed file yields defaults and the parse error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return &Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// applyEnv overlays environment variable settings onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("RUSTC_JA_PHRASE_FILE"); v != "" {
		cfg.PhraseFile = v
	}
	if v := os.Getenv("RUSTC_JA_DEBUG_LOG"); v != "" {
		cfg.DebugLog = v
	}
	if v := os.Getenv("RUSTC_JA_DISABLE"); v != "" {
		cfg.Disable = true
	}
}
