package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full linemap configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Engine  EngineConfig  `toml:"engine"`
	Session SessionConfig `toml:"session"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum level to output: debug, info, warn, error.
	Level string `toml:"level"`

	// File is the log destination path. Empty means stderr.
	File string `toml:"file"`
}

// EngineConfig controls the text engine.
type EngineConfig struct {
	// NormalizeLineEndings converts incoming text to LineEnding.
	NormalizeLineEndings bool `toml:"normalize_line_endings"`

	// LineEnding is the preferred style: lf, crlf, or cr.
	LineEnding string `toml:"line_ending"`
}

// SessionConfig controls per-file session state.
type SessionConfig struct {
	// Enabled turns session persistence on.
	Enabled bool `toml:"enabled"`

	// Path is the session state file. Empty uses the default location.
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Engine:  EngineConfig{LineEnding: "lf"},
		Session: SessionConfig{Enabled: true},
	}
}

// Load reads the configuration from path, falling back to defaults when
// the file does not exist, then applies environment overrides. An empty
// path uses the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No file: defaults plus environment.
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// DefaultPath returns the default config file location under the user
// config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "linemap.toml"
	}
	return filepath.Join(dir, "linemap", "config.toml")
}

// DefaultSessionPath returns the default session state location under
// the user cache directory.
func DefaultSessionPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "linemap-session.json"
	}
	return filepath.Join(dir, "linemap", "session.json")
}
