package config

import (
	"os"
	"strconv"
)

// Environment variables override file settings. The prefix mirrors the
// project name; only settings that make sense per-invocation are mapped.
const (
	envLogLevel    = "LINEMAP_LOG_LEVEL"
	envLogFile     = "LINEMAP_LOG_FILE"
	envLineEnding  = "LINEMAP_LINE_ENDING"
	envNormalize   = "LINEMAP_NORMALIZE"
	envSession     = "LINEMAP_SESSION"
	envSessionPath = "LINEMAP_SESSION_PATH"
)

// applyEnv overlays environment variables onto cfg. Empty values are
// treated as set.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(envLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(envLogFile); ok {
		cfg.Logging.File = v
	}
	if v, ok := os.LookupEnv(envLineEnding); ok {
		cfg.Engine.LineEnding = v
	}
	if v, ok := os.LookupEnv(envNormalize); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Engine.NormalizeLineEndings = b
		}
	}
	if v, ok := os.LookupEnv(envSession); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Session.Enabled = b
		}
	}
	if v, ok := os.LookupEnv(envSessionPath); ok {
		cfg.Session.Path = v
	}
}
