// Package config loads linemap configuration from a TOML file with
// environment-variable overrides, and persists per-file session state as
// JSON. Missing files are not errors; every setting has a default.
package config
