package config

import "os"

// Env var names for tool settings. CLI flags take precedence over these.
const (
	// EnvLogLevel overrides the log level ("debug", "info", "warn", "error").
	EnvLogLevel = "CARBONSENSE_LOG_LEVEL"

	// EnvLogFormat overrides the log format ("console", "json").
	EnvLogFormat = "CARBONSENSE_LOG_FORMAT"
)

// Settings holds process-level tool configuration.
type Settings struct {
	LogLevel  string
	LogFormat string
}

// LoadSettings builds Settings from defaults and environment overrides.
func LoadSettings() Settings {
	s := Settings{
		LogLevel:  "info",
		LogFormat: "console",
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		s.LogFormat = v
	}
	return s
}
