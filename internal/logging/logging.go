// Package logging provides zerolog construction and context plumbing for
// carbonsense. Loggers are passed through context so that every layer logs
// with the same component-tagged writer.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how the root logger is constructed.
type Config struct {
	// Level is a zerolog level string ("debug", "info", "warn", "error").
	// Invalid values fall back to "info".
	Level string

	// Format selects the output encoding: "console" (human readable,
	// default) or "json" (structured, one event per line).
	Format string

	// Output overrides the destination writer. Defaults to os.Stderr.
	Output io.Writer
}

// New builds the root logger from cfg.
func New(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
// Every package that logs should derive its logger through this helper so
// log lines are filterable by component.
func ComponentLogger(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// WithContext embeds the logger in ctx for retrieval via FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was attached. Callers never need to nil-check the result.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}
	return *zerolog.Ctx(ctx)
}
