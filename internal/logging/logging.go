// Package logging builds the zerolog.Logger used across blockify's
// internal packages and cmd/blockifyctl, following the level-parsing
// and pretty/JSON split conventions of the example pack's zerolog
// setups: JSON by default, RFC3339Nano timestamps, and an env var to
// switch to a human-readable console writer during development.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// PrettyEnvVar, when set to any non-empty value, switches New's output
// to zerolog's console writer instead of JSON.
const PrettyEnvVar = "BLOCKIFY_LOG_PRETTY"

// New builds a zerolog.Logger at the given level ("debug", "info",
// "warn"/"warning", "error"; "disabled", "silent" or "none" turn logging
// off; anything else falls back to "info").
func New(levelStr string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(output()).With().Timestamp().Logger().Level(parseLevel(levelStr))
}

func output() io.Writer {
	if os.Getenv(PrettyEnvVar) != "" {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02T15:04:05.000000000Z07:00"}
	}
	return os.Stderr
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "silent", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Disabled returns a logger that discards everything, the zero-cost
// default every blockify library package falls back to when a caller
// doesn't supply one — a library should stay silent unless asked.
func Disabled() zerolog.Logger {
	return zerolog.Nop()
}
