// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is what the rest of the codebase logs through. It starts with a
// plain info-level text logger so packages can log before main has read
// the config; Initialize swaps in the configured one.
var Log = New(os.Stdout, Options{})

// Options control handler construction. The zero value means info-level
// text output.
type Options struct {
	Level     string // debug, info, warn, error; unknown values mean info
	JSON      bool
	AddSource bool
}

// New builds a logger writing to w. Split out from Initialize so tests
// can capture output.
func New(w io.Writer, o Options) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(o.Level),
		AddSource: o.AddSource,
	}
	if o.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Initialize replaces the global logger with one built from the server
// config and makes it the slog default.
func Initialize(level string, useJSON bool) {
	Log = New(os.Stdout, Options{Level: level, JSON: useJSON, AddSource: true})
	slog.SetDefault(Log)
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
