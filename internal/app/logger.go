package app

import (
	"io"
	"log/slog"
)

// logLevels maps the accepted log-level names to slog levels. NewConfig
// validates against this table, so it is the single source of truth for
// what the -log-level flag accepts.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the run's isolated logger. It never touches the global
// default; validation already happened in NewConfig, so unknown values fall
// back to the info-level JSON defaults.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, ok := logLevels[levelStr]
	if !ok {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "text" {
		return slog.New(slog.NewTextHandler(outW, opts))
	}
	return slog.New(slog.NewJSONHandler(outW, opts))
}
