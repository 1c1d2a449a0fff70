package app

import (
	"io"
	"log/slog"
)

// newLogger builds the application logger. It does not touch the global
// logger, so several apps can log side by side in tests. An unknown level
// falls back to info and an unknown format to text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
