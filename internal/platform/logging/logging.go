package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger and installs it as the slog default.
// Development gets human readable text; every other environment gets JSON.
func New(env, level string) *slog.Logger {
	logger := newLogger(os.Stdout, env, level)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if env == "development" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
