// Package logger provides structured logging utilities for keyhandler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/runvoy/keyhandler/internal/constants"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Initialize sets up the global slog logger on stderr based on the environment.
func Initialize(env constants.Environment, level slog.Level) *slog.Logger {
	logger := slog.New(NewHandler(os.Stderr, env, level))
	slog.SetDefault(logger)
	slog.Debug("logger initialized", "env", env, "level", level)

	return logger
}

// NewHandler returns the handler used for env: JSON in production, tint everywhere else.
// Colors are only emitted when w is a terminal.
func NewHandler(w io.Writer, env constants.Environment, level slog.Level) slog.Handler {
	if env == constants.Production {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})
}

// EnvironmentForFormat maps a log format setting to a logger environment.
func EnvironmentForFormat(format string) constants.Environment {
	if format == constants.LogFormatJSON {
		return constants.Production
	}
	return constants.CLI
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
