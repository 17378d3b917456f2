// Package log holds the process-wide slog logger. Components derive their
// own logger via With("component", ...) and log through that; the package
// helpers exist for the few call sites with no component of their own.
package log

import (
	"log/slog"
	"os"
	"sync"
)

var (
	logger *slog.Logger
	once   sync.Once
)

// Init configures the global logger. Levels: "debug", "info", "warn",
// "error"; anything else falls back to info. Output is JSON when
// GO_ENV=production, text otherwise. Later calls are no-ops.
func Init(level string) {
	once.Do(func() {
		var lvl slog.Level
		switch level {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{
			Level: lvl,
		}

		if os.Getenv("GO_ENV") == "production" {
			logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
		} else {
			logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
		}

		slog.SetDefault(logger)
	})
}

// L returns the global logger, initializing it at info level if Init was
// never called.
func L() *slog.Logger {
	if logger == nil {
		Init("info")
	}
	return logger
}

// Warn logs at warn level on the global logger.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// With derives a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}
