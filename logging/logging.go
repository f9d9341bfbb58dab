// Package logging provides the shared structured logger for the scanner,
// the CLI, and the API service.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Configure initializes the shared JSON logger. The level is taken from the
// LOG_LEVEL environment variable (debug, info, warn, error) and defaults to
// info. It is safe to call multiple times.
func Configure() *slog.Logger {
	once.Do(func() {
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelFromEnv()})
		logger = slog.New(handler)
	})
	return logger
}

// Logger returns the configured slog logger, configuring it on first use if
// necessary.
func Logger() *slog.Logger {
	if logger == nil {
		return Configure()
	}
	return logger
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
