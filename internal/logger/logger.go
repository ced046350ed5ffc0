package logger

import (
	"io"
	"log/slog"
	"os"
)

var (
	log   *slog.Logger
	level = new(slog.LevelVar)
)

func init() {
	level.Set(slog.LevelInfo)
	if os.Getenv("DEBUG") != "" {
		level.Set(slog.LevelDebug)
	}
	SetOutput(os.Stderr)
}

// SetOutput redirects log records to w, keeping the current level.
func SetOutput(w io.Writer) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(w, opts)
	log = slog.New(handler)
}

// SetLevel changes the minimum level that is logged.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}
