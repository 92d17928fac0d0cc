package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide JSON logger, writing to stdout at info level
// and tagging every record with the service name.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "giveawayd"))
}
