package match

import (
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

// SetLogger allows setting a custom logger.
// Engines created afterwards log through l.
func SetLogger(l *slog.Logger) {
	logger = l
}

// engineLogger tags every record of one engine with its id.
func engineLogger(engineID string) *slog.Logger {
	return logger.With(slog.String("engine_id", engineID))
}
