// Package logging builds the process logger from the logging settings.
// The configuration core itself never logs; this is the collaborator that
// turns the loglevel and logfile settings into a usable logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds the settings the logger is built from.
type Config struct {
	// Level is the loglevel setting ("debug", "info", "warning",
	// "error"). Unknown or empty levels fall back to info.
	Level string

	// File is the logfile setting; "-" means stdout.
	File string
}

// New creates a slog.Logger writing text output to the configured
// destination. The returned closer is non-nil when a file was opened.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer

	if cfg.File != "" && cfg.File != "-" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closer = f
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	return slog.New(handler), closer, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
