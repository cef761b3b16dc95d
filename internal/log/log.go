// Package log builds slog handlers from the CLI's level/format strings.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

// CreateHandler creates a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level := GetLevel(logLevel)

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case TextFormat, "":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", logFormat)
	}
}

// GetLevel parses a level string, defaulting to info.
func GetLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
