// Package logging builds a [slog.Handler] from CLI flag strings, the way
// the wider ecosystem's log-setup helpers parse a level and a format.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format is a log output format.
type Format string

const (
	// FormatText outputs logs in slog's default key=value text form.
	FormatText Format = "text"
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
)

var (
	// ErrUnknownLevel indicates an unrecognized log level string.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat indicates an unrecognized log format string.
	ErrUnknownFormat = errors.New("unknown log format")
)

// ParseLevel parses a log level string, case-insensitively.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// ParseFormat parses a log format string, case-insensitively.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if f == FormatText || f == FormatJSON {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// NewHandler builds a [slog.Handler] writing to w at the given level and
// format.
func NewHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewHandlerFromStrings parses level and format and builds the handler in
// one step, for wiring directly from CLI flag values.
func NewHandlerFromStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	fmtv, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return NewHandler(w, lvl, fmtv), nil
}
