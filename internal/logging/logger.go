// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// Options configure the diagnostic logger.
type Options struct {
	Writer io.Writer
	Level  string
	// JSON switches the formatter from colorful text to one JSON object per line.
	JSON bool
}

// New builds the structured logger used for diagnostics.
// Diagnostics go to Options.Writer, normally stderr, so that command output on
// stdout stays clean.
func New(opts Options) *pterm.Logger {
	l := pterm.DefaultLogger.
		WithLevel(ParseLevel(opts.Level)).
		WithTime(false)
	if opts.Writer != nil {
		l = l.WithWriter(opts.Writer)
	}
	if opts.JSON {
		l = l.WithFormatter(pterm.LogFormatterJSON)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled).WithWriter(io.Discard)
}

// ParseLevel maps a level name to a pterm level, defaulting to info.
func ParseLevel(s string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}
