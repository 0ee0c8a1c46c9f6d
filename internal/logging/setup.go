// SPDX-License-Identifier: MPL-2.0

// Package logging configures the process-wide slog logger. Diagnostic output
// always goes to stderr: stdout belongs to the executed program.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// NewTextHandler builds a human-oriented slog handler backed by
// charmbracelet/log. A nil writer defaults to stderr.
func NewTextHandler(level string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(level) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "info":
		lvl = log.InfoLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// NewJSONHandler builds a machine-oriented slog handler. A nil writer
// defaults to stderr.
func NewJSONHandler(level string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	var lvl slog.Level
	switch strings.ToLower(level) {
	case "trace", "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: lvl})
}

// Setup installs the default slog logger for the given level and format
// ("text" or "json"; anything else falls back to text).
func Setup(level, format string) {
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = NewJSONHandler(level, nil)
	} else {
		handler = NewTextHandler(level, nil)
	}
	slog.SetDefault(slog.New(handler))
}
