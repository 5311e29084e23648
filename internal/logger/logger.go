// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package logger wraps logrus with the formatter and level handling used by
// the propmap commands.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is a wrapper around logrus.Logger
type Logger struct {
	*logrus.Logger
}

// New creates a new logger writing text to stderr at warn level.
func New() *Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(textFormatter())
	log.SetLevel(logrus.WarnLevel)

	return &Logger{Logger: log}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l := New()
	l.SetOutput(io.Discard)
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
}

// SetLevel sets the logging level. Unknown levels fall back to warn.
func (l *Logger) SetLevel(level string) {
	switch level {
	case "debug":
		l.Logger.SetLevel(logrus.DebugLevel)
	case "info":
		l.Logger.SetLevel(logrus.InfoLevel)
	case "warn":
		l.Logger.SetLevel(logrus.WarnLevel)
	case "error":
		l.Logger.SetLevel(logrus.ErrorLevel)
	default:
		l.Logger.SetLevel(logrus.WarnLevel)
	}
}

// SetFormat switches between "text" and "json" output.
func (l *Logger) SetFormat(format string) {
	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	l.SetFormatter(textFormatter())
}

// Configure applies a level and format in one call.
func (l *Logger) Configure(level, format string) *Logger {
	l.SetLevel(level)
	l.SetFormat(format)
	return l
}
