// Package logger provides process-wide logging for pdfocr.
// Debug and info messages are emitted only in verbose mode (--verbose).
// Warnings and errors are always emitted, since stage fallbacks are
// otherwise invisible to the caller.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	zl                = build(os.Stderr, false)
)

// build returns a console logger when w is a terminal and a JSON logger otherwise.
func build(w io.Writer, v bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if v {
		level = zerolog.DebugLevel
	}

	var l zerolog.Logger
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		l = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(w)
	}
	return l.Level(level).With().Timestamp().Logger()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	zl = build(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	zl = build(output, verbose)
}

// Get returns the underlying logger for structured fields.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := zl
	return &l
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	Get().Debug().Msgf(format, args...)
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	Get().Info().Msg(fmt.Sprintf("=== %s ===", name))
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	Get().Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	Get().Warn().Msgf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	Get().Error().Msgf(format, args...)
}
