// Package logging provides a leveled logger backed by zerolog.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel parses a log level string. Unknown values map to info.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger with a printf-style API.
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger writing JSON lines to w.
func New(w io.Writer, level Level) *Logger {
	zl := zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewConsole creates a logger writing human-readable lines to w.
func NewConsole(w io.Writer, level Level) *Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}
	zl := zerolog.New(out).Level(level.zerolog()).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger that adds key=value to every entry.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// WithDuration returns a child logger carrying a duration field.
func (l *Logger) WithDuration(key string, d time.Duration) *Logger {
	return &Logger{zl: l.zl.With().Dur(key, d).Logger()}
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l.zl.GetLevel() <= level.zerolog()
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}
