package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is the debug log level
	LevelDebug LogLevel = iota
	// LevelInfo is the info log level
	LevelInfo
	// LevelWarn is the warning log level
	LevelWarn
	// LevelError is the error log level
	LevelError
)

var (
	currentLevel LogLevel
	levelOnce    sync.Once

	outputMu sync.RWMutex
	root     Logger
)

// Logger writes leveled messages with an optional set of fixed fields.
// The zero value is not usable; obtain one from With or Default.
type Logger struct {
	z zerolog.Logger
}

// initLevel initializes the log level and output from environment variables
func initLevel() {
	levelOnce.Do(func() {
		currentLevel = parseLevel(os.Getenv("DEBUG"), os.Getenv("LOG_LEVEL"))

		outputMu.Lock()
		root = Logger{z: newZerolog(os.Stderr, os.Getenv("LOG_FORMAT"))}
		outputMu.Unlock()
	})
}

// parseLevel resolves the effective level. DEBUG wins over LOG_LEVEL.
func parseLevel(debug, level string) LogLevel {
	switch strings.ToLower(debug) {
	case "1", "true", "yes", "on":
		return LevelDebug
	}

	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func newZerolog(w io.Writer, format string) zerolog.Logger {
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput redirects all subsequent log output to w using the given format
// ("console" or "json"). Loggers created with With before the call keep
// their previous destination.
func SetOutput(w io.Writer, format string) {
	initLevel()
	outputMu.Lock()
	root = Logger{z: newZerolog(w, format)}
	outputMu.Unlock()
}

// Default returns the process-wide logger.
func Default() Logger {
	initLevel()
	outputMu.RLock()
	defer outputMu.RUnlock()
	return root
}

// With returns a logger that attaches key=value to every message.
func With(key, value string) Logger {
	return Default().With(key, value)
}

// With returns a child logger that attaches key=value to every message.
func (l Logger) With(key, value string) Logger {
	return Logger{z: l.z.With().Str(key, value).Logger()}
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug)
func (l Logger) Debug(format string, args ...interface{}) {
	if GetLevel() <= LevelDebug {
		l.z.Debug().Msgf(format, args...)
	}
}

// Info logs an info message
func (l Logger) Info(format string, args ...interface{}) {
	if GetLevel() <= LevelInfo {
		l.z.Info().Msgf(format, args...)
	}
}

// Warn logs a warning message
func (l Logger) Warn(format string, args ...interface{}) {
	if GetLevel() <= LevelWarn {
		l.z.Warn().Msgf(format, args...)
	}
}

// Error logs an error message
func (l Logger) Error(format string, args ...interface{}) {
	if GetLevel() <= LevelError {
		l.z.Error().Msgf(format, args...)
	}
}

// GetLevel returns the current log level
func GetLevel() LogLevel {
	initLevel()
	return currentLevel
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug)
func Debug(format string, args ...interface{}) {
	Default().Debug(format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	Default().Info(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	Default().Warn(format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	Default().Error(format, args...)
}

// Fatal logs an error message and exits
func Fatal(format string, args ...interface{}) {
	l := Default()
	l.z.Fatal().Msgf(format, args...)
}

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}
