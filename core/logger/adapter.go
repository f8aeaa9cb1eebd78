package logger

import (
	"fmt"

	"github.com/hyperterse/dataexplorer/core/infrastructure/logging"
)

const (
	LogLevelError = logging.LogLevelError
	LogLevelWarn  = logging.LogLevelWarn
	LogLevelInfo  = logging.LogLevelInfo
	LogLevelDebug = logging.LogLevelDebug
)

// SetLogLevel sets the global log level
func SetLogLevel(level int) {
	logging.SetLogLevel(level)
}

// GetLogLevel returns the current global log level
func GetLogLevel() int {
	return logging.GetLogLevel()
}

// SetTagFilter sets the tag filter
func SetTagFilter(filterStr string) {
	logging.SetTagFilter(filterStr)
}

// SetLogFile enables log file streaming
func SetLogFile() (string, error) {
	return logging.SetLogFile()
}

// LogDir returns the directory log files are streamed to
func LogDir() string {
	return logging.LogDir
}

// CloseLogFile closes the log file
func CloseLogFile() error {
	return logging.CloseLogFile()
}

// Logger is the tagged logger handed to commands and services
type Logger struct {
	tag  string
	impl logging.Logger
}

// New creates a new logger instance with a tag
func New(tag string) *Logger {
	return &Logger{
		tag:  tag,
		impl: logging.New(tag),
	}
}

// Error logs at ERROR level
func (l *Logger) Error(message string) {
	l.impl.Error(message)
}

// Errorf builds an error tagged with this logger's tag. It is not logged
// here; the command boundary logs it once under the tag.
func (l *Logger) Errorf(format string, args ...any) error {
	return WithTag(l.tag, fmt.Errorf(format, args...))
}

// Tag returns the logger tag.
func (l *Logger) Tag() string {
	return l.tag
}

// Warn logs at WARN level
func (l *Logger) Warn(message string) {
	l.impl.Warn(message)
}

// Warnf logs at WARN level with formatting
func (l *Logger) Warnf(format string, args ...any) {
	l.impl.Warnf(format, args...)
}

// Info logs at INFO level
func (l *Logger) Info(message string) {
	l.impl.Info(message)
}

// Infof logs at INFO level with formatting
func (l *Logger) Infof(format string, args ...any) {
	l.impl.Infof(format, args...)
}

// Success logs regardless of log level
func (l *Logger) Success(message string) {
	l.impl.Success(message)
}

// Successf logs regardless of log level
func (l *Logger) Successf(format string, args ...any) {
	l.impl.Successf(format, args...)
}

// Debug logs at DEBUG level
func (l *Logger) Debug(message string) {
	l.impl.Debug(message)
}

// Debugf logs at DEBUG level with formatting
func (l *Logger) Debugf(format string, args ...any) {
	l.impl.Debugf(format, args...)
}

// DebugEnabled reports whether DEBUG messages are currently written
func (l *Logger) DebugEnabled() bool {
	return l.impl.DebugEnabled()
}

// PrintError logs an error with a title
func (l *Logger) PrintError(title string, err error) {
	l.impl.PrintError(title, err)
}

// PrintValidationErrors logs a numbered list of validation errors
func (l *Logger) PrintValidationErrors(errors []string) {
	l.impl.PrintValidationErrors(errors)
}
