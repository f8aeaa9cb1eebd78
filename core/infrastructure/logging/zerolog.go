package logging

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/hyperterse/dataexplorer/core/domain/interfaces"
)

const (
	LogLevelError = 1
	LogLevelWarn  = 2
	LogLevelInfo  = 3
	LogLevelDebug = 4
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z"

var (
	globalLogLevel = LogLevelInfo
	logLevelMutex  sync.RWMutex

	// Tag filtering
	tagFilter      []string
	tagFilterMutex sync.RWMutex

	// Output. Stdout is reserved for rendered documents, logs go to stderr.
	logFile      *os.File
	outputMutex  sync.RWMutex
	logWriter    io.Writer = os.Stderr
	forceConsole *bool
)

// LogDir is where --log-file streams are written
var LogDir = filepath.Join(os.TempDir(), ".dataexplorer", "logs")

// SetLogLevel sets the global log level
func SetLogLevel(level int) {
	logLevelMutex.Lock()
	defer logLevelMutex.Unlock()
	if level >= LogLevelError && level <= LogLevelDebug {
		globalLogLevel = level
		zerolog.SetGlobalLevel(convertLogLevel(level))
	}
}

// GetLogLevel returns the current global log level
func GetLogLevel() int {
	logLevelMutex.RLock()
	defer logLevelMutex.RUnlock()
	return globalLogLevel
}

// SetTagFilter sets the tag filter from a comma-separated string
func SetTagFilter(filterStr string) {
	tagFilterMutex.Lock()
	defer tagFilterMutex.Unlock()

	if filterStr == "" {
		tagFilter = nil
		return
	}

	tags := strings.Split(filterStr, ",")
	tagFilter = make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tagFilter = append(tagFilter, tag)
		}
	}
}

// shouldLogTag checks if a tag should be logged based on the filter
func shouldLogTag(tag string) bool {
	tagFilterMutex.RLock()
	defer tagFilterMutex.RUnlock()

	if len(tagFilter) == 0 {
		return true
	}

	for _, filterTag := range tagFilter {
		if strings.HasPrefix(filterTag, "-") {
			excludeTag := strings.TrimPrefix(filterTag, "-")
			if tag == excludeTag || strings.HasPrefix(tag, excludeTag+":") {
				return false
			}
		}
	}

	hasInclusion := false
	for _, filterTag := range tagFilter {
		if !strings.HasPrefix(filterTag, "-") {
			hasInclusion = true
			if tag == filterTag || strings.HasPrefix(tag, filterTag+":") {
				return true
			}
		}
	}

	return !hasInclusion
}

// SetOutput redirects all loggers created afterwards to w. Console formatting
// is disabled so the output is JSON lines.
func SetOutput(w io.Writer) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	logWriter = w
	console := false
	forceConsole = &console
}

// SetLogFile enables log file streaming with auto-generated filename
func SetLogFile() (string, error) {
	outputMutex.Lock()
	defer outputMutex.Unlock()

	if err := os.MkdirAll(LogDir, 0755); err != nil {
		return "", err
	}

	filename := "dataexplorer-" + generateLogFileHash() + ".log"
	filePath := filepath.Join(LogDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", err
	}

	logFile = file
	logWriter = io.MultiWriter(os.Stderr, file)

	return filePath, nil
}

// CloseLogFile closes the log file if it's open
func CloseLogFile() error {
	outputMutex.Lock()
	defer outputMutex.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		logWriter = os.Stderr
		return err
	}
	return nil
}

// generateLogFileHash generates a short hash for log filename
func generateLogFileHash() string {
	randomBytes := make([]byte, 8)
	_, _ = rand.Read(randomBytes)

	hashInput := fmt.Sprintf("%d-%d-%x", time.Now().UnixNano(), os.Getpid(), randomBytes)
	hash := sha256.Sum256([]byte(hashInput))

	return hex.EncodeToString(hash[:])[:8]
}

// ZerologLogger implements the Logger interface using zerolog
type ZerologLogger struct {
	tag    string
	logger zerolog.Logger
}

// Logger is the interface exported from this package
type Logger = interfaces.Logger

// New creates a new logger instance with a tag
func New(tag string) Logger {
	if !shouldLogTag(tag) {
		return &noOpLogger{}
	}

	outputMutex.RLock()
	output := logWriter
	console := isInteractive()
	if forceConsole != nil {
		console = *forceConsole
	}
	outputMutex.RUnlock()

	if console {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: consoleTimeFormat}
	}

	return &ZerologLogger{
		tag:    tag,
		logger: zerolog.New(output).With().Str("tag", tag).Timestamp().Logger(),
	}
}

// isInteractive checks if log output is going to a terminal
func isInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// convertLogLevel converts our log level to zerolog level
func convertLogLevel(level int) zerolog.Level {
	switch level {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// checkLogLevel checks if we should log at this level
func (l *ZerologLogger) checkLogLevel(level int) bool {
	logLevelMutex.RLock()
	defer logLevelMutex.RUnlock()
	return level <= globalLogLevel
}

// Error logs at ERROR level
func (l *ZerologLogger) Error(message string) {
	if !l.checkLogLevel(LogLevelError) {
		return
	}
	l.logger.Error().Msg(message)
}

// Errorf logs at ERROR level with formatting
func (l *ZerologLogger) Errorf(format string, args ...any) {
	if !l.checkLogLevel(LogLevelError) {
		return
	}
	l.logger.Error().Msgf(format, args...)
}

// Warn logs at WARN level
func (l *ZerologLogger) Warn(message string) {
	if !l.checkLogLevel(LogLevelWarn) {
		return
	}
	l.logger.Warn().Msg(message)
}

// Warnf logs at WARN level with formatting
func (l *ZerologLogger) Warnf(format string, args ...any) {
	if !l.checkLogLevel(LogLevelWarn) {
		return
	}
	l.logger.Warn().Msgf(format, args...)
}

// Info logs at INFO level
func (l *ZerologLogger) Info(message string) {
	if !l.checkLogLevel(LogLevelInfo) {
		return
	}
	l.logger.Info().Msg(message)
}

// Infof logs at INFO level with formatting
func (l *ZerologLogger) Infof(format string, args ...any) {
	if !l.checkLogLevel(LogLevelInfo) {
		return
	}
	l.logger.Info().Msgf(format, args...)
}

// Success logs regardless of log level
func (l *ZerologLogger) Success(message string) {
	l.logger.WithLevel(zerolog.NoLevel).Str("status", "success").Msg(message)
}

// Successf logs regardless of log level
func (l *ZerologLogger) Successf(format string, args ...any) {
	l.logger.WithLevel(zerolog.NoLevel).Str("status", "success").Msgf(format, args...)
}

// Debug logs at DEBUG level
func (l *ZerologLogger) Debug(message string) {
	if !l.checkLogLevel(LogLevelDebug) {
		return
	}
	l.logger.Debug().Msg(message)
}

// Debugf logs at DEBUG level with formatting
func (l *ZerologLogger) Debugf(format string, args ...any) {
	if !l.checkLogLevel(LogLevelDebug) {
		return
	}
	l.logger.Debug().Msgf(format, args...)
}

// DebugEnabled reports whether the global level lets DEBUG messages through
func (l *ZerologLogger) DebugEnabled() bool {
	return l.checkLogLevel(LogLevelDebug)
}

// PrintError logs an error with a title
func (l *ZerologLogger) PrintError(title string, err error) {
	if err == nil {
		return
	}
	l.Errorf("%s: %v", title, err)
}

// PrintValidationErrors logs validation errors
func (l *ZerologLogger) PrintValidationErrors(errors []string) {
	if len(errors) == 0 {
		return
	}
	l.Errorf("Validation Errors (%d)", len(errors))
	for i, err := range errors {
		l.Errorf("  %d. %s", i+1, err)
	}
}

// noOpLogger is a no-op logger for filtered tags
type noOpLogger struct{}

func (n *noOpLogger) Error(string)                   {}
func (n *noOpLogger) Errorf(string, ...any)          {}
func (n *noOpLogger) Warn(string)                    {}
func (n *noOpLogger) Warnf(string, ...any)           {}
func (n *noOpLogger) Info(string)                    {}
func (n *noOpLogger) Infof(string, ...any)           {}
func (n *noOpLogger) Success(string)                 {}
func (n *noOpLogger) Successf(string, ...any)        {}
func (n *noOpLogger) Debug(string)                   {}
func (n *noOpLogger) Debugf(string, ...any)          {}
func (n *noOpLogger) DebugEnabled() bool             { return false }
func (n *noOpLogger) PrintError(string, error)       {}
func (n *noOpLogger) PrintValidationErrors([]string) {}
