package interfaces

// DebugLogger is the only logging capability the query executor needs
type DebugLogger interface {
	Debug(message string)
}

// DebugLevelChecker is implemented by loggers that can tell whether debug
// output is currently written
type DebugLevelChecker interface {
	DebugEnabled() bool
}

// Logger defines the interface for logging operations
type Logger interface {
	DebugLogger

	// Error logs at ERROR level
	Error(message string)
	// Errorf logs at ERROR level with formatting
	Errorf(format string, args ...any)

	// Warn logs at WARN level
	Warn(message string)
	// Warnf logs at WARN level with formatting
	Warnf(format string, args ...any)

	// Info logs at INFO level
	Info(message string)
	// Infof logs at INFO level with formatting
	Infof(format string, args ...any)

	// Success logs at INFO level but always shows regardless of log level
	Success(message string)
	// Successf logs at INFO level but always shows regardless of log level
	Successf(format string, args ...any)

	// Debugf logs at DEBUG level with formatting
	Debugf(format string, args ...any)
	// DebugEnabled reports whether DEBUG messages are currently written
	DebugEnabled() bool

	// PrintError logs an error with a title
	PrintError(title string, err error)
	// PrintValidationErrors logs a numbered list of validation errors
	PrintValidationErrors(errors []string)
}
