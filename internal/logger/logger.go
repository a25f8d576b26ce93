package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Logger provides component-tagged logging with verbose gating. Debug and
// Info are shown only when the verbose callback reports true; Warn and
// Error are always shown.
type Logger struct {
	component    string
	verboseCheck func() bool
	writer       io.Writer
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance
func New(component string, verboseCheck func() bool) *Logger {
	return &Logger{
		component:    component,
		verboseCheck: verboseCheck,
		writer:       os.Stderr,
	}
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:    component,
		verboseCheck: l.verboseCheck,
		writer:       l.writer,
	}
}

func (l *Logger) isVerbose() bool {
	return l.verboseCheck != nil && l.verboseCheck()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.log("DEBUG", msg, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.log("INFO", msg, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log("WARN", msg, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log("ERROR", msg, args...)
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.logWithFields("INFO", msg, fields, args...)
	}
}

// log formats and writes log message
func (l *Logger) log(level, msg string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	component := l.component
	if component == "" {
		component = "main"
	}

	formattedMsg := fmt.Sprintf(msg, args...)
	fmt.Fprintf(l.writer, "[%s] %s [%s] %s\n", timestamp, level, component, formattedMsg)
}

// logWithFields formats and writes log message with structured fields
func (l *Logger) logWithFields(level, msg string, fields []Field, args ...interface{}) {
	fieldStrings := make([]string, 0, len(fields))
	for _, field := range fields {
		fieldStrings = append(fieldStrings, fmt.Sprintf("%s=%v", field.Key, field.Value))
	}

	formattedMsg := fmt.Sprintf(msg, args...)
	if len(fieldStrings) > 0 {
		formattedMsg += " [" + strings.Join(fieldStrings, " ") + "]"
	}

	l.log(level, "%s", formattedMsg)
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
