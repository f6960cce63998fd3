// Package logger provides leveled logging for the companion process.
// Every subsystem receives a *Logger at construction; there is no
// package-level default.
package logger

import (
	"fmt"
	"log"
	"os"
)

// Logger writes leveled, component-prefixed log lines.
type Logger struct {
	component   string
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New creates a logger for the given component name.
func New(component string) *Logger {
	return &Logger{
		component:   component,
		infoLogger:  log.New(os.Stdout, "[INFO] ", log.Ldate|log.Ltime),
		warnLogger:  log.New(os.Stdout, "[WARN] ", log.Ldate|log.Ltime),
		errorLogger: log.New(os.Stderr, "[ERROR] ", log.Ldate|log.Ltime),
	}
}

// With returns a logger scoped to a sub-component, sharing the underlying
// writers.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		component:   l.component + "/" + component,
		infoLogger:  l.infoLogger,
		warnLogger:  l.warnLogger,
		errorLogger: l.errorLogger,
	}
}

// Info logs informational messages.
func (l *Logger) Info(format string, args ...any) {
	l.infoLogger.Printf("[%s] %s", l.component, fmt.Sprintf(format, args...))
}

// Warn logs warning messages.
func (l *Logger) Warn(format string, args ...any) {
	l.warnLogger.Printf("[%s] %s", l.component, fmt.Sprintf(format, args...))
}

// Error logs error messages.
func (l *Logger) Error(format string, args ...any) {
	l.errorLogger.Printf("[%s] %s", l.component, fmt.Sprintf(format, args...))
}

// Event logs a structured one-liner for a processed domain event.
func (l *Logger) Event(eventType string, details string) {
	l.infoLogger.Printf("[%s] [EVENT:%s] %s", l.component, eventType, details)
}
