package fireauth

import (
	"io"
	"log"
	"os"
	"sync"
)

// Logger provides leveled logging for the client. Debug output is useful
// when diagnosing endpoint behavior; it never includes token material.
type Logger struct {
	logError *log.Logger
	logInfo  *log.Logger
	logDebug *log.Logger
}

// NewLogger creates a logger for the given level. Recognized levels are
// "debug", "info" and "error"; anything else logs errors only.
func NewLogger(level string) *Logger {
	logError := log.New(io.Discard, "ERROR: fireauth: ", log.Ldate|log.Ltime)
	logInfo := log.New(io.Discard, "INFO: fireauth: ", log.Ldate|log.Ltime)
	logDebug := log.New(io.Discard, "DEBUG: fireauth: ", log.Ldate|log.Ltime)

	if level == "debug" || level == "info" || level == "error" {
		logError.SetOutput(os.Stderr)
	}
	if level == "debug" || level == "info" {
		logInfo.SetOutput(os.Stdout)
	}
	if level == "debug" {
		logDebug.SetOutput(os.Stdout)
	}

	return &Logger{
		logError: logError,
		logInfo:  logInfo,
		logDebug: logDebug,
	}
}

var (
	// singletonNoOpLogger is the global instance of the no-op logger
	singletonNoOpLogger *Logger
	// noOpLoggerOnce ensures the singleton is created only once
	noOpLoggerOnce sync.Once
)

// NewNoOpLogger returns a shared logger instance that discards everything.
// Reusing the same instance avoids allocating three discard loggers per
// silent client.
func NewNoOpLogger() *Logger {
	noOpLoggerOnce.Do(func() {
		singletonNoOpLogger = &Logger{
			logError: log.New(io.Discard, "", 0),
			logInfo:  log.New(io.Discard, "", 0),
			logDebug: log.New(io.Discard, "", 0),
		}
	})
	return singletonNoOpLogger
}

func (l *Logger) Error(args ...interface{}) {
	l.logError.Println(args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logError.Printf(format, args...)
}

func (l *Logger) Info(args ...interface{}) {
	l.logInfo.Println(args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logInfo.Printf(format, args...)
}

func (l *Logger) Debug(args ...interface{}) {
	l.logDebug.Println(args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logDebug.Printf(format, args...)
}
