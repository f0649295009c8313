package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger = NewDefault()
)

func init() {
	// LOG_LEVEL and LOG_FORMAT apply before configuration is loaded
	if err := Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")); err != nil {
		globalLogger.Warn("ignoring logger environment", map[string]interface{}{"error": err.Error()})
	}
}

// ParseLevel parses a level name, case insensitive
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", level)
	}
}

// ParseFormat parses "json" or "text", case insensitive
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, nil
	case "text":
		return TextFormat, nil
	default:
		return TextFormat, fmt.Errorf("unknown log format %q", format)
	}
}

// Configure sets the level and format of the global logger. Empty values leave
// the current setting unchanged.
func Configure(level, format string) error {
	l := GetGlobalLogger()
	if level != "" {
		lv, err := ParseLevel(level)
		if err != nil {
			return err
		}
		l.SetLevel(lv)
	}
	if format != "" {
		f, err := ParseFormat(format)
		if err != nil {
			return err
		}
		l.SetFormat(f)
	}
	return nil
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger replaces the global logger
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// Component returns a child of the global logger tagged with name
func Component(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...map[string]interface{}) {
	GetGlobalLogger().log(DEBUG, message, fields, nil)
}

// Info logs an info message using the global logger
func Info(message string, fields ...map[string]interface{}) {
	GetGlobalLogger().log(INFO, message, fields, nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...map[string]interface{}) {
	GetGlobalLogger().log(WARN, message, fields, nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...map[string]interface{}) {
	GetGlobalLogger().log(ERROR, message, fields, err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...map[string]interface{}) {
	GetGlobalLogger().log(FATAL, message, fields, err)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	GetGlobalLogger().log(INFO, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...interface{}) {
	GetGlobalLogger().log(WARN, fmt.Sprintf(format, args...), nil, nil)
}
