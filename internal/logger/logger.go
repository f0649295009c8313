package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Level is the severity of a log entry
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// String returns the upper-case level name
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Format selects how entries are encoded
type Format int

const (
	JSONFormat Format = iota
	TextFormat
)

// Fields are structured key/value pairs attached to an entry
type Fields map[string]interface{}

// Entry is one encoded log record
type Entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Component string `json:"component,omitempty"`
	Caller    string `json:"caller,omitempty"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes leveled, structured entries. Loggers derived with With or
// WithComponent share the parent's output and lock.
type Logger struct {
	mu        *sync.Mutex
	level     Level
	format    Format
	output    io.Writer
	component string
	fields    Fields
	exit      func(int)
}

// Config holds logger configuration
type Config struct {
	Level     Level
	Format    Format
	Output    io.Writer // Defaults to stdout
	Component string
}

// New creates a logger
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Logger{
		mu:        &sync.Mutex{},
		level:     config.Level,
		format:    config.Format,
		output:    config.Output,
		component: config.Component,
		exit:      os.Exit,
	}
}

// NewDefault creates an INFO level text logger on stdout
func NewDefault() *Logger {
	return New(Config{Level: INFO, Format: TextFormat})
}

func (l *Logger) clone() *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := *l
	c.fields = lo.Assign(Fields{}, l.fields)
	return &c
}

// WithComponent returns a logger that tags entries with component
func (l *Logger) WithComponent(component string) *Logger {
	c := l.clone()
	c.component = component
	return c
}

// With returns a logger that adds fields to every entry. Fields passed to an
// individual call override these on key collision.
func (l *Logger) With(fields Fields) *Logger {
	c := l.clone()
	c.fields = lo.Assign(c.fields, fields)
	return c
}

// SetLevel sets the minimum level written
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetFormat sets the encoding
func (l *Logger) SetFormat(format Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
}

// Enabled reports whether entries at level are written
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *Logger) log(level Level, message string, fields []map[string]interface{}, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		Caller:    caller(3),
	}
	merged := lo.Assign(Fields{}, l.fields)
	for _, f := range fields {
		merged = lo.Assign(merged, Fields(f))
	}
	if len(merged) > 0 {
		entry.Fields = merged
	}
	if err != nil {
		entry.Error = err.Error()
	}

	var line []byte
	if l.format == JSONFormat {
		b, mErr := json.Marshal(entry)
		if mErr != nil {
			b = []byte(fmt.Sprintf(`{"level":%q,"message":%q,"error":%q}`, entry.Level, entry.Message, mErr.Error()))
		}
		line = append(b, '\n')
	} else {
		line = []byte(formatText(entry))
	}
	l.output.Write(line)

	if level == FATAL {
		l.exit(1)
	}
}

// caller returns "file.go:line" for the frame skip levels above log
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// formatText renders an entry on one line with fields in key order
func formatText(entry Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", entry.Timestamp, entry.Level)
	if entry.Component != "" {
		fmt.Fprintf(&b, " [%s]", entry.Component)
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := lo.Keys(entry.Fields)
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}
	if entry.Error != "" {
		fmt.Fprintf(&b, " error=%q", entry.Error)
	}
	if entry.Caller != "" {
		fmt.Fprintf(&b, " (%s)", entry.Caller)
	}
	b.WriteByte('\n')
	return b.String()
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.log(DEBUG, message, fields, nil)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.log(INFO, message, fields, nil)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.log(WARN, message, fields, nil)
}

// Error logs an error message
func (l *Logger) Error(message string, err error, fields ...map[string]interface{}) {
	l.log(ERROR, message, fields, err)
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(message string, err error, fields ...map[string]interface{}) {
	l.log(FATAL, message, fields, err)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DEBUG, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, args...), nil, nil)
}

// Writer returns an io.Writer that logs every line written to it at level.
// It is used to route access logs through the structured logger.
func (l *Logger) Writer(level Level) io.Writer {
	return &lineWriter{logger: l, level: level}
}

type lineWriter struct {
	logger *Logger
	level  Level
}

func (w *lineWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.logger.log(w.level, string(line), nil, nil)
	}
	return len(p), nil
}
