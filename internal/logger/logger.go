package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// ParseLevel maps a config or environment value onto a zerolog level.
// Unknown values fall back to info.
func ParseLevel(value string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a JSON logger on stdout when useJSON is set and a console
// logger otherwise.
func New(level zerolog.Level, useJSON bool) Logger {
	if useJSON {
		return NewZerolog(os.Stdout, level)
	}
	return NewConsoleLogger(level)
}

// NewWriterLogger is used where output has to be captured.
func NewWriterLogger(w io.Writer, level zerolog.Level) Logger {
	return NewZerolog(w, level)
}

type NoOpLogger struct{}

func (NoOpLogger) Debug(component, message string, fields map[string]interface{})   {}
func (NoOpLogger) Info(component, message string, fields map[string]interface{})    {}
func (NoOpLogger) Warning(component, message string, fields map[string]interface{}) {}
func (NoOpLogger) Error(component string, err error, fields map[string]interface{}) {}
