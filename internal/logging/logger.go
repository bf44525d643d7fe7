package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Fields map[string]interface{}

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Configure replaces the output and minimum level. Unknown levels fall back
// to info.
func Configure(w io.Writer, level string) {
	logger = zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

// SetLevel changes the minimum level, keeping the current output.
func SetLevel(level string) {
	logger = logger.Level(parseLevel(level))
}

func emit(ev *zerolog.Event, msg string, err error, fields Fields) {
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Fields(map[string]interface{}(fields))
	}
	ev.Msg(msg)
}

// Debug logs a diagnostic message with optional fields.
func Debug(msg string, fields Fields) {
	emit(logger.Debug(), msg, nil, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	emit(logger.Info(), msg, nil, fields)
}

// Warn logs a recoverable problem.
func Warn(msg string, err error, fields Fields) {
	emit(logger.Warn(), msg, err, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	emit(logger.Error(), msg, err, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	emit(logger.WithLevel(zerolog.FatalLevel), msg, err, fields)
	os.Exit(1)
}
