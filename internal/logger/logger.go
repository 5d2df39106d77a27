package logger

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log flags
const (
	LstdFlags     = log.LstdFlags
	Lmicroseconds = log.Lmicroseconds
)

// Rotation limits for file logging
const (
	fileMaxSizeMB  = 100
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

// Logger wraps the standard log.Logger with additional functionality
type Logger struct {
	*log.Logger
	closer  io.Closer
	verbose bool
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
	}
}

// NewWriter creates a new logger that writes to the provided writer
func NewWriter(w io.Writer) *Logger {
	return &Logger{
		Logger: log.New(w, "", log.LstdFlags),
	}
}

// NewFile creates a logger writing to a size-rotated file.
func NewFile(path string) *Logger {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
	}
	return &Logger{
		Logger: log.New(lj, "", log.LstdFlags|log.Lmicroseconds),
		closer: lj,
	}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return NewWriter(io.Discard)
}

// SetFlags sets the output flags for the logger
func (l *Logger) SetFlags(flag int) {
	l.Logger.SetFlags(flag)
}

// SetVerbose enables Verbosef output.
func (l *Logger) SetVerbose(v bool) {
	l.verbose = v
}

// Verbosef logs only in verbose mode.
func (l *Logger) Verbosef(format string, v ...any) {
	if l.verbose {
		l.Printf(format, v...)
	}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
