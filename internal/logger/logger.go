// Package logger is the process-wide log sink for skillgap.
//
// Debug, Info and Section lines appear only with --verbose so a plain run
// prints nothing but the report. Warn and Error always print; the loader
// reports skipped job descriptions and CVs through Warn.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders log lines by severity.
type Level int

// Levels, lowest first. Warn and above ignore the verbose switch.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var prefixes = map[Level]string{
	LevelDebug: "[DEBUG] ",
	LevelInfo:  "[INFO] ",
	LevelWarn:  "[WARN] ",
	LevelError: "[ERROR] ",
}

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose switches debug and info output on or off.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// IsVerbose reports whether debug and info lines are printed.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects every log line. Tests pass a buffer and restore
// os.Stderr in cleanup.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// Enabled reports whether a line at level would be written.
func Enabled(level Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled(level)
}

func enabled(level Level) bool {
	return level >= LevelWarn || verbose
}

func logf(level Level, format string, args []any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled(level) {
		return
	}
	fmt.Fprintf(output, prefixes[level]+format+"\n", args...)
}

// Debug traces pipeline internals such as batch sizes and store queries.
func Debug(format string, args ...any) { logf(LevelDebug, format, args) }

// Info reports pipeline progress.
func Info(format string, args ...any) { logf(LevelInfo, format, args) }

// Warn reports a recoverable problem.
func Warn(format string, args ...any) { logf(LevelWarn, format, args) }

// Error reports a failure the command could not recover from.
func Error(format string, args ...any) { logf(LevelError, format, args) }

// Section opens a named block of verbose output, e.g. one ingestion stage.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
