package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// Level orders log severities; messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides structured, leveled logging throughout the application.
type Logger struct {
	level Level
	color bool
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
}

// NewLoggerWithLevel creates a Logger writing to stdout/stderr. Level tags are
// colored only when stdout is a terminal.
func NewLoggerWithLevel(level Level) *Logger {
	fd := os.Stdout.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return newLogger(level, color, os.Stdout, os.Stderr)
}

// NewWriterLogger sends every level to w without colors. Used by tests.
func NewWriterLogger(level Level, w io.Writer) *Logger {
	return newLogger(level, false, w, w)
}

func newLogger(level Level, color bool, out, errOut io.Writer) *Logger {
	flags := 0
	return &Logger{
		level: level,
		color: color,
		info:  log.New(out, "", flags),
		warn:  log.New(out, "", flags),
		err:   log.New(errOut, "", flags),
		debug: log.New(out, "", flags),
	}
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) tag(name, ansi string) string {
	if !l.color {
		return name
	}
	return "\033[" + ansi + "m" + name + "\033[0m"
}

func (l *Logger) Info(format string, args ...any) {
	if l.level > LevelInfo {
		return
	}
	l.info.Printf(fmt.Sprintf("[%s] %s  %s\n", l.timestamp(), l.tag("INFO", "32"), format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	if l.level > LevelWarn {
		return
	}
	l.warn.Printf(fmt.Sprintf("[%s] %s  %s\n", l.timestamp(), l.tag("WARN", "33"), format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(fmt.Sprintf("[%s] %s %s\n", l.timestamp(), l.tag("ERROR", "31"), format), args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.level > LevelDebug {
		return
	}
	l.debug.Printf(fmt.Sprintf("[%s] %s %s\n", l.timestamp(), l.tag("DEBUG", "36"), format), args...)
}
