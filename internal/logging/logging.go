// Package logging provides the solver's structured-ish text logger: a
// thin level filter over the standard library's log.Logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config/flag string to a Level, defaulting to Info for
// anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger filters log.Logger output by level, tagging every line with a
// component name.
type Logger struct {
	component string
	level     Level
	out       *log.Logger
}

// New builds a Logger writing to w, tagged with component, filtered at
// level.
func New(w io.Writer, component string, level Level) *Logger {
	return &Logger{component: component, level: level, out: log.New(w, "", 0)}
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil || level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.out.Printf("%s %s %s: %s", time.Now().Format(time.RFC3339), level, l.component, msg)
}

func (l *Logger) Debugf(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, format, args...) }

// With returns a Logger for a sub-component, sharing the same level and
// writer.
func (l *Logger) With(component string) *Logger {
	return &Logger{component: l.component + "." + component, level: l.level, out: l.out}
}
