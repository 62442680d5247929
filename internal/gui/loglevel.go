package gui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// LogLevel is the emulator log severity threshold stored under Logger/level.
type LogLevel uint

const (
	LevelAlways LogLevel = iota
	LevelFatal
	LevelError
	LevelTodo
	LevelSuccess
	LevelWarning
	LevelNotice
	LevelTrace
)

var levelNames = []string{"always", "fatal", "error", "todo", "success", "warning", "notice", "trace"}

// Valid reports whether l is one of the defined levels. Stored values are
// not clamped, so an out-of-range number read from disk stays as it is.
func (l LogLevel) Valid() bool {
	return uint(l) < uint(len(levelNames))
}

func (l LogLevel) String() string {
	if !l.Valid() {
		return fmt.Sprintf("level(%d)", uint(l))
	}
	return levelNames[l]
}

// Slog maps the level to the closest slog level.
func (l LogLevel) Slog() slog.Level {
	switch {
	case l <= LevelError:
		return slog.LevelError
	case l == LevelTodo, l == LevelWarning:
		return slog.LevelWarn
	case l == LevelSuccess, l == LevelNotice:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// ParseLogLevel accepts a level name or a number. Numbers outside the
// defined range are accepted unchanged.
func ParseLogLevel(s string) (LogLevel, error) {
	s = strings.TrimSpace(s)
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return LogLevel(i), nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown log level %q (want one of %s or a number)", s, strings.Join(levelNames, ", "))
	}
	return LogLevel(n), nil
}
