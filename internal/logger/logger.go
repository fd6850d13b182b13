// Package logger writes leveled diagnostics to the console.
//
// Every line is prefixed with a [HH:MM:SS] timestamp and the level name.
// Level names are coloured when the destination is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level is a minimum severity filter.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
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

// ParseLevel converts trace, debug, info, warn or error (any case) into a
// Level. Unknown values fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
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

var levelColors = map[Level]*color.Color{
	LevelTrace: color.New(color.FgHiBlack),
	LevelDebug: color.New(color.FgCyan),
	LevelInfo:  color.New(color.FgBlue),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed, color.Bold),
}

// ConsoleLogger is safe for concurrent use.
type ConsoleLogger struct {
	mu          sync.Mutex
	writer      io.Writer
	level       Level
	colorOutput bool
	now         func() time.Time
}

// New creates a logger writing messages at or above level to w. A nil writer
// discards everything.
func New(w io.Writer, level Level) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       level,
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

// Discard returns a logger that never writes.
func Discard() *ConsoleLogger {
	return New(nil, LevelError)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor forces colour output on or off.
func (l *ConsoleLogger) SetColor(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorOutput = enabled
}

// Level returns the minimum level written.
func (l *ConsoleLogger) Level() Level {
	return l.level
}

// Enabled reports whether messages at level would be written.
func (l *ConsoleLogger) Enabled(level Level) bool {
	return l.writer != nil && level >= l.level
}

func (l *ConsoleLogger) Tracef(format string, args ...any) { l.logf(LevelTrace, format, args...) }
func (l *ConsoleLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *ConsoleLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *ConsoleLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *ConsoleLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *ConsoleLogger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	message := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	name := level.String()
	if l.colorOutput {
		name = levelColors[level].Sprint(name)
	}
	_, _ = fmt.Fprintf(l.writer, "[%s] [%s] %s\n", l.now().Format("15:04:05"), name, message)
}
