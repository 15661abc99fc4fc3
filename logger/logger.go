package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	lipgloss "github.com/charmbracelet/lipgloss"
)

type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	level        = LevelWarn
	colorEnabled = true
	outWriter    io.Writer // nil = os.Stdout
	errWriter    io.Writer // nil = os.Stderr
	exitFunc     = os.Exit
)

var (
	colorSubtle lipgloss.TerminalColor = lipgloss.Color("#8b949e")
	colorCyan   lipgloss.TerminalColor = lipgloss.Color("#56d7c2")
	colorGreen  lipgloss.TerminalColor = lipgloss.Color("#3fb950")
	colorYellow lipgloss.TerminalColor = lipgloss.Color("#d29922")
	colorRed    lipgloss.TerminalColor = lipgloss.Color("#f85149")
)

var (
	styleTrace = lipgloss.NewStyle().Foreground(colorSubtle)
	styleDebug = lipgloss.NewStyle().Foreground(colorCyan)
	styleInfo  = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn  = lipgloss.NewStyle().Foreground(colorYellow)
	styleError = lipgloss.NewStyle().Foreground(colorRed)
	styleFatal = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// SetOutput redirects every level to w. Passing nil restores the
// stdout/stderr split.
func SetOutput(w io.Writer) {
	outWriter = w
	errWriter = w
}

func SetLevel(l Level) { level = l }
func SetColor(f bool)  { colorEnabled = f }
func GetLevel() Level  { return level }

func ParseLevel(levelStr string) Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "none":
		return LevelNone
	case "error", "err":
		return LevelError
	case "", "warn", "warning":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug", "dbg":
		return LevelDebug
	case "trace", "trc":
		return LevelTrace
	default:
		return LevelWarn
	}
}

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

func stdOut() io.Writer {
	if outWriter != nil {
		return outWriter
	}
	return os.Stdout
}

func stdErr() io.Writer {
	if errWriter != nil {
		return errWriter
	}
	return os.Stderr
}

// useColor is true only when color is enabled AND output has not been
// redirected. A custom writer receives plain text.
func useColor() bool {
	return colorEnabled && outWriter == nil
}

func write(w io.Writer, style lipgloss.Style, tag, format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	if useColor() {
		fmt.Fprintf(w, "%s %s\n", style.Render(tag), msg)
	} else {
		fmt.Fprintf(w, "%s %s\n", tag, msg)
	}
}

func Trace(format string, v ...any) {
	if level >= LevelTrace {
		write(stdOut(), styleTrace, "[TRACE]", format, v...)
	}
}

func Debug(format string, v ...any) {
	if level >= LevelDebug {
		write(stdOut(), styleDebug, "[DEBUG]", format, v...)
	}
}

func Info(format string, v ...any) {
	if level >= LevelInfo {
		write(stdOut(), styleInfo, "[INFO]", format, v...)
	}
}

func Warn(format string, v ...any) {
	if level >= LevelWarn {
		write(stdErr(), styleWarn, "[WARN]", format, v...)
	}
}

func Error(format string, v ...any) {
	if level >= LevelError {
		write(stdErr(), styleError, "[ERROR]", format, v...)
	}
}

// Fatal always prints to stderr and exits, regardless of the current log level.
func Fatal(format string, v ...any) {
	write(stdErr(), styleFatal, "[FATAL]", format, v...)
	exitFunc(1)
}
