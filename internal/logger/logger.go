package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05 MST"

// NewLogger создаёт консольный логгер; неизвестный уровень даёт info
func NewLogger(level string) *zerolog.Logger {
	l := newLogger(os.Stdout, level)
	return &l
}

func newLogger(out io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat,
	}

	output.FormatLevel = func(i interface{}) string {
		level, _ := i.(string)
		level = strings.ToUpper(level)
		return fmt.Sprintf("%s| %-6s|\x1b[0m", levelColor(level), level)
	}

	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("\x1b[1m%s\x1b[0m", i)
	}

	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("\x1b[36m%s:\x1b[0m", i)
	}

	output.FormatFieldValue = func(i interface{}) string {
		return fmt.Sprintf("\x1b[32m%s\x1b[0m", i)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldInteger = true

	return zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func levelColor(level string) string {
	switch level {
	case "TRACE":
		return "\x1b[36m" // голубой
	case "DEBUG":
		return "\x1b[32m" // зелёный
	case "INFO":
		return "\x1b[34m" // синий
	case "WARN":
		return "\x1b[33m" // жёлтый
	case "ERROR":
		return "\x1b[31m" // красный
	case "FATAL":
		return "\x1b[31;1m" // ярко-красный
	case "PANIC":
		return "\x1b[35m" // пурпурный
	default:
		return "\x1b[0m"
	}
}
