package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var pid = os.Getpid()

// Logger is a thin zerolog wrapper shared by all packages.
type Logger struct {
	logger *zerolog.Logger
}

func level(isDebug bool) zerolog.Level {
	if isDebug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// New makes a JSON logger writing to stderr.
func New(isDebug bool) *Logger {
	zerolog.SetGlobalLevel(level(isDebug))
	l := zerolog.New(os.Stderr).With().Timestamp().Int("pid", pid).Logger()
	return &Logger{logger: &l}
}

// NewConsole makes a human-readable logger for terminals.
// The tag is printed in front of every message.
func NewConsole(isDebug bool, tag string, noColor bool) *Logger {
	zerolog.SetGlobalLevel(level(isDebug))
	zerolog.TimeFieldFormat = time.RFC3339Nano
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.0000", NoColor: noColor,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			"pid",
			zerolog.LevelFieldName,
			"s",
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{"s", "pid"},
	}
	l := zerolog.New(output).With().
		Str("pid", fmt.Sprintf("%4x", pid)).
		Str("s", tag).
		Timestamp().Logger()
	return &Logger{logger: &l}
}

// NewWriter logs into w, for tests.
func NewWriter(w io.Writer) *Logger {
	l := zerolog.New(w)
	return &Logger{logger: &l}
}

func Default() *Logger { return &Logger{logger: &log.Logger} }

// Nop drops everything.
func Nop() *Logger {
	l := zerolog.Nop()
	return &Logger{logger: &l}
}

// With creates a child logger context.
func (l *Logger) With() zerolog.Context { return l.logger.With() }

// Extend makes a logger from a context built with With.
func (l *Logger) Extend(ctx zerolog.Context) *Logger {
	logger := ctx.Logger()
	return &Logger{logger: &logger}
}

// Sampled keeps one message out of every n.
func (l *Logger) Sampled(n uint32) *Logger {
	logger := l.logger.Sample(&zerolog.BasicSampler{N: n})
	return &Logger{logger: &logger}
}

func (l *Logger) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.logger.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.logger.Error() }

// Fatal calls os.Exit(1) after the message is sent.
func (l *Logger) Fatal() *zerolog.Event { return l.logger.Fatal() }

func (l *Logger) Printf(format string, v ...any) { l.logger.Printf(format, v...) }
