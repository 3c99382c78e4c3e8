package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger создаёт настроенный zerolog. В dev пишет в консоль в читаемом виде.
func NewLogger(appEnv string) zerolog.Logger {
	return newLogger(appEnv, os.Stdout)
}

func newLogger(appEnv string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "dev" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(out).With().Timestamp().Str("service", "event-ping-bot").Logger().Level(level)
}
