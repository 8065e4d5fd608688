package logsvc

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/taskademic/core"
)

// NewZerolog builds the process logger: JSON lines on stdout, or a console writer when debugging.
func NewZerolog(conf *core.Config) zerolog.Logger {
	return newZerolog(os.Stdout, conf)
}

func newZerolog(out io.Writer, conf *core.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", conf.AppName).
		Str("env", conf.Env).
		Logger()

	if conf.Debug && !conf.TestMode {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	return logger
}
