package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger.
// Development gets a human-readable console writer, everything else JSON on stdout.
func Init(environment string) {
	Setup(environment, os.Stdout)
}

// Setup is Init with an explicit destination
func Setup(environment string, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if environment == "development" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	zerolog.SetGlobalLevel(level)

	zlog.Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", "metanoia").
		Str("env", environment).
		Logger()
}
