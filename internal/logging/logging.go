// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger: human-readable console output in
// development, JSON lines in production. Unknown levels fall back to info.
func Setup(environment, level string) {
	SetupWriter(os.Stdout, environment, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(out io.Writer, environment, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if environment != "production" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	// log.Ctx falls back to this when a context carries no logger.
	zerolog.DefaultContextLogger = &log.Logger
}
