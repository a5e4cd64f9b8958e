// Package logging builds the application's zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the level and format of the logger.
type Config struct {
	Level  string    // trace | debug | info | warn | error; default info
	Format string    // console | json; default console
	Output io.Writer // default os.Stderr
}

// New builds a logger from cfg. An unknown level falls back to info.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: out != os.Stderr}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// VerbosityLevel maps a -v count onto a level name: 0 warn, 1 info,
// 2 debug, 3+ trace.
func VerbosityLevel(verbosity int) string {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel.String()
	case 1:
		return zerolog.InfoLevel.String()
	case 2:
		return zerolog.DebugLevel.String()
	default:
		return zerolog.TraceLevel.String()
	}
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
