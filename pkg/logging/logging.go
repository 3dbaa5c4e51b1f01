package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	COMPONENT = "component"
	ID        = "id"
	USER      = "user"
)

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a zerolog level. Anything else is INFO.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the root logger and installs it as zerolog's global logger.
// Development environments get human-readable console output, everything else JSON on stderr.
func New(level, env string) zerolog.Logger {
	var out io.Writer = os.Stderr
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	logger := zerolog.New(out).With().Timestamp().Logger().Level(ParseLevel(level))
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = logger
	return logger
}

// Component returns a child logger tagged with component={name}
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str(COMPONENT, name).Logger()
}
