package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds the process-wide console logger. Per-request debug output
// from the API client is only emitted when debug is set.
func NewLogger(debug bool) *zerolog.Logger {
	out := zerolog.NewConsoleWriter()
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(out).With().Timestamp().Logger().Level(level)
	log.Logger = logger
	return &logger
}
