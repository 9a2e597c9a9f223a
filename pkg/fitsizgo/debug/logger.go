package debug

import (
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

// NewLogger returns a colored human-readable logger for development.
func NewLogger() zerolog.Logger {
	return NewLoggerWithLevel(zerolog.TraceLevel)
}

func NewLoggerWithLevel(level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStderr(),
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
