package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. An unknown level falls back to info.
func New(pretty bool, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
		return zerolog.New(output).Level(lvl).With().Timestamp().Caller().Logger()
	}

	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
