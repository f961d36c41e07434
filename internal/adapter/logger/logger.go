package logger

import (
	"os"

	"github.com/rs/zerolog"
)

type LoggerAdapter struct {
	logger zerolog.Logger
}

// NewLoggerAdapter returns a zerolog-backed logger. Production writes JSON
// to stdout, everything else gets the human console writer.
func NewLoggerAdapter(env string) *LoggerAdapter {
	var logger zerolog.Logger
	if env == "production" {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return &LoggerAdapter{logger: logger}
}

func (l *LoggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *LoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *LoggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
