package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Init() zerolog.Logger {
	return log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
