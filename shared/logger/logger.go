package logger

import (
	"io"
	"os"
	"time"

	"studio/config"
	"studio/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger starts with a human readable console writer at trace level.
// SetLogLevel narrows it once the configuration is known.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = newLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func newLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Logger()
}

// SetLogLevel applies SERVER_LOG_LEVEL, defaulting to info. Outside development
// the console writer is swapped for JSON lines.
func SetLogLevel(config *config.Config) {
	if config.Server.Env != "" && config.Server.Env != constant.ServerEnvDevelopment {
		log.Logger = newLogger(os.Stdout)
	}

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Debug().Str("level", level.String()).Str("env", config.Server.Env).Msg("Log level set")
}

// ErrorWithStack logs err with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Component tags the global logger for workers that run outside a request.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
