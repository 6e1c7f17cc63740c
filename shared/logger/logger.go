package logger

import (
	"io"
	"os"
	"time"

	"floorplan/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("zerolog initialized")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Production logs are JSON lines tagged with the app name
// and default to info; elsewhere the console writer stays and the default is trace.
func SetLogLevel(config *config.Config) {
	production := config.IsProduction()

	if production {
		Configure(os.Stdout, config.App.Name)
	}

	fallback := zerolog.TraceLevel
	if production {
		fallback = zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = fallback
		log.Trace().Str("loglevel", level.String()).Msg("no valid log level configured, using default")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("log level configured")
	}

	zerolog.SetGlobalLevel(level)
}

// Configure swaps the global logger for a structured one writing to out.
func Configure(out io.Writer, service string) {
	ctx := zerolog.New(out).With().Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}

	log.Logger = ctx.Logger()
}
