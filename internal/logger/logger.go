// Package logger wraps the global zerolog logger used across the service.
package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Initialize sets up the global logger with the specified settings
func Initialize(debug bool) {
	// Pretty print logs in development
	if debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = log.With().Caller().Logger()
}

// Get returns the global logger instance
func Get() *zerolog.Logger {
	return &log.Logger
}

// Ctx returns the request-scoped logger stored in ctx, or the global
// logger when the context carries none. A disabled logger in ctx is returned as is.
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

func init() {
	// zerolog.Ctx falls back to this when a context has no logger
	zerolog.DefaultContextLogger = &log.Logger
}
