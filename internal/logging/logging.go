// Copyright (c) 2024 Neomantra Corp

// Package logging configures the process-wide zerolog logger from the
// config options §6.4 names (log_level, log_destination).
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nimblemarkets/tickvault/internal/config"
)

// Init configures zerolog's global logger per cfg and returns it. Called
// once at process start; every package logs through zerolog/log or a
// logger handed down from this call, never through a second configuration.
func Init(cfg config.Config) zerolog.Logger {
	zerolog.SetGlobalLevel(levelFor(cfg.LogLevel))

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	if cfg.LogDestination == config.LogDestinationGCP || cfg.LogDestination == config.LogDestinationBoth {
		// GCP log shipping itself is an external collaborator concern
		// outside this system's scope; "both"/"gcp" still get a
		// structured JSON stream on stderr so the option has an effect.
		if cfg.LogDestination == config.LogDestinationBoth {
			w = zerolog.MultiLevelWriter(w, os.Stderr)
		} else {
			w = os.Stderr
		}
	}

	logger := zerolog.New(w).With().Timestamp().Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger
}

func levelFor(l config.LogLevel) zerolog.Level {
	switch l {
	case config.LogLevelDebug:
		return zerolog.DebugLevel
	case config.LogLevelInfo:
		return zerolog.InfoLevel
	case config.LogLevelWarning:
		return zerolog.WarnLevel
	case config.LogLevelError:
		return zerolog.ErrorLevel
	case config.LogLevelCritical:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
