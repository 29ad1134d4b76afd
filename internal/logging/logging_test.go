// Copyright (c) 2024 Neomantra Corp

package logging_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/nimblemarkets/tickvault/internal/config"
	"github.com/nimblemarkets/tickvault/internal/logging"
)

func TestInit_SetsGlobalLevelFromConfig(t *testing.T) {
	cases := []struct {
		level config.LogLevel
		want  zerolog.Level
	}{
		{config.LogLevelDebug, zerolog.DebugLevel},
		{config.LogLevelInfo, zerolog.InfoLevel},
		{config.LogLevelWarning, zerolog.WarnLevel},
		{config.LogLevelError, zerolog.ErrorLevel},
		{config.LogLevelCritical, zerolog.FatalLevel},
	}
	for _, c := range cases {
		cfg := config.Defaults()
		cfg.LogLevel = c.level
		logging.Init(cfg)
		if got := zerolog.GlobalLevel(); got != c.want {
			t.Errorf("LogLevel %q: global level = %v, want %v", c.level, got, c.want)
		}
	}
}
