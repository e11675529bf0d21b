package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"studio/config"
	"studio/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	original, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})

	buf := &bytes.Buffer{}
	log.Logger = zerolog.New(buf)

	return buf
}

func TestInitLogger(t *testing.T) {
	captureLogs(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"unset defaults to info", "", zerolog.InfoLevel},
		{"unknown defaults to info", "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)

			cfg := &config.Config{}
			cfg.Server.Env = "development"
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	buf := captureLogs(t)

	logger.ErrorWithStack(errors.New("slot grid broken"))

	assert.Contains(t, buf.String(), "slot grid broken")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestComponent(t *testing.T) {
	buf := captureLogs(t)

	component := logger.Component("scheduler")
	component.Info().Msg("tick")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "scheduler", entry["component"])
	assert.Equal(t, "tick", entry["message"])
}
