package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/0xalexb/pokedex/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var logEntry map[string]any

	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "output should be valid JSON")

	return logEntry
}

func TestNewLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "INFO"}, &buf)

	logger.Info("upstream fetch failed", slog.String("url", "https://pokeapi.co/api/v2/pokemon/1"))

	logEntry := decode(t, &buf)
	assert.Equal(t, "upstream fetch failed", logEntry["msg"])
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/1", logEntry["url"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, logging.ServiceName, logEntry["service"])
	assert.NotContains(t, logEntry, slog.SourceKey)
}

func TestNewLogger_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Format: "TEXT"}, &buf)

	logger.Warn("serving stale entry", slog.String("key", "pokeapi:pokemon/1"))

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `msg="serving stale entry"`)
	assert.Contains(t, buf.String(), "key=pokeapi:pokemon/1")
	assert.Contains(t, buf.String(), "service=pokedex")
}

func TestNewLogger_Source(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Source: true}, &buf)

	logger.Info("with source")

	assert.Contains(t, decode(t, &buf), slog.SourceKey)
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		configLevel   string
		logLevel      slog.Level
		expectedLevel string
	}{
		{name: "debug level logs debug", configLevel: "DEBUG", logLevel: slog.LevelDebug, expectedLevel: "DEBUG"},
		{name: "warning alias logs warn", configLevel: "WARNING", logLevel: slog.LevelWarn, expectedLevel: "WARN"},
		{name: "error level logs error", configLevel: "ERROR", logLevel: slog.LevelError, expectedLevel: "ERROR"},
		{name: "info level drops debug", configLevel: "INFO", logLevel: slog.LevelDebug},
		{name: "warn level drops info", configLevel: "warn", logLevel: slog.LevelInfo},
		{name: "lowercase level is accepted", configLevel: "debug", logLevel: slog.LevelDebug, expectedLevel: "DEBUG"},
		{name: "empty level defaults to info", configLevel: "", logLevel: slog.LevelInfo, expectedLevel: "INFO"},
		{name: "invalid level defaults to info", configLevel: "LOUD", logLevel: slog.LevelDebug},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := logging.NewLogger(logging.LoggerConfig{Level: testCase.configLevel}, &buf)

			logger.Log(context.Background(), testCase.logLevel, "test message")

			if testCase.expectedLevel == "" {
				require.Empty(t, buf.String(), "log should not be written")

				return
			}

			assert.Equal(t, testCase.expectedLevel, decode(t, &buf)["level"])
		})
	}
}

func TestLoggerConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  logging.LoggerConfig
		wantErr string
	}{
		{name: "zero value", config: logging.LoggerConfig{}},
		{name: "known values", config: logging.LoggerConfig{Level: "warning", Format: "Text"}},
		{name: "unknown level", config: logging.LoggerConfig{Level: "trace"}, wantErr: `unknown log level "trace"`},
		{name: "unknown format", config: logging.LoggerConfig{Format: "logfmt"}, wantErr: `unknown log format "logfmt"`},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			err := testInfo.config.Validate()
			if testInfo.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.EqualError(t, err, testInfo.wantErr)
		})
	}
}
