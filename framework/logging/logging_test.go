package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nutrition/framework/logging"
)

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := logging.Component(logging.New(logging.Config{Level: "info", Format: "json", Output: &buf}), "gate")

	l.Debug().Msg("hidden")
	l.Info().Str("form", "register").Msg("submit")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "gate", entry["component"])
	assert.Equal(t, "register", entry["form"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	l := logging.New(logging.Config{Level: "loud", Format: "json", Output: &bytes.Buffer{}})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.Config{Level: "warn", Output: &buf})
	l.Warn().Msg("careful")
	assert.Contains(t, buf.String(), "careful")
	assert.Contains(t, buf.String(), "WRN")
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, "warn", logging.VerbosityLevel(0))
	assert.Equal(t, "info", logging.VerbosityLevel(1))
	assert.Equal(t, "debug", logging.VerbosityLevel(2))
	assert.Equal(t, "trace", logging.VerbosityLevel(5))
}
