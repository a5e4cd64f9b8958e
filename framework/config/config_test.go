package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nutrition/framework/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "Nutrition", cfg.App.Name)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Activity.Timeout)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9100\nACTIVITY_REFRESH=1m\nDB_PATH=:memory:\n"), 0o600))
	for _, k := range []string{"APP_PORT", "ACTIVITY_REFRESH", "DB_PATH"} {
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	cfg := config.Load(path)
	assert.Equal(t, "9100", cfg.App.Port)
	assert.Equal(t, time.Minute, cfg.Activity.Refresh)
	assert.Equal(t, ":memory:", cfg.DB.Path)
}

func TestGetDuration_BadValueFallsBack(t *testing.T) {
	t.Setenv("ACTIVITY_TIMEOUT", "soon")
	assert.Equal(t, time.Second, config.GetDuration("ACTIVITY_TIMEOUT", time.Second))
}

func TestGetInt(t *testing.T) {
	t.Setenv("WORKERS", "4")
	assert.Equal(t, 4, config.GetInt("WORKERS", 1))
	assert.Equal(t, 1, config.GetInt("WORKERS_MISSING", 1))
}
