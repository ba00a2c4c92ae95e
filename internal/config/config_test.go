package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("cfgtest", "auth")
	require.NoError(t, err)

	assert.Equal(t, "auth", cfg.ServiceName)
	assert.False(t, cfg.Prod)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 30*time.Second, cfg.ServerShutdownTimeout)
	assert.Equal(t, "metric", cfg.Weather.APIUnits)
	assert.Equal(t, 5*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, "Dhaka", cfg.Weather.Location)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CFGTEST_SERVICE_NAME", "renamed")
	t.Setenv("CFGTEST_PROD", "true")
	t.Setenv("CFGTEST_LOG_LEVEL", "debug")
	t.Setenv("CFGTEST_WEATHER_API_URL", "http://mock-api.com")
	t.Setenv("CFGTEST_WEATHER_API_KEY", "fake-api-key")
	t.Setenv("CFGTEST_WEATHER_TIMEOUT", "2s")

	cfg, err := Load("cfgtest", "auth")
	require.NoError(t, err)

	assert.Equal(t, "renamed", cfg.ServiceName)
	assert.True(t, cfg.Prod)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "http://mock-api.com", cfg.Weather.APIURL)
	assert.Equal(t, "fake-api-key", cfg.Weather.APIKey)
	assert.Equal(t, 2*time.Second, cfg.Weather.Timeout)
}
