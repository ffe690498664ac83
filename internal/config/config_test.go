package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, c.TickInterval)
	assert.False(t, c.Debug)
	assert.Nil(t, c.Coordinates())
	assert.Equal(t, 0.4, c.Ambient.IdleProbability)
	assert.Equal(t, 0.3, c.Ambient.WaitingProbability)
	assert.Equal(t, 0.2, c.Ambient.LocationProbability)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("NUDGE_TICK_INTERVAL", "2s")
	t.Setenv("NUDGE_LAT", "48.85")
	t.Setenv("NUDGE_LON", "2.35")
	t.Setenv("NUDGE_DEBUG", "true")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, c.TickInterval)
	assert.True(t, c.Debug)
	require.NotNil(t, c.Coordinates())
	assert.Equal(t, 48.85, c.Coordinates().Lat)
	assert.Equal(t, 2.35, c.Coordinates().Lon)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NUDGE_REDIS_URL=redis://localhost:6379/2\n"), 0o644))
	t.Setenv("NUDGE_REDIS_URL", "")
	os.Unsetenv("NUDGE_REDIS_URL")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/2", c.RedisURL)
}

func TestLoad_MissingDotenvIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.TickInterval = 0 }},
		{"probability above one", func(c *Config) { c.Ambient.IdleProbability = 1.5 }},
		{"negative probability", func(c *Config) { c.Ambient.LocationProbability = -0.1 }},
		{"lat without lon", func(c *Config) { c.Lat = "1.0" }},
		{"lat out of range", func(c *Config) { c.Lat, c.Lon = "91", "0" }},
		{"lon not a number", func(c *Config) { c.Lat, c.Lon = "0", "east" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load("")
			require.NoError(t, err)
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
