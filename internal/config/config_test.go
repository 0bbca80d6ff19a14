package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "workout_tracker", cfg.Database.Name)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("DATABASE_NAME", "workout_tracker_test")
	t.Setenv("JWT_EXPIRATION", "30m")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "workout_tracker_test", cfg.Database.Name)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
}
