package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/puzzle-progress/internal/factory"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadSettingsDefaults(t *testing.T) {
	settings, err := loadSettings(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "", settings.Factory.StorageType)
	require.NotNil(t, settings.Factory.SQLiteConfig)
	assert.Equal(t, "completions.db", settings.Factory.SQLiteConfig.Path)
	assert.Equal(t, 5000, settings.Server.Port)
	assert.Equal(t, slog.LevelInfo, settings.LogLevel)
	assert.Empty(t, settings.AllowedOrigin)
}

func TestLoadSettingsSQLitePath(t *testing.T) {
	settings, err := loadSettings(envFrom(map[string]string{
		"STORAGE_TYPE": "SQLite",
		"SQLITE_PATH":  "/data/progress.db",
	}))
	require.NoError(t, err)
	assert.Equal(t, factory.StorageTypeSQLite, settings.Factory.StorageType)
	assert.Equal(t, "/data/progress.db", settings.Factory.SQLiteConfig.Path)
}

func TestLoadSettingsRedis(t *testing.T) {
	settings, err := loadSettings(envFrom(map[string]string{
		"STORAGE_TYPE":     "redis",
		"REDIS_URL":        "redis://cache:6379/1",
		"REDIS_KEY_PREFIX": "staging",
	}))
	require.NoError(t, err)
	require.NotNil(t, settings.Factory.RedisConfig)
	assert.Equal(t, "redis://cache:6379/1", settings.Factory.RedisConfig.URL)
	assert.Equal(t, "staging", settings.Factory.RedisConfig.KeyPrefix)
	assert.Nil(t, settings.Factory.SQLiteConfig)
}

func TestLoadSettingsRedisRequiresURL(t *testing.T) {
	_, err := loadSettings(envFrom(map[string]string{"STORAGE_TYPE": "redis"}))
	assert.ErrorContains(t, err, "REDIS_URL")
}

func TestLoadSettingsPortAndLogLevel(t *testing.T) {
	settings, err := loadSettings(envFrom(map[string]string{
		"PORT":                "8081",
		"LOG_LEVEL":           "debug",
		"CORS_ALLOWED_ORIGIN": "http://localhost:3000",
	}))
	require.NoError(t, err)
	assert.Equal(t, 8081, settings.Server.Port)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
	assert.Equal(t, "http://localhost:3000", settings.AllowedOrigin)
}

func TestLoadSettingsRejectsBadValues(t *testing.T) {
	_, err := loadSettings(envFrom(map[string]string{"PORT": "http"}))
	assert.ErrorContains(t, err, "PORT")

	_, err = loadSettings(envFrom(map[string]string{"LOG_LEVEL": "loud"}))
	assert.ErrorContains(t, err, "LOG_LEVEL")
}
