package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mcoot/puzzle-progress/internal/api"
	"github.com/mcoot/puzzle-progress/internal/factory"
	redisstorage "github.com/mcoot/puzzle-progress/internal/storage/redis"
	sqlitestorage "github.com/mcoot/puzzle-progress/internal/storage/sqlite"
)

// serverSettings is everything main reads from the environment
type serverSettings struct {
	Factory       factory.Config
	Server        api.ServerConfig
	LogLevel      slog.Level
	AllowedOrigin string
}

// loadSettings builds settings from environment lookups.
//
//	STORAGE_TYPE         sqlite (default), redis or memory
//	SQLITE_PATH          database file for sqlite storage
//	REDIS_URL            required when STORAGE_TYPE=redis
//	REDIS_KEY_PREFIX     namespace for redis keys
//	PORT                 listen port
//	LOG_LEVEL            debug, info, warn or error
//	CORS_ALLOWED_ORIGIN  origin allowed to call the API from a browser
func loadSettings(getenv func(string) string) (serverSettings, error) {
	settings := serverSettings{
		Factory: factory.Config{
			StorageType: strings.ToLower(getenv("STORAGE_TYPE")),
		},
		Server:        api.DefaultServerConfig(),
		LogLevel:      slog.LevelInfo,
		AllowedOrigin: getenv("CORS_ALLOWED_ORIGIN"),
	}

	switch settings.Factory.StorageType {
	case "", factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if path := getenv("SQLITE_PATH"); path != "" {
			sqliteCfg.Path = path
		}
		settings.Factory.SQLiteConfig = &sqliteCfg
	case factory.StorageTypeRedis:
		redisURL := getenv("REDIS_URL")
		if redisURL == "" {
			return settings, errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		if prefix := getenv("REDIS_KEY_PREFIX"); prefix != "" {
			redisCfg.KeyPrefix = prefix
		}
		settings.Factory.RedisConfig = &redisCfg
	}

	if raw := getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return settings, fmt.Errorf("invalid PORT %q", raw)
		}
		settings.Server.Port = port
	}

	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := settings.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return settings, fmt.Errorf("invalid LOG_LEVEL %q", raw)
		}
	}

	return settings, nil
}
