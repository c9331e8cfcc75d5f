package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/puzzle-progress/internal/dependencies/clock"
	"github.com/mcoot/puzzle-progress/internal/services/progress"
	"github.com/mcoot/puzzle-progress/internal/storage"
	"github.com/mcoot/puzzle-progress/internal/storage/memory"
	redisstorage "github.com/mcoot/puzzle-progress/internal/storage/redis"
	sqlitestorage "github.com/mcoot/puzzle-progress/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
	StorageTypeMemory = "memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	ProgressService *progress.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("sqlite", "redis" or "memory")
	// If empty, defaults to "sqlite"
	StorageType string
	// SQLiteConfig holds database settings (optional)
	// If nil, defaults to sqlitestorage.DefaultConfig()
	SQLiteConfig *sqlitestorage.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newStorage opens the backend selected by cfg.StorageType
func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSQLite
	}

	switch storageType {
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		store, err := sqlitestorage.Open(sqliteCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return store, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return store, nil
	case StorageTypeMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'sqlite', 'redis' or 'memory'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	return &App{
		Storage:         store,
		Clock:           clk,
		ProgressService: progress.New(store, clk, logger),
	}
}

// Close releases the storage connection
func (a *App) Close() error {
	return a.Storage.Close()
}
