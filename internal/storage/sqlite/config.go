package sqlite

import "time"

// Config holds SQLite connection settings
type Config struct {
	// Path is the database file. It is created if it does not exist.
	Path string

	// BusyTimeout is how long a write waits for a competing lock
	BusyTimeout time.Duration
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:        "completions.db",
		BusyTimeout: 5 * time.Second,
	}
}
