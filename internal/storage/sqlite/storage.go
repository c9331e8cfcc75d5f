package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/puzzle-progress/internal/model"
	"github.com/mcoot/puzzle-progress/internal/storage"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - no schema
// 1 - completions table with json_valid check
const currentSchemaVersion = 1

// Storage is a SQLite-backed implementation of the storage interface.
// All records live in the completions table.
type Storage struct {
	db *sql.DB
}

// Open creates or opens the database at cfg.Path and applies the schema.
//
// The connection is configured with:
//   - a single open connection, so writes are serialized in-process
//   - WAL journaling
//   - a busy timeout for lock contention with other processes
func Open(cfg Config) (*Storage, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db, cfg.BusyTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Register inserts a new record. ON CONFLICT DO NOTHING keeps the existing
// row intact; zero affected rows means the id was already taken.
func (s *Storage) Register(ctx context.Context, progress *model.PlayerProgress) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO completions (id, completed_puzzles, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		string(progress.ID),
		progress.Progress.String(),
		progress.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if n == 0 {
		return model.ErrDuplicateRegistration
	}
	return nil
}

func (s *Storage) GetProgress(ctx context.Context, id model.PlayerID) (*model.PlayerProgress, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, completed_puzzles, updated_at
		FROM completions
		WHERE id = ?
	`, string(id))
	return scanProgress(row)
}

// GetAny returns the row with the lowest rowid, i.e. the earliest insert
func (s *Storage) GetAny(ctx context.Context) (*model.PlayerProgress, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, completed_puzzles, updated_at
		FROM completions
		ORDER BY rowid
		LIMIT 1
	`)
	return scanProgress(row)
}

func (s *Storage) ReplaceProgress(ctx context.Context, progress *model.PlayerProgress) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE completions
		SET completed_puzzles = ?, updated_at = ?
		WHERE id = ?
	`,
		progress.Progress.String(),
		progress.UpdatedAt.UnixNano(),
		string(progress.ID),
	)
	if err != nil {
		return 0, fmt.Errorf("replace progress: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("replace progress: %w", err)
	}
	return n, nil
}

func (s *Storage) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM completions`); err != nil {
		return fmt.Errorf("clear completions: %w", err)
	}
	return nil
}

func (s *Storage) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM completions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return count, nil
}

func scanProgress(row *sql.Row) (*model.PlayerProgress, error) {
	var (
		id        string
		progress  string
		updatedAt int64
	)
	if err := row.Scan(&id, &progress, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProgressNotFound
		}
		return nil, fmt.Errorf("scan progress: %w", err)
	}

	return &model.PlayerProgress{
		ID:        model.PlayerID(id),
		Progress:  model.Progress(progress),
		UpdatedAt: time.Unix(0, updatedAt).UTC(),
	}, nil
}

// applyPragmas sets required SQLite configuration
func applyPragmas(db *sql.DB, busyTimeout time.Duration) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the schema
// version. Safe to run against an existing database.
func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
