package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/puzzle-progress/internal/model"
	"github.com/mcoot/puzzle-progress/internal/storage"
	"github.com/mcoot/puzzle-progress/internal/storage/storagetest"
)

// openTestStorage opens a fresh database file in a temp dir
func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "test.db")
	s, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &StorageSuite{
		Suite: storagetest.Suite{
			NewStorage: func(t *testing.T) storage.Storage { return openTestStorage(t) },
		},
	})
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "completions.db")

	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(cfg.Path)
	assert.NoError(t, err)
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "completions.db")
	ctx := context.Background()

	s1, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s1.Register(ctx, model.NewPlayerProgress("abc", time.Now())))
	_, err = s1.ReplaceProgress(ctx, &model.PlayerProgress{ID: "abc", Progress: model.Progress(`["p1"]`), UpdatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(cfg)
	require.NoError(t, err)
	defer s2.Close()

	record, err := s2.GetProgress(ctx, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `["p1"]`, record.Progress.String())
}

func TestOpenSetsSchemaVersion(t *testing.T) {
	s := openTestStorage(t)

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpenUsesWAL(t *testing.T) {
	s := openTestStorage(t)

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestInvalidJSONRejectedByTable(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, model.NewPlayerProgress("abc", time.Now())))

	_, err := s.ReplaceProgress(ctx, &model.PlayerProgress{ID: "abc", Progress: model.Progress(`nothing`), UpdatedAt: time.Now()})
	require.Error(t, err)

	record, err := s.GetProgress(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, model.EmptyProgressJSON, record.Progress.String())
}

func TestUpdatedAtRoundTrip(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 4, 5, 6, 7, 8, time.UTC)

	require.NoError(t, s.Register(ctx, model.NewPlayerProgress("abc", at)))

	record, err := s.GetProgress(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, at.Equal(record.UpdatedAt))
}
