package memory

import (
	"context"
	"sync"

	"github.com/mcoot/puzzle-progress/internal/model"
	"github.com/mcoot/puzzle-progress/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	records map[model.PlayerID]*model.PlayerProgress
	// order holds ids in registration order so GetAny is deterministic
	order []model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		records: make(map[model.PlayerID]*model.PlayerProgress),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Register(ctx context.Context, progress *model.PlayerProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[progress.ID]; ok {
		return model.ErrDuplicateRegistration
	}
	s.records[progress.ID] = clone(progress)
	s.order = append(s.order, progress.ID)
	return nil
}

func (s *Storage) GetProgress(ctx context.Context, id model.PlayerID) (*model.PlayerProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, model.ErrProgressNotFound
	}
	return clone(record), nil
}

func (s *Storage) GetAny(ctx context.Context) (*model.PlayerProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.order) == 0 {
		return nil, model.ErrProgressNotFound
	}
	return clone(s.records[s.order[0]]), nil
}

func (s *Storage) ReplaceProgress(ctx context.Context, progress *model.PlayerProgress) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[progress.ID]; !ok {
		return 0, nil
	}
	s.records[progress.ID] = clone(progress)
	return 1, nil
}

func (s *Storage) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[model.PlayerID]*model.PlayerProgress)
	s.order = nil
	return nil
}

func (s *Storage) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *Storage) Close() error {
	return nil
}

// clone copies a record so callers never share the stored progress bytes
func clone(p *model.PlayerProgress) *model.PlayerProgress {
	c := *p
	c.Progress = append(model.Progress(nil), p.Progress...)
	return &c
}
