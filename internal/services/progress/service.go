package progress

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/puzzle-progress/internal/dependencies/clock"
	"github.com/mcoot/puzzle-progress/internal/model"
	"github.com/mcoot/puzzle-progress/internal/storage"
)

// Service exposes the progress store as request/response actions
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new progress Service
func New(storage storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// Time returns the current wall-clock time as fractional Unix seconds
func (s *Service) Time() float64 {
	return clock.UnixSeconds(s.clock.Now())
}

// GetProgress returns the record for id. An empty id falls back to the
// earliest registered record, which is what clients without a stored id
// have always received.
func (s *Service) GetProgress(ctx context.Context, id model.PlayerID) (*model.PlayerProgress, error) {
	if id == "" {
		return s.storage.GetAny(ctx)
	}
	return s.storage.GetProgress(ctx, id)
}

// SetProgress replaces the stored progress for id with raw, which must be
// valid JSON. Returns whether a record was updated; an unknown id is not an
// error.
func (s *Service) SetProgress(ctx context.Context, id model.PlayerID, raw []byte) (bool, error) {
	if _, err := model.ParsePlayerID(string(id)); err != nil {
		return false, err
	}
	progress, err := model.ParseProgress(raw)
	if err != nil {
		return false, err
	}

	n, err := s.storage.ReplaceProgress(ctx, &model.PlayerProgress{
		ID:        id,
		Progress:  progress,
		UpdatedAt: s.clock.Now(),
	})
	if err != nil {
		return false, err
	}

	if n == 0 {
		s.logger.Warn("progress submitted for unregistered player", slog.String("player_id", string(id)))
		return false, nil
	}

	s.logger.Debug("progress updated",
		slog.String("player_id", string(id)),
		slog.Int("size", len(progress)),
	)
	return true, nil
}

// RegisterPlayer creates an empty progress record for id
func (s *Service) RegisterPlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := model.ParsePlayerID(string(id)); err != nil {
		return err
	}

	if err := s.storage.Register(ctx, model.NewPlayerProgress(id, s.clock.Now())); err != nil {
		if errors.Is(err, model.ErrDuplicateRegistration) {
			s.logger.Info("duplicate registration rejected", slog.String("player_id", string(id)))
		}
		return err
	}

	s.logger.Info("player registered", slog.String("player_id", string(id)))
	return nil
}

// Reset deletes every progress record
func (s *Service) Reset(ctx context.Context) error {
	if err := s.storage.ClearAll(ctx); err != nil {
		return err
	}
	s.logger.Info("progress table cleared")
	return nil
}

// RecordCount reports how many players are stored
func (s *Service) RecordCount(ctx context.Context) (int, error) {
	return s.storage.Count(ctx)
}

// Interface for dependency injection
type ServiceInterface interface {
	Time() float64
	GetProgress(ctx context.Context, id model.PlayerID) (*model.PlayerProgress, error)
	SetProgress(ctx context.Context, id model.PlayerID, raw []byte) (bool, error)
	RegisterPlayer(ctx context.Context, id model.PlayerID) error
	Reset(ctx context.Context) error
	RecordCount(ctx context.Context) (int, error)
}

var _ ServiceInterface = (*Service)(nil)
