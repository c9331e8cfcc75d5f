package storage

import (
	"context"

	"github.com/mcoot/puzzle-progress/internal/model"
)

// Storage defines the interface for progress persistence.
// Every mutating call is a single atomic write that is durable on return.
type Storage interface {
	// Register inserts a new record. Returns model.ErrDuplicateRegistration
	// if the id already exists; the existing record is left untouched.
	Register(ctx context.Context, progress *model.PlayerProgress) error

	// GetProgress returns the record for id or model.ErrProgressNotFound
	GetProgress(ctx context.Context, id model.PlayerID) (*model.PlayerProgress, error)

	// GetAny returns the earliest registered record, or
	// model.ErrProgressNotFound when the store is empty
	GetAny(ctx context.Context) (*model.PlayerProgress, error)

	// ReplaceProgress overwrites the progress of an existing record and
	// returns the number of records affected (0 if the id is unknown)
	ReplaceProgress(ctx context.Context, progress *model.PlayerProgress) (int64, error)

	// ClearAll deletes every record
	ClearAll(ctx context.Context) error

	// Count returns the number of stored records
	Count(ctx context.Context) (int, error)

	// Close releases the underlying connection
	Close() error
}
