// Package storagetest holds the behaviour every storage backend must share.
// Backend packages embed Suite in their own testify suite.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/puzzle-progress/internal/model"
	"github.com/mcoot/puzzle-progress/internal/storage"
)

// Suite runs the shared storage contract against the backend returned by
// NewStorage. NewStorage is called once per test.
type Suite struct {
	suite.Suite
	NewStorage func(t *testing.T) storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

var registeredAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func (s *Suite) SetupTest() {
	s.Storage = s.NewStorage(s.T())
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

func (s *Suite) register(id model.PlayerID) {
	s.Require().NoError(s.Storage.Register(s.Ctx, model.NewPlayerProgress(id, registeredAt)))
}

func (s *Suite) replace(id model.PlayerID, progress string) int64 {
	n, err := s.Storage.ReplaceProgress(s.Ctx, &model.PlayerProgress{
		ID:        id,
		Progress:  model.Progress(progress),
		UpdatedAt: registeredAt.Add(time.Minute),
	})
	s.Require().NoError(err)
	return n
}

// Register tests

func (s *Suite) TestRegisterStoresEmptyProgress() {
	s.register("abc")

	record, err := s.Storage.GetProgress(s.Ctx, "abc")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("abc"), record.ID)
	s.JSONEq(model.EmptyProgressJSON, record.Progress.String())
}

func (s *Suite) TestRegisterDuplicateRejected() {
	s.register("abc")
	s.replace("abc", `["puzzle1"]`)

	err := s.Storage.Register(s.Ctx, model.NewPlayerProgress("abc", registeredAt))
	s.ErrorIs(err, model.ErrDuplicateRegistration)

	record, err := s.Storage.GetProgress(s.Ctx, "abc")
	s.Require().NoError(err)
	s.JSONEq(`["puzzle1"]`, record.Progress.String(), "existing progress must survive a duplicate register")

	count, err := s.Storage.Count(s.Ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

// GetProgress tests

func (s *Suite) TestGetProgressNotFound() {
	_, err := s.Storage.GetProgress(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrProgressNotFound)
}

func (s *Suite) TestGetProgressKeyedByID() {
	s.register("first")
	s.register("second")
	s.replace("second", `{"puzzle2":true}`)

	record, err := s.Storage.GetProgress(s.Ctx, "second")
	s.Require().NoError(err)
	s.JSONEq(`{"puzzle2":true}`, record.Progress.String())

	record, err = s.Storage.GetProgress(s.Ctx, "first")
	s.Require().NoError(err)
	s.JSONEq(model.EmptyProgressJSON, record.Progress.String())
}

// GetAny tests

func (s *Suite) TestGetAnyEmptyStore() {
	_, err := s.Storage.GetAny(s.Ctx)
	s.ErrorIs(err, model.ErrProgressNotFound)
}

func (s *Suite) TestGetAnyReturnsEarliestRegistered() {
	s.register("first")
	s.register("second")

	record, err := s.Storage.GetAny(s.Ctx)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("first"), record.ID)
}

// ReplaceProgress tests

func (s *Suite) TestReplaceProgressRoundTrip() {
	s.register("abc")

	n := s.replace("abc", `["puzzle1","puzzle3"]`)
	s.Equal(int64(1), n)

	record, err := s.Storage.GetProgress(s.Ctx, "abc")
	s.Require().NoError(err)
	s.JSONEq(`["puzzle1","puzzle3"]`, record.Progress.String())
}

func (s *Suite) TestReplaceProgressIsFullReplace() {
	s.register("abc")
	s.replace("abc", `{"a":1,"b":2}`)
	s.replace("abc", `{"c":3}`)

	record, err := s.Storage.GetProgress(s.Ctx, "abc")
	s.Require().NoError(err)
	s.JSONEq(`{"c":3}`, record.Progress.String())
}

func (s *Suite) TestReplaceProgressUnknownIDAffectsNothing() {
	s.register("abc")

	n := s.replace("nobody", `["puzzle1"]`)
	s.Equal(int64(0), n)

	_, err := s.Storage.GetProgress(s.Ctx, "nobody")
	s.ErrorIs(err, model.ErrProgressNotFound)

	count, err := s.Storage.Count(s.Ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

// ClearAll tests

func (s *Suite) TestClearAllEmptiesStore() {
	s.register("a")
	s.register("b")

	s.Require().NoError(s.Storage.ClearAll(s.Ctx))

	_, err := s.Storage.GetAny(s.Ctx)
	s.ErrorIs(err, model.ErrProgressNotFound)
	_, err = s.Storage.GetProgress(s.Ctx, "a")
	s.ErrorIs(err, model.ErrProgressNotFound)

	count, err := s.Storage.Count(s.Ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *Suite) TestClearAllTwice() {
	s.register("a")

	s.Require().NoError(s.Storage.ClearAll(s.Ctx))
	s.Require().NoError(s.Storage.ClearAll(s.Ctx))

	count, err := s.Storage.Count(s.Ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *Suite) TestRegisterAfterClear() {
	s.register("a")
	s.Require().NoError(s.Storage.ClearAll(s.Ctx))

	s.register("a")

	record, err := s.Storage.GetAny(s.Ctx)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("a"), record.ID)
	s.JSONEq(model.EmptyProgressJSON, record.Progress.String())
}

// Concurrency tests

// concurrentWriters is the number of goroutines registering and replacing
// in TestConcurrentWritesStayConsistent
const concurrentWriters = 4

const concurrentRounds = 100

func concurrentID(writer, round int) model.PlayerID {
	return model.PlayerID(fmt.Sprintf("w%d-%d", writer, round))
}

// concurrentIDs lists every id TestConcurrentWritesStayConsistent may write
func concurrentIDs() []model.PlayerID {
	ids := make([]model.PlayerID, 0, concurrentWriters*concurrentRounds)
	for w := range concurrentWriters {
		for i := range concurrentRounds {
			ids = append(ids, concurrentID(w, i))
		}
	}
	return ids
}

func (s *Suite) TestConcurrentWritesStayConsistent() {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	}

	for w := range concurrentWriters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range concurrentRounds {
				id := concurrentID(w, i)
				err := s.Storage.Register(s.Ctx, model.NewPlayerProgress(id, registeredAt))
				if err != nil && !errors.Is(err, model.ErrDuplicateRegistration) {
					fail(fmt.Errorf("register %s: %w", id, err))
				}
				_, err = s.Storage.ReplaceProgress(s.Ctx, &model.PlayerProgress{
					ID:        id,
					Progress:  model.Progress(`["puzzle1"]`),
					UpdatedAt: registeredAt,
				})
				if err != nil {
					fail(fmt.Errorf("replace %s: %w", id, err))
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range concurrentRounds {
			if err := s.Storage.ClearAll(s.Ctx); err != nil {
				fail(fmt.Errorf("clear: %w", err))
			}
		}
	}()

	wg.Wait()
	s.Require().Empty(errs)

	// Count, GetAny and keyed reads agree on what survived
	readable := 0
	for _, id := range concurrentIDs() {
		_, err := s.Storage.GetProgress(s.Ctx, id)
		if err == nil {
			readable++
			continue
		}
		s.Require().ErrorIs(err, model.ErrProgressNotFound)
	}

	count, err := s.Storage.Count(s.Ctx)
	s.Require().NoError(err)
	s.Equal(readable, count)

	_, err = s.Storage.GetAny(s.Ctx)
	if count == 0 {
		s.ErrorIs(err, model.ErrProgressNotFound)
	} else {
		s.NoError(err)
	}

	// A quiet ClearAll leaves nothing readable and frees every id
	s.Require().NoError(s.Storage.ClearAll(s.Ctx))

	count, err = s.Storage.Count(s.Ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	for _, id := range concurrentIDs() {
		_, err := s.Storage.GetProgress(s.Ctx, id)
		s.Require().ErrorIs(err, model.ErrProgressNotFound, "id %s survived ClearAll", id)
	}
	s.NoError(s.Storage.Register(s.Ctx, model.NewPlayerProgress(concurrentID(0, 0), registeredAt)))
}
