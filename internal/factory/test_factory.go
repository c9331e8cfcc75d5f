package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/puzzle-progress/internal/dependencies/mocks"
	"github.com/mcoot/puzzle-progress/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App backed by memory storage and a mocked clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return &TestApp{
		App:       newWithDependencies(store, mockClock, logger),
		MockClock: mockClock,
	}
}
