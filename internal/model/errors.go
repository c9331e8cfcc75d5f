package model

import "errors"

// Common errors used across the application
var (
	// Progress errors
	ErrProgressNotFound      = errors.New("progress not found")
	ErrDuplicateRegistration = errors.New("player is already registered")

	// Validation errors
	ErrInvalidPlayerID = errors.New("invalid player id")
	ErrInvalidProgress = errors.New("progress is not valid JSON")
)
