package store

import (
	"context"

	"github.com/status-system/progression/internal/engine"
)

// Store defines the persistence collaborator for the game state.
// Implementations hold exactly one snapshot per profile.
type Store interface {
	// Load returns the saved state, or ErrStateNotFound when none exists
	Load(ctx context.Context) (*engine.GameState, error)

	// Save replaces the saved state
	Save(ctx context.Context, state *engine.GameState) error

	// Reset deletes all saved data
	Reset(ctx context.Context) error
}

// Errors
var (
	ErrStateNotFound     = &StoreError{Message: "game state not found"}
	ErrMalformedSnapshot = &StoreError{Message: "malformed game state snapshot"}
)

// StoreError represents a storage error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
