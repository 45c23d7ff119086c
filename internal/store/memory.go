package store

import (
	"context"
	"sync"
	"time"

	"github.com/status-system/progression/internal/engine"
)

// MemoryStore keeps the encoded snapshot in memory. Going through the
// codec keeps it faithful to the durable stores.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
	now  func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Load decodes the last saved snapshot
func (s *MemoryStore) Load(ctx context.Context) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrStateNotFound
	}
	return DecodeSnapshot(s.data, s.now())
}

// Save encodes and keeps state
func (s *MemoryStore) Save(ctx context.Context, state *engine.GameState) error {
	data, err := EncodeSnapshot(state, s.now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Reset drops the saved snapshot
func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
