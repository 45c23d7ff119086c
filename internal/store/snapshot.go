package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/status-system/progression/internal/engine"
)

// SnapshotVersion is written into every saved snapshot. Version 0 is a
// bare GameState document with no envelope.
const SnapshotVersion = 1

type snapshotEnvelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"savedAt"`
	State   json.RawMessage `json:"state"`
}

// EncodeSnapshot serializes state inside a versioned envelope.
func EncodeSnapshot(state *engine.GameState, savedAt time.Time) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game state: %w", err)
	}
	data, err := json.Marshal(snapshotEnvelope{Version: SnapshotVersion, SavedAt: savedAt, State: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot written by any known version. Fields
// missing from the document keep their value from the default state, and
// the player's rank is re-derived from the attributes.
func DecodeSnapshot(data []byte, now time.Time) (*engine.GameState, error) {
	var head struct {
		Version *int            `json:"version"`
		State   json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	body := data
	if head.Version != nil {
		if *head.Version > SnapshotVersion || *head.Version < 0 {
			return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedSnapshot, *head.Version)
		}
		if len(bytes.TrimSpace(head.State)) == 0 {
			return nil, fmt.Errorf("%w: missing state", ErrMalformedSnapshot)
		}
		body = head.State
	}

	state := engine.DefaultGameState(now)
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	state = engine.Normalize(state)
	return &state, nil
}
