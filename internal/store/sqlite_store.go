package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/status-system/progression/internal/engine"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_state (
	profile_id TEXT PRIMARY KEY,
	snapshot   BLOB NOT NULL,
	saved_at   TIMESTAMP NOT NULL
)`

// SQLiteStore keeps one snapshot row per profile in a local database file.
type SQLiteStore struct {
	db      *sql.DB
	profile string
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(ctx context.Context, path, profile string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, profile: profile}, nil
}

// Load reads the snapshot for the profile.
func (s *SQLiteStore) Load(ctx context.Context) (*engine.GameState, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM game_state WHERE profile_id = ?`, s.profile).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	return DecodeSnapshot(data, time.Now())
}

// Save upserts the snapshot for the profile.
func (s *SQLiteStore) Save(ctx context.Context, state *engine.GameState) error {
	now := time.Now().UTC()
	data, err := EncodeSnapshot(state, now)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO game_state (profile_id, snapshot, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET snapshot = excluded.snapshot, saved_at = excluded.saved_at`,
		s.profile, data, now)
	if err != nil {
		return fmt.Errorf("failed to store game state: %w", err)
	}
	return nil
}

// Reset deletes the profile's row.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM game_state WHERE profile_id = ?`, s.profile); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
