package cassandra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/status-system/progression/internal/engine"
	"github.com/status-system/progression/internal/store"
	"github.com/status-system/progression/pkg/logger"
)

// Repository implements store.Store on the game_states table
type Repository struct {
	client  *Client
	logger  *logger.Logger
	profile string
	timeout time.Duration
}

// NewRepository creates a new Cassandra-backed state store for one profile
func NewRepository(client *Client, log *logger.Logger, profile string, timeout time.Duration) *Repository {
	return &Repository{
		client:  client,
		logger:  log,
		profile: profile,
		timeout: timeout,
	}
}

// queryContext applies the configured timeout unless ctx already carries a deadline
func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	queryCtx, cancel := ctx, context.CancelFunc(func() {})
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		queryCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}

	select {
	case <-queryCtx.Done():
		cancel()
		return nil, nil, fmt.Errorf("context cancelled: %w", queryCtx.Err())
	default:
	}
	return queryCtx, cancel, nil
}

// Load retrieves the profile's snapshot
func (r *Repository) Load(ctx context.Context) (*engine.GameState, error) {
	query := fmt.Sprintf(`
		SELECT snapshot
		FROM %s.game_states
		WHERE profile_id = ?`, r.client.Keyspace())

	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var data []byte
	err = r.client.Session().Query(query, r.profile).WithContext(queryCtx).Scan(&data)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, store.ErrStateNotFound
		}
		r.logger.Error("Failed to get game state from Cassandra",
			logger.F("profile_id", r.profile),
			logger.Err(err))
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	return store.DecodeSnapshot(data, time.Now())
}

// Save overwrites the profile's snapshot
func (r *Repository) Save(ctx context.Context, state *engine.GameState) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.game_states (profile_id, snapshot, saved_at)
		VALUES (?, ?, ?)`, r.client.Keyspace())

	now := time.Now().UTC()
	data, err := store.EncodeSnapshot(state, now)
	if err != nil {
		return err
	}

	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if err := r.client.Session().Query(query, r.profile, data, now).WithContext(queryCtx).Exec(); err != nil {
		r.logger.Error("Failed to save game state to Cassandra",
			logger.F("profile_id", r.profile),
			logger.Err(err))
		return fmt.Errorf("failed to store game state: %w", err)
	}

	r.logger.Debug("Game state saved", logger.F("profile_id", r.profile))
	return nil
}

// Reset deletes the profile's snapshot
func (r *Repository) Reset(ctx context.Context) error {
	query := fmt.Sprintf(`
		DELETE FROM %s.game_states
		WHERE profile_id = ?`, r.client.Keyspace())

	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if err := r.client.Session().Query(query, r.profile).WithContext(queryCtx).Exec(); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}
	return nil
}

var _ store.Store = (*Repository)(nil)
