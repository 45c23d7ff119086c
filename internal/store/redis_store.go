package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/status-system/progression/internal/config"
	"github.com/status-system/progression/internal/engine"
)

// RedisStore implements the Store interface using Redis.
// The snapshot is stored as a single JSON value per profile.
type RedisStore struct {
	client  *redis.Client
	profile string
	ttl     time.Duration // 0 = no expiration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg config.RedisConfig, profile string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, profile, cfg.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, profile string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		profile: profile,
		ttl:     ttl,
	}
}

// Load retrieves the snapshot from Redis.
func (s *RedisStore) Load(ctx context.Context) (*engine.GameState, error) {
	data, err := s.client.Get(ctx, stateKey(s.profile)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	return DecodeSnapshot(data, time.Now())
}

// Save stores the snapshot, refreshing the TTL when one is configured.
func (s *RedisStore) Save(ctx context.Context, state *engine.GameState) error {
	data, err := EncodeSnapshot(state, time.Now())
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, stateKey(s.profile), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store game state: %w", err)
	}
	return nil
}

// Reset deletes the snapshot.
func (s *RedisStore) Reset(ctx context.Context) error {
	if err := s.client.Del(ctx, stateKey(s.profile)).Err(); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func stateKey(profile string) string {
	return fmt.Sprintf("status:state:%s", profile)
}
