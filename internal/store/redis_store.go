// Package store persists the ledger state document. Both backends implement
// atomic replace: the full document is written in a single operation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// ErrNotFound is returned when no ledger state has been persisted yet.
var ErrNotFound = errors.New("store: ledger state not found")

// RedisStore keeps the ledger state document under a single Redis key.
type RedisStore struct {
	client   *redis.Client
	ledgerID string
	logger   zerolog.Logger
}

// RedisStoreConfig holds Redis store configuration.
type RedisStoreConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	LedgerID string // fixed ledger identifier, e.g. "daily"
}

// NewRedisStore creates a Redis-backed ledger store.
func NewRedisStore(config RedisStoreConfig, logger zerolog.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisStore{
		client:   client,
		ledgerID: config.LedgerID,
		logger:   logger.With().Str("component", "redis_store").Logger(),
	}
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("ledger:%s", s.ledgerID)
}

// Load reads the full ledger state document.
func (s *RedisStore) Load(ctx context.Context) (*models.LedgerState, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get ledger state: %w", err)
	}

	var state models.LedgerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger state: %w", err)
	}

	return &state, nil
}

// Save atomically replaces the ledger state document. No TTL: ledger state is
// durable, not a cache entry.
func (s *RedisStore) Save(ctx context.Context, state *models.LedgerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set ledger state: %w", err)
	}

	s.logger.Debug().
		Str("key", s.key()).
		Int("tickets", len(state.History)).
		Msg("saved ledger state")

	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
