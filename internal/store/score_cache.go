package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// ScoreCache caches final match scores in Redis. It is fed by the Kafka
// result consumer and consulted by the result source before any HTTP lookup.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// ScoreCacheConfig holds score cache configuration.
type ScoreCacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // e.g., 72h; scores only matter until settlement
}

// NewScoreCache creates a Redis-backed final score cache.
func NewScoreCache(config ScoreCacheConfig, logger zerolog.Logger) *ScoreCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &ScoreCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "score_cache").Logger(),
	}
}

// scoreKey normalizes team names so producer and consumer agree on the key.
func scoreKey(homeTeam, awayTeam, date string) string {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return fmt.Sprintf("score:%s:%s:%s", date, norm(homeTeam), norm(awayTeam))
}

// Set caches a final score.
func (c *ScoreCache) Set(ctx context.Context, homeTeam, awayTeam, date string, score *models.FinalScore) error {
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}

	key := scoreKey(homeTeam, awayTeam, date)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set score in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Int("home", score.Home).
		Int("away", score.Away).
		Msg("cached final score")

	return nil
}

// Get retrieves a cached final score. Returns (nil, nil) on a cache miss: a
// missing score is not an error, the caller falls through to the next source.
func (c *ScoreCache) Get(ctx context.Context, homeTeam, awayTeam, date string) (*models.FinalScore, error) {
	data, err := c.client.Get(ctx, scoreKey(homeTeam, awayTeam, date)).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get score from Redis: %w", err)
	}

	var score models.FinalScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score: %w", err)
	}

	return &score, nil
}

// Ping checks the Redis connection.
func (c *ScoreCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *ScoreCache) Close() error {
	return c.client.Close()
}
