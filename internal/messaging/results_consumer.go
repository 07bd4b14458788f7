// Package messaging consumes match-result events from Kafka and feeds the
// final-score cache used during settlement.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// ScoreWriter caches a finished match score.
type ScoreWriter interface {
	Set(ctx context.Context, homeTeam, awayTeam, date string, score *models.FinalScore) error
}

// ResultsConsumer consumes match results from Kafka into the score cache.
type ResultsConsumer struct {
	reader *kafka.Reader
	scores ScoreWriter
	logger zerolog.Logger
}

// ResultsConsumerConfig holds Kafka consumer configuration.
type ResultsConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "match_results"
	GroupID string   // e.g., "accumulator-ledger"
}

// NewResultsConsumer creates a new Kafka consumer.
func NewResultsConsumer(config ResultsConsumerConfig, scores ScoreWriter, logger zerolog.Logger) *ResultsConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})

	return &ResultsConsumer{
		reader: reader,
		scores: scores,
		logger: logger.With().Str("component", "results_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka until the context is cancelled.
func (c *ResultsConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming match results")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping results consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage caches the final score carried by one Kafka message.
func (c *ResultsConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var result models.MatchResultMessage
	if err := json.Unmarshal(msg.Value, &result); err != nil {
		return fmt.Errorf("failed to unmarshal match result: %w", err)
	}

	if result.HomeTeam == "" || result.AwayTeam == "" || result.Date == "" {
		return fmt.Errorf("match result missing identity fields")
	}

	score := &models.FinalScore{Home: result.HomeScore, Away: result.AwayScore}
	if err := c.scores.Set(ctx, result.HomeTeam, result.AwayTeam, result.Date, score); err != nil {
		return fmt.Errorf("failed to cache score: %w", err)
	}

	c.logger.Debug().
		Str("home_team", result.HomeTeam).
		Str("away_team", result.AwayTeam).
		Str("date", result.Date).
		Int("home_score", result.HomeScore).
		Int("away_score", result.AwayScore).
		Msg("cached match result")

	return nil
}

// Close closes the Kafka reader.
func (c *ResultsConsumer) Close() error {
	return c.reader.Close()
}
