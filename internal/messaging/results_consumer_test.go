package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// stubScoreWriter records cached scores for tests
type stubScoreWriter struct {
	err    error
	home   string
	away   string
	date   string
	cached *models.FinalScore
}

func (s *stubScoreWriter) Set(ctx context.Context, homeTeam, awayTeam, date string, score *models.FinalScore) error {
	if s.err != nil {
		return s.err
	}
	s.home, s.away, s.date, s.cached = homeTeam, awayTeam, date, score
	return nil
}

// testResultsConsumerSetup is a helper struct to hold test dependencies
type testResultsConsumerSetup struct {
	scores   *stubScoreWriter
	consumer *ResultsConsumer
}

// setupTestResultsConsumer creates a consumer with a stubbed score cache
func setupTestResultsConsumer(t *testing.T) *testResultsConsumerSetup {
	scores := &stubScoreWriter{}
	consumer := NewResultsConsumer(ResultsConsumerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "match_results",
		GroupID: "test-group",
	}, scores, zerolog.Nop())

	t.Cleanup(func() { consumer.Close() })

	return &testResultsConsumerSetup{
		scores:   scores,
		consumer: consumer,
	}
}

// TestNewResultsConsumer tests consumer creation
func TestNewResultsConsumer(t *testing.T) {
	setup := setupTestResultsConsumer(t)

	assert.NotNil(t, setup.consumer)
	assert.NotNil(t, setup.consumer.reader)
	assert.Equal(t, "match_results", setup.consumer.reader.Config().Topic)
	assert.Equal(t, "test-group", setup.consumer.reader.Config().GroupID)
}

// TestProcessMessage_CachesScore tests the happy path
func TestProcessMessage_CachesScore(t *testing.T) {
	setup := setupTestResultsConsumer(t)

	payload, err := json.Marshal(models.MatchResultMessage{
		HomeTeam:   "Arsenal",
		AwayTeam:   "Fulham",
		League:     "Premier League",
		Date:       "2025-03-14",
		HomeScore:  2,
		AwayScore:  1,
		FinishedAt: time.Now(),
	})
	require.NoError(t, err)

	err = setup.consumer.processMessage(context.Background(), kafka.Message{Value: payload})
	require.NoError(t, err)

	assert.Equal(t, "Arsenal", setup.scores.home)
	assert.Equal(t, "Fulham", setup.scores.away)
	assert.Equal(t, "2025-03-14", setup.scores.date)
	require.NotNil(t, setup.scores.cached)
	assert.Equal(t, 2, setup.scores.cached.Home)
	assert.Equal(t, 1, setup.scores.cached.Away)
}

// TestProcessMessage_InvalidJSON tests malformed payload rejection
func TestProcessMessage_InvalidJSON(t *testing.T) {
	setup := setupTestResultsConsumer(t)

	err := setup.consumer.processMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.ErrorContains(t, err, "failed to unmarshal match result")
	assert.Nil(t, setup.scores.cached)
}

// TestProcessMessage_MissingIdentityFields tests that results without both
// teams and a date are rejected
func TestProcessMessage_MissingIdentityFields(t *testing.T) {
	setup := setupTestResultsConsumer(t)

	payload, err := json.Marshal(models.MatchResultMessage{
		HomeTeam:  "Arsenal",
		HomeScore: 2,
		AwayScore: 1,
	})
	require.NoError(t, err)

	err = setup.consumer.processMessage(context.Background(), kafka.Message{Value: payload})
	assert.ErrorContains(t, err, "missing identity fields")
	assert.Nil(t, setup.scores.cached)
}

// TestProcessMessage_CacheWriteFailure tests that cache errors surface so the
// message is not committed
func TestProcessMessage_CacheWriteFailure(t *testing.T) {
	setup := setupTestResultsConsumer(t)
	setup.scores.err = errors.New("redis down")

	payload, err := json.Marshal(models.MatchResultMessage{
		HomeTeam:  "Arsenal",
		AwayTeam:  "Fulham",
		Date:      "2025-03-14",
		HomeScore: 0,
		AwayScore: 0,
	})
	require.NoError(t, err)

	err = setup.consumer.processMessage(context.Background(), kafka.Message{Value: payload})
	assert.ErrorContains(t, err, "failed to cache score")
}
