package sportsdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// stubScoreReader is an in-memory ScoreReader for tests
type stubScoreReader struct {
	score *models.FinalScore
	err   error
	calls int
}

func (s *stubScoreReader) Get(ctx context.Context, homeTeam, awayTeam, date string) (*models.FinalScore, error) {
	s.calls++
	return s.score, s.err
}

// newTestResultsClient wires a results client against a test server
func newTestResultsClient(t *testing.T, resultsURL string, cache ScoreReader) *ResultsClient {
	cfg := Config{
		ResultsBaseURL: resultsURL,
		Timeout:        2 * time.Second,
		RequestsPerSec: 100,
	}
	return NewResultsClient(NewClient(cfg, zerolog.Nop()), cache, cfg, zerolog.Nop())
}

// TestGetFinalScore_CacheHitSkipsHTTP tests the cache-first path
func TestGetFinalScore_CacheHitSkipsHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("HTTP lookup should not run on a cache hit")
	}))
	defer server.Close()

	cache := &stubScoreReader{score: &models.FinalScore{Home: 2, Away: 1}}
	client := newTestResultsClient(t, server.URL, cache)

	score, err := client.GetFinalScore(context.Background(), "Arsenal", "Fulham", "2025-03-14")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 2, score.Home)
	assert.Equal(t, 1, score.Away)
	assert.Equal(t, 1, cache.calls)
}

// TestGetFinalScore_CacheMissFallsThrough tests the HTTP fallback
func TestGetFinalScore_CacheMissFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/json/3/searchevents.php", r.URL.Path)
		assert.Equal(t, "Arsenal vs Fulham", r.URL.Query().Get("e"))
		assert.Equal(t, "2025-03-14", r.URL.Query().Get("d"))
		w.Write([]byte(`{"event":[{"strHomeTeam":"Arsenal","strAwayTeam":"Fulham","intHomeScore":"3","intAwayScore":"1"}]}`))
	}))
	defer server.Close()

	client := newTestResultsClient(t, server.URL, &stubScoreReader{})

	score, err := client.GetFinalScore(context.Background(), "Arsenal", "Fulham", "2025-03-14")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 3, score.Home)
	assert.Equal(t, 1, score.Away)
}

// TestGetFinalScore_CacheErrorFallsThrough tests that a broken cache does not
// block the HTTP lookup
func TestGetFinalScore_CacheErrorFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"event":[{"strHomeTeam":"Arsenal","strAwayTeam":"Fulham","intHomeScore":"1","intAwayScore":"0"}]}`))
	}))
	defer server.Close()

	cache := &stubScoreReader{err: errors.New("redis down")}
	client := newTestResultsClient(t, server.URL, cache)

	score, err := client.GetFinalScore(context.Background(), "Arsenal", "Fulham", "2025-03-14")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 1, score.Home)
}

// TestGetFinalScore_NoMatchFound tests the (nil, nil) miss contract
func TestGetFinalScore_NoMatchFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"event":null}`))
	}))
	defer server.Close()

	client := newTestResultsClient(t, server.URL, nil)

	score, err := client.GetFinalScore(context.Background(), "Arsenal", "Fulham", "2025-03-14")
	assert.NoError(t, err)
	assert.Nil(t, score)
}

// TestGetFinalScore_UnfinishedMatch tests that empty score strings mean the
// match has not finished
func TestGetFinalScore_UnfinishedMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"event":[{"strHomeTeam":"Arsenal","strAwayTeam":"Fulham","intHomeScore":"","intAwayScore":""}]}`))
	}))
	defer server.Close()

	client := newTestResultsClient(t, server.URL, nil)

	score, err := client.GetFinalScore(context.Background(), "Arsenal", "Fulham", "2025-03-14")
	assert.NoError(t, err)
	assert.Nil(t, score)
}

// TestGetFinalScore_UpstreamError tests that HTTP failures propagate
func TestGetFinalScore_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestResultsClient(t, server.URL, nil)

	score, err := client.GetFinalScore(context.Background(), "Arsenal", "Fulham", "2025-03-14")
	assert.Nil(t, score)
	assert.Error(t, err)
}
