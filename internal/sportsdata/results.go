package sportsdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/metrics"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// ScoreReader is the local final-score cache fed by the Kafka consumer.
type ScoreReader interface {
	Get(ctx context.Context, homeTeam, awayTeam, date string) (*models.FinalScore, error)
}

// ResultsClient implements the settlement result source: cache first, then the
// sports data API. A (nil, nil) return means the result is unavailable and the
// leg settles void.
type ResultsClient struct {
	client *Client
	cache  ScoreReader // may be nil
	base   string
	logger zerolog.Logger
}

// NewResultsClient creates the result source.
func NewResultsClient(client *Client, cache ScoreReader, cfg Config, logger zerolog.Logger) *ResultsClient {
	return &ResultsClient{
		client: client,
		cache:  cache,
		base:   strings.TrimRight(cfg.ResultsBaseURL, "/"),
		logger: logger.With().Str("component", "results_client").Logger(),
	}
}

// searchResponse is the sports data API match search wire format. Scores come
// back as strings and are empty until the match finishes.
type searchResponse struct {
	Event []struct {
		HomeTeam  string `json:"strHomeTeam"`
		AwayTeam  string `json:"strAwayTeam"`
		HomeScore string `json:"intHomeScore"`
		AwayScore string `json:"intAwayScore"`
	} `json:"event"`
}

// GetFinalScore looks up a finished match score.
func (r *ResultsClient) GetFinalScore(ctx context.Context, homeTeam, awayTeam, date string) (*models.FinalScore, error) {
	if r.cache != nil {
		score, err := r.cache.Get(ctx, homeTeam, awayTeam, date)
		if err != nil {
			r.logger.Warn().Err(err).Msg("score cache lookup failed, falling back to HTTP")
		} else if score != nil {
			metrics.ResultLookups.WithLabelValues("cache").Inc()
			return score, nil
		}
	}

	query := url.QueryEscape(fmt.Sprintf("%s vs %s", homeTeam, awayTeam))
	u := fmt.Sprintf("%s/api/v1/json/3/searchevents.php?e=%s&d=%s", r.base, query, url.QueryEscape(date))

	var resp searchResponse
	if err := r.client.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	if len(resp.Event) == 0 {
		metrics.ResultLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}

	match := resp.Event[0]
	home, errH := strconv.Atoi(match.HomeScore)
	away, errA := strconv.Atoi(match.AwayScore)
	if errH != nil || errA != nil {
		// Match not finished yet.
		metrics.ResultLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.ResultLookups.WithLabelValues("http").Inc()
	return &models.FinalScore{Home: home, Away: away}, nil
}
