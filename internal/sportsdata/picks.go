package sportsdata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// ErrNoEvents is returned when neither the recommendation API nor the event
// list yields anything to pick from.
var ErrNoEvents = errors.New("sportsdata: no events available for fallback picks")

// fallback pick defaults, used when the recommendation API is unavailable.
var fallbackOdds = decimal.NewFromFloat(1.75)

const (
	fallbackConfidence = 6
	fallbackPoolSize   = 5
)

// PicksClient implements the ledger's candidate source against the
// recommendation API, degrading to safe default picks built from the raw
// event list when the API fails.
type PicksClient struct {
	client      *Client
	picksBase   string
	resultsBase string
	logger      zerolog.Logger
}

// NewPicksClient creates the candidate source.
func NewPicksClient(client *Client, cfg Config, logger zerolog.Logger) *PicksClient {
	return &PicksClient{
		client:      client,
		picksBase:   strings.TrimRight(cfg.PicksBaseURL, "/"),
		resultsBase: strings.TrimRight(cfg.ResultsBaseURL, "/"),
		logger:      logger.With().Str("component", "picks_client").Logger(),
	}
}

// apiPick is the recommendation API wire format.
type apiPick struct {
	HomeTeam   string  `json:"home_team"`
	AwayTeam   string  `json:"away_team"`
	League     string  `json:"league"`
	Pick       string  `json:"pick"` // e.g. "Home Win", "Over 2.5 Goals"
	Odds       float64 `json:"odds"`
	Confidence int     `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type picksResponse struct {
	Picks []apiPick `json:"picks"`
}

// GetCandidatePicks returns confidence-ranked picks for a calendar day.
// Primary: the recommendation API. Fallback: low-confidence default picks
// from whatever event list is available, never empty-handed if at least one
// event exists.
func (p *PicksClient) GetCandidatePicks(ctx context.Context, date string) ([]models.Pick, error) {
	picks, err := p.fetchRecommended(ctx, date)
	if err == nil && len(picks) > 0 {
		return picks, nil
	}
	if err != nil {
		p.logger.Warn().
			Err(err).
			Str("date", date).
			Msg("recommendation source failed, building fallback picks")
	}

	events, err := p.fetchEvents(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fallback event fetch failed: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	return fallbackPicks(events), nil
}

// fetchRecommended queries the recommendation API.
func (p *PicksClient) fetchRecommended(ctx context.Context, date string) ([]models.Pick, error) {
	u := fmt.Sprintf("%s/api/v1/picks?date=%s", p.picksBase, url.QueryEscape(date))

	var resp picksResponse
	if err := p.client.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	picks := make([]models.Pick, 0, len(resp.Picks))
	for _, ap := range resp.Picks {
		pickType, goalLine, ok := ParsePickLabel(ap.Pick)
		if !ok {
			p.logger.Warn().Str("pick", ap.Pick).Msg("unknown pick label, skipping")
			continue
		}
		picks = append(picks, models.Pick{
			HomeTeam:   ap.HomeTeam,
			AwayTeam:   ap.AwayTeam,
			League:     ap.League,
			Type:       pickType,
			GoalLine:   goalLine,
			Odds:       decimal.NewFromFloat(ap.Odds),
			Confidence: ap.Confidence,
			Reasoning:  ap.Reasoning,
		})
	}
	return picks, nil
}

// eventsResponse is the sports data API event list wire format.
type eventsResponse struct {
	Events []struct {
		HomeTeam string `json:"strHomeTeam"`
		AwayTeam string `json:"strAwayTeam"`
		League   string `json:"strLeague"`
		Date     string `json:"dateEvent"`
	} `json:"events"`
}

// fetchEvents lists the day's fixtures from the sports data API.
func (p *PicksClient) fetchEvents(ctx context.Context, date string) ([]models.Event, error) {
	u := fmt.Sprintf("%s/api/v1/json/3/eventsday.php?d=%s&s=Soccer", p.resultsBase, url.QueryEscape(date))

	var resp eventsResponse
	if err := p.client.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(resp.Events))
	for _, e := range resp.Events {
		if e.HomeTeam == "" || e.AwayTeam == "" {
			continue
		}
		events = append(events, models.Event{
			HomeTeam: e.HomeTeam,
			AwayTeam: e.AwayTeam,
			League:   e.League,
			Date:     e.Date,
		})
	}
	return events, nil
}

// fallbackPicks builds safe, low-confidence defaults from the event list.
func fallbackPicks(events []models.Event) []models.Pick {
	n := len(events)
	if n > fallbackPoolSize {
		n = fallbackPoolSize
	}
	picks := make([]models.Pick, 0, n)
	for _, e := range events[:n] {
		picks = append(picks, models.Pick{
			HomeTeam:   e.HomeTeam,
			AwayTeam:   e.AwayTeam,
			League:     e.League,
			Type:       models.PickOverGoals,
			GoalLine:   decimal.NewFromFloat(2.5),
			Odds:       fallbackOdds,
			Confidence: fallbackConfidence,
			Reasoning:  "fallback pick, recommendation source unavailable",
		})
	}
	return picks
}

// ParsePickLabel maps a human pick label onto a pick type and goal line.
func ParsePickLabel(label string) (models.PickType, decimal.Decimal, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(l, "home win"):
		return models.PickHomeWin, decimal.Zero, true
	case strings.Contains(l, "away win"):
		return models.PickAwayWin, decimal.Zero, true
	case strings.Contains(l, "draw"):
		return models.PickDraw, decimal.Zero, true
	case strings.Contains(l, "over"):
		return models.PickOverGoals, parseGoalLine(l), true
	case strings.Contains(l, "under"):
		return models.PickUnderGoals, parseGoalLine(l), true
	case strings.Contains(l, "btts yes"), l == "btts":
		return models.PickBTTSYes, decimal.Zero, true
	case strings.Contains(l, "btts no"):
		return models.PickBTTSNo, decimal.Zero, true
	default:
		return "", decimal.Zero, false
	}
}

// parseGoalLine extracts the numeric threshold from labels like "over 2.5 goals".
func parseGoalLine(label string) decimal.Decimal {
	for _, field := range strings.Fields(label) {
		if d, err := decimal.NewFromString(field); err == nil {
			return d
		}
	}
	return decimal.NewFromFloat(2.5)
}
