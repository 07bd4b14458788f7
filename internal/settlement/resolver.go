// Package settlement maps finished match scores onto leg outcomes.
package settlement

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// defaultGoalLine applies when an over/under pick carries no explicit line.
var defaultGoalLine = decimal.NewFromFloat(2.5)

// ResultSource looks up the final score of a finished match.
// A nil score with a nil error means the result is unavailable (match not
// finished, lookup miss) and the leg settles void.
type ResultSource interface {
	GetFinalScore(ctx context.Context, homeTeam, awayTeam, date string) (*models.FinalScore, error)
}

// Resolver settles ticket legs against the result source.
type Resolver struct {
	source  ResultSource
	timeout time.Duration
	logger  zerolog.Logger
}

// NewResolver creates a settlement resolver. Each lookup is bounded by timeout
// and resolves to void on timeout or error, never to a failure.
func NewResolver(source ResultSource, timeout time.Duration, logger zerolog.Logger) *Resolver {
	return &Resolver{
		source:  source,
		timeout: timeout,
		logger:  logger.With().Str("component", "settlement_resolver").Logger(),
	}
}

// ResolveLegs looks up every leg of the ticket concurrently and classifies the
// outcomes. All lookups complete before the function returns; there is no
// partial settlement. The returned slice is index-aligned with ticket.Legs.
func (r *Resolver) ResolveLegs(ctx context.Context, ticket *models.Ticket) ([]models.LegResult, error) {
	results := make([]models.LegResult, len(ticket.Legs))

	var wg sync.WaitGroup
	for i := range ticket.Legs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.resolveLeg(ctx, ticket, &ticket.Legs[i])
		}(i)
	}
	wg.Wait()

	return results, nil
}

// resolveLeg fetches one leg's score with a bounded timeout.
func (r *Resolver) resolveLeg(ctx context.Context, ticket *models.Ticket, leg *models.AccumulatorLeg) models.LegResult {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	score, err := r.source.GetFinalScore(lookupCtx, leg.HomeTeam, leg.AwayTeam, ticket.Date)
	if err != nil {
		// Fail-open: missing data voids the leg, it never fails the ticket.
		r.logger.Warn().
			Err(err).
			Str("ticket_id", ticket.ID).
			Str("date", ticket.Date).
			Str("home_team", leg.HomeTeam).
			Str("away_team", leg.AwayTeam).
			Msg("result lookup failed, settling leg void")
		return models.LegVoid
	}

	result := ClassifyLeg(leg, score)

	r.logger.Debug().
		Str("ticket_id", ticket.ID).
		Str("home_team", leg.HomeTeam).
		Str("away_team", leg.AwayTeam).
		Str("pick", string(leg.Type)).
		Str("result", string(result)).
		Msg("resolved leg")

	return result
}

// ClassifyLeg maps a leg's pick against a final score. A nil score means the
// result could not be determined and the leg is void.
func ClassifyLeg(leg *models.AccumulatorLeg, score *models.FinalScore) models.LegResult {
	if score == nil {
		return models.LegVoid
	}

	home, away := score.Home, score.Away
	total := decimal.NewFromInt(int64(home + away))

	line := leg.GoalLine
	if line.IsZero() {
		line = defaultGoalLine
	}

	switch leg.Type {
	case models.PickHomeWin:
		return wonIf(home > away)
	case models.PickAwayWin:
		return wonIf(away > home)
	case models.PickDraw:
		return wonIf(home == away)
	case models.PickOverGoals:
		return wonIf(total.GreaterThan(line))
	case models.PickUnderGoals:
		return wonIf(total.LessThan(line))
	case models.PickBTTSYes:
		return wonIf(home > 0 && away > 0)
	case models.PickBTTSNo:
		return wonIf(home == 0 || away == 0)
	default:
		return models.LegVoid
	}
}

func wonIf(cond bool) models.LegResult {
	if cond {
		return models.LegWon
	}
	return models.LegLost
}
