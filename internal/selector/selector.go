// Package selector assembles minimal-leg accumulators from a confidence-ranked
// candidate pool.
package selector

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// ErrNoCandidates is returned when the candidate pool is empty.
var ErrNoCandidates = errors.New("selector: no candidate picks available")

// Selection is the outcome of a greedy selection run. Selection is best-effort:
// when the pool is exhausted before the target is met, ReachedTarget is false
// and callers decide how to proceed.
type Selection struct {
	Legs          []models.AccumulatorLeg
	CombinedOdds  decimal.Decimal // exact product of selected leg odds
	ReachedTarget bool
}

// Selector greedily builds accumulators toward a target combined odds.
type Selector struct {
	logger zerolog.Logger
}

// New creates a leg selector.
func New(logger zerolog.Logger) *Selector {
	return &Selector{
		logger: logger.With().Str("component", "leg_selector").Logger(),
	}
}

// SelectToTarget sorts candidates by confidence (stable, descending; ties keep
// the upstream order) and appends legs until the running combined odds reach
// the target or the pool is exhausted. The first leg is always appended before
// the threshold is checked, so a target <= 1.0 yields the single
// highest-confidence leg.
func (s *Selector) SelectToTarget(candidates []models.Pick, target decimal.Decimal) (*Selection, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	ranked := append([]models.Pick(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	sel := &Selection{CombinedOdds: decimal.NewFromInt(1)}
	for _, pick := range ranked {
		sel.Legs = append(sel.Legs, models.AccumulatorLeg{Pick: pick})
		sel.CombinedOdds = sel.CombinedOdds.Mul(pick.Odds)
		if sel.CombinedOdds.GreaterThanOrEqual(target) {
			sel.ReachedTarget = true
			break
		}
	}

	if !sel.ReachedTarget {
		s.logger.Warn().
			Str("target", target.String()).
			Str("combined_odds", sel.CombinedOdds.String()).
			Int("legs", len(sel.Legs)).
			Msg("candidate pool exhausted before reaching target odds")
	}

	return sel, nil
}
