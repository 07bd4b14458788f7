// Package staking sizes ticket stakes from bankroll, base percentage and the
// ledger's current win/loss streak.
package staking

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	minStake    = decimal.NewFromInt(10)          // currency floor
	maxFraction = decimal.NewFromFloat(0.05)      // 5% of bankroll cap
	percentCap  = decimal.NewFromInt(3)           // boosted percentage never exceeds 3%
	hundred     = decimal.NewFromInt(100)
)

// Sizer computes stakes with streak-adaptive percentages.
type Sizer struct {
	logger zerolog.Logger
}

// NewSizer creates a stake sizer.
func NewSizer(logger zerolog.Logger) *Sizer {
	return &Sizer{
		logger: logger.With().Str("component", "stake_sizer").Logger(),
	}
}

// ComputeStake derives the stake for one ticket.
//
// The base percentage is scaled by the streak: halved after 3+ consecutive
// losses, cut 25% after any loss streak, boosted 25% (capped at 3%) after 3+
// consecutive wins. The raw stake is rounded to 2 decimals and clamped to
// [10, 5% of bankroll]. When the two bounds conflict (bankroll < 200) the
// floor wins, matching the upstream behavior even though it breaches the
// 5% risk cap.
func (s *Sizer) ComputeStake(bankroll, basePercent decimal.Decimal, streak int) decimal.Decimal {
	percent := effectivePercent(basePercent, streak)

	stake := bankroll.Mul(percent).Div(hundred).Round(2)

	ceiling := bankroll.Mul(maxFraction)
	if stake.GreaterThan(ceiling) {
		stake = ceiling
	}
	if stake.LessThan(minStake) {
		stake = minStake
	}

	s.logger.Debug().
		Str("bankroll", bankroll.String()).
		Str("base_percent", basePercent.String()).
		Str("effective_percent", percent.String()).
		Int("streak", streak).
		Str("stake", stake.String()).
		Msg("computed stake")

	return stake
}

// effectivePercent applies the streak adjustment rule to the base percentage.
func effectivePercent(basePercent decimal.Decimal, streak int) decimal.Decimal {
	switch {
	case streak <= -3:
		return basePercent.Mul(decimal.NewFromFloat(0.5))
	case streak <= -1:
		return basePercent.Mul(decimal.NewFromFloat(0.75))
	case streak >= 3:
		boosted := basePercent.Mul(decimal.NewFromFloat(1.25))
		if boosted.GreaterThan(percentCap) {
			return percentCap
		}
		return boosted
	default:
		return basePercent
	}
}
