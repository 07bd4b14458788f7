// Package oddsmath provides pure decimal-odds arithmetic: implied
// probabilities, accumulator combined odds and arbitrage margins.
package oddsmath

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidOdds is returned for decimal odds <= 1.0 or empty sequences.
var ErrInvalidOdds = errors.New("oddsmath: odds must be greater than 1.0")

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ImpliedProbability converts decimal odds to the break-even win probability.
// Example: 2.50 odds = 1/2.50 = 0.40.
func ImpliedProbability(odds decimal.Decimal) (decimal.Decimal, error) {
	if odds.LessThanOrEqual(one) {
		return decimal.Zero, ErrInvalidOdds
	}
	return one.Div(odds), nil
}

// CombinedOdds returns the product of all leg odds of an accumulator.
func CombinedOdds(legs []decimal.Decimal) (decimal.Decimal, error) {
	if len(legs) == 0 {
		return decimal.Zero, ErrInvalidOdds
	}
	combined := one
	for _, odds := range legs {
		if odds.LessThanOrEqual(one) {
			return decimal.Zero, ErrInvalidOdds
		}
		combined = combined.Mul(odds)
	}
	return combined, nil
}

// ArbitragePercentage computes (sum of 1/odds - 1) * 100 across all outcomes
// of a market. Negative means a guaranteed-profit arbitrage exists, zero is a
// fair book, positive is the bookmaker margin. Works identically for 2-way
// and n-way markets.
func ArbitragePercentage(odds []decimal.Decimal) (decimal.Decimal, error) {
	if len(odds) == 0 {
		return decimal.Zero, ErrInvalidOdds
	}
	sum := decimal.Zero
	for _, o := range odds {
		p, err := ImpliedProbability(o)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(p)
	}
	return sum.Sub(one).Mul(hundred), nil
}
