package oddsmath

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestImpliedProbability_Success tests probability conversion for valid odds
func TestImpliedProbability_Success(t *testing.T) {
	tests := []struct {
		name string
		odds float64
		want float64
	}{
		{"evens", 2.0, 0.5},
		{"short favourite", 1.25, 0.8},
		{"outsider", 4.0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ImpliedProbability(decimal.NewFromFloat(tt.odds))
			require.NoError(t, err)
			assert.True(t, p.Equal(decimal.NewFromFloat(tt.want)),
				"got %s want %v", p, tt.want)
		})
	}
}

// TestImpliedProbability_InvalidOdds tests rejection of odds <= 1.0
func TestImpliedProbability_InvalidOdds(t *testing.T) {
	for _, odds := range []float64{1.0, 0.5, 0, -2.0} {
		_, err := ImpliedProbability(decimal.NewFromFloat(odds))
		assert.ErrorIs(t, err, ErrInvalidOdds, "odds=%v", odds)
	}
}

// TestCombinedOdds_Success tests the accumulator product
func TestCombinedOdds_Success(t *testing.T) {
	legs := []decimal.Decimal{
		decimal.NewFromFloat(1.5),
		decimal.NewFromFloat(2.0),
		decimal.NewFromFloat(1.2),
	}

	combined, err := CombinedOdds(legs)

	require.NoError(t, err)
	assert.True(t, combined.Equal(decimal.NewFromFloat(3.6)), "got %s", combined)
}

// TestCombinedOdds_Empty tests rejection of an empty leg list
func TestCombinedOdds_Empty(t *testing.T) {
	_, err := CombinedOdds(nil)
	assert.ErrorIs(t, err, ErrInvalidOdds)
}

// TestCombinedOdds_InvalidLeg tests rejection when any leg has odds <= 1.0
func TestCombinedOdds_InvalidLeg(t *testing.T) {
	legs := []decimal.Decimal{
		decimal.NewFromFloat(1.5),
		decimal.NewFromFloat(1.0),
	}

	_, err := CombinedOdds(legs)

	assert.ErrorIs(t, err, ErrInvalidOdds)
}

// TestCombinedOdds_OrderIndependent tests that permutations of the same legs
// yield the same combined odds
func TestCombinedOdds_OrderIndependent(t *testing.T) {
	legs := []decimal.Decimal{
		decimal.NewFromFloat(1.45),
		decimal.NewFromFloat(2.10),
		decimal.NewFromFloat(1.72),
		decimal.NewFromFloat(3.33),
	}

	want, err := CombinedOdds(legs)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]decimal.Decimal(nil), legs...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := CombinedOdds(shuffled)
		require.NoError(t, err)
		assert.True(t, got.Sub(want).Abs().LessThan(decimal.NewFromFloat(1e-9)),
			"permutation %d: got %s want %s", i, got, want)
	}
}

// TestArbitragePercentage_FairBook tests that a fair two-way book is exactly zero
func TestArbitragePercentage_FairBook(t *testing.T) {
	odds := []decimal.Decimal{
		decimal.NewFromFloat(2.0),
		decimal.NewFromFloat(2.0),
	}

	pct, err := ArbitragePercentage(odds)

	require.NoError(t, err)
	assert.True(t, pct.Abs().LessThan(decimal.NewFromFloat(1e-9)), "got %s", pct)
}

// TestArbitragePercentage_ArbitrageExists tests a cross-book opportunity
func TestArbitragePercentage_ArbitrageExists(t *testing.T) {
	// 1/2.10 + 1/2.10 = 0.952... -> negative margin
	odds := []decimal.Decimal{
		decimal.NewFromFloat(2.10),
		decimal.NewFromFloat(2.10),
	}

	pct, err := ArbitragePercentage(odds)

	require.NoError(t, err)
	assert.True(t, pct.IsNegative(), "got %s", pct)
}

// TestArbitragePercentage_BookmakerMargin tests a typical overround book
func TestArbitragePercentage_BookmakerMargin(t *testing.T) {
	odds := []decimal.Decimal{
		decimal.NewFromFloat(1.90),
		decimal.NewFromFloat(1.90),
	}

	pct, err := ArbitragePercentage(odds)

	require.NoError(t, err)
	assert.True(t, pct.IsPositive(), "got %s", pct)
}

// TestArbitragePercentage_MonotoneInOdds tests that raising any single odds
// value strictly lowers the percentage (the book moves toward arbitrage)
func TestArbitragePercentage_MonotoneInOdds(t *testing.T) {
	base := []decimal.Decimal{
		decimal.NewFromFloat(1.90),
		decimal.NewFromFloat(3.40),
		decimal.NewFromFloat(4.50),
	}

	prev, err := ArbitragePercentage(base)
	require.NoError(t, err)

	for _, bump := range []float64{0.1, 0.5, 1.0, 5.0} {
		raised := append([]decimal.Decimal(nil), base...)
		raised[1] = base[1].Add(decimal.NewFromFloat(bump))

		pct, err := ArbitragePercentage(raised)
		require.NoError(t, err)
		assert.True(t, pct.LessThan(prev), "bump %v: %s not < %s", bump, pct, prev)
		prev = pct
	}
}

// TestArbitragePercentage_NWayMarket tests a three-way market uses the same
// pure summation as two-way
func TestArbitragePercentage_NWayMarket(t *testing.T) {
	// Fair three-way book: all outcomes at 3.0
	odds := []decimal.Decimal{
		decimal.NewFromInt(3),
		decimal.NewFromInt(3),
		decimal.NewFromInt(3),
	}

	pct, err := ArbitragePercentage(odds)

	require.NoError(t, err)
	assert.True(t, pct.Abs().LessThan(decimal.NewFromFloat(1e-9)), "got %s", pct)
}

// TestArbitragePercentage_InvalidInput tests rejection of bad sequences
func TestArbitragePercentage_InvalidInput(t *testing.T) {
	_, err := ArbitragePercentage(nil)
	assert.ErrorIs(t, err, ErrInvalidOdds)

	_, err = ArbitragePercentage([]decimal.Decimal{decimal.NewFromFloat(0.9)})
	assert.ErrorIs(t, err, ErrInvalidOdds)
}
