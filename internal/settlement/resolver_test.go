package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/mocks"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// testResolverSetup is a helper struct to hold test dependencies
type testResolverSetup struct {
	mockSource *mocks.MockResultSource
	resolver   *Resolver
	ctrl       *gomock.Controller
}

// setupTestResolver creates a resolver with a mocked result source
func setupTestResolver(t *testing.T) *testResolverSetup {
	ctrl := gomock.NewController(t)
	mockSource := mocks.NewMockResultSource(ctrl)

	return &testResolverSetup{
		mockSource: mockSource,
		resolver:   NewResolver(mockSource, 2*time.Second, zerolog.Nop()),
		ctrl:       ctrl,
	}
}

// cleanup cleans up test resources
func (s *testResolverSetup) cleanup() {
	s.ctrl.Finish()
}

func leg(pickType models.PickType, goalLine float64) *models.AccumulatorLeg {
	l := &models.AccumulatorLeg{Pick: models.Pick{
		HomeTeam:   "Arsenal",
		AwayTeam:   "Fulham",
		Type:       pickType,
		Odds:       decimal.NewFromFloat(1.8),
		Confidence: 7,
	}}
	if goalLine > 0 {
		l.GoalLine = decimal.NewFromFloat(goalLine)
	}
	return l
}

func score(home, away int) *models.FinalScore {
	return &models.FinalScore{Home: home, Away: away}
}

// TestClassifyLeg tests outcome classification for every pick type
func TestClassifyLeg(t *testing.T) {
	tests := []struct {
		name  string
		leg   *models.AccumulatorLeg
		score *models.FinalScore
		want  models.LegResult
	}{
		{"home win, home wins", leg(models.PickHomeWin, 0), score(2, 1), models.LegWon},
		{"home win, draw", leg(models.PickHomeWin, 0), score(1, 1), models.LegLost},
		{"home win, away wins", leg(models.PickHomeWin, 0), score(0, 3), models.LegLost},
		{"away win, away wins", leg(models.PickAwayWin, 0), score(0, 2), models.LegWon},
		{"away win, home wins", leg(models.PickAwayWin, 0), score(1, 0), models.LegLost},
		{"draw, drawn", leg(models.PickDraw, 0), score(2, 2), models.LegWon},
		{"draw, decided", leg(models.PickDraw, 0), score(2, 1), models.LegLost},
		{"over 2.5, three goals", leg(models.PickOverGoals, 2.5), score(2, 1), models.LegWon},
		{"over 2.5, two goals", leg(models.PickOverGoals, 2.5), score(1, 1), models.LegLost},
		{"over default line on three goals", leg(models.PickOverGoals, 0), score(3, 0), models.LegWon},
		{"over 3.5, three goals", leg(models.PickOverGoals, 3.5), score(2, 1), models.LegLost},
		{"under 2.5, two goals", leg(models.PickUnderGoals, 2.5), score(1, 1), models.LegWon},
		{"under 2.5, three goals", leg(models.PickUnderGoals, 2.5), score(2, 1), models.LegLost},
		{"under default line on two goals", leg(models.PickUnderGoals, 0), score(1, 1), models.LegWon},
		{"btts yes, both score", leg(models.PickBTTSYes, 0), score(1, 1), models.LegWon},
		{"btts yes, clean sheet", leg(models.PickBTTSYes, 0), score(2, 0), models.LegLost},
		{"btts no, clean sheet", leg(models.PickBTTSNo, 0), score(2, 0), models.LegWon},
		{"btts no, both score", leg(models.PickBTTSNo, 0), score(2, 1), models.LegLost},
		{"btts no, goalless", leg(models.PickBTTSNo, 0), score(0, 0), models.LegWon},
		{"missing score voids", leg(models.PickHomeWin, 0), nil, models.LegVoid},
		{"unknown pick type voids", leg(models.PickType("corner_count"), 0), score(2, 1), models.LegVoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLeg(tt.leg, tt.score))
		})
	}
}

// TestResolveLegs_AlignedWithLegs tests that results are index-aligned with
// the ticket legs
func TestResolveLegs_AlignedWithLegs(t *testing.T) {
	setup := setupTestResolver(t)
	defer setup.cleanup()

	ticket := &models.Ticket{
		ID:   "ACC-2x-test",
		Date: "2025-03-14",
		Legs: []models.AccumulatorLeg{
			{Pick: models.Pick{HomeTeam: "Arsenal", AwayTeam: "Fulham", Type: models.PickHomeWin, Odds: decimal.NewFromFloat(1.5)}},
			{Pick: models.Pick{HomeTeam: "Lyon", AwayTeam: "Nice", Type: models.PickAwayWin, Odds: decimal.NewFromFloat(1.6)}},
		},
	}

	setup.mockSource.EXPECT().
		GetFinalScore(gomock.Any(), "Arsenal", "Fulham", "2025-03-14").
		Return(score(2, 0), nil)
	setup.mockSource.EXPECT().
		GetFinalScore(gomock.Any(), "Lyon", "Nice", "2025-03-14").
		Return(score(1, 0), nil)

	results, err := setup.resolver.ResolveLegs(context.Background(), ticket)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, models.LegWon, results[0])
	assert.Equal(t, models.LegLost, results[1])
}

// TestResolveLegs_LookupErrorVoidsLeg tests the fail-open path: a lookup
// error settles the leg void rather than failing the ticket
func TestResolveLegs_LookupErrorVoidsLeg(t *testing.T) {
	setup := setupTestResolver(t)
	defer setup.cleanup()

	ticket := &models.Ticket{
		ID:   "ACC-2x-test",
		Date: "2025-03-14",
		Legs: []models.AccumulatorLeg{
			{Pick: models.Pick{HomeTeam: "Arsenal", AwayTeam: "Fulham", Type: models.PickHomeWin, Odds: decimal.NewFromFloat(1.5)}},
			{Pick: models.Pick{HomeTeam: "Lyon", AwayTeam: "Nice", Type: models.PickHomeWin, Odds: decimal.NewFromFloat(1.6)}},
		},
	}

	setup.mockSource.EXPECT().
		GetFinalScore(gomock.Any(), "Arsenal", "Fulham", "2025-03-14").
		Return(nil, errors.New("provider unavailable"))
	setup.mockSource.EXPECT().
		GetFinalScore(gomock.Any(), "Lyon", "Nice", "2025-03-14").
		Return(score(3, 1), nil)

	results, err := setup.resolver.ResolveLegs(context.Background(), ticket)
	require.NoError(t, err)
	assert.Equal(t, models.LegVoid, results[0])
	assert.Equal(t, models.LegWon, results[1])
}

// TestResolveLegs_UnfinishedMatchVoids tests that a nil score with no error
// settles void
func TestResolveLegs_UnfinishedMatchVoids(t *testing.T) {
	setup := setupTestResolver(t)
	defer setup.cleanup()

	ticket := &models.Ticket{
		ID:   "ACC-2x-test",
		Date: "2025-03-14",
		Legs: []models.AccumulatorLeg{
			{Pick: models.Pick{HomeTeam: "Arsenal", AwayTeam: "Fulham", Type: models.PickHomeWin, Odds: decimal.NewFromFloat(1.5)}},
		},
	}

	setup.mockSource.EXPECT().
		GetFinalScore(gomock.Any(), "Arsenal", "Fulham", "2025-03-14").
		Return(nil, nil)

	results, err := setup.resolver.ResolveLegs(context.Background(), ticket)
	require.NoError(t, err)
	assert.Equal(t, models.LegVoid, results[0])
}

// TestResolveLegs_SlowLookupTimesOut tests the per-leg timeout bound
func TestResolveLegs_SlowLookupTimesOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockResultSource(ctrl)
	resolver := NewResolver(mockSource, 20*time.Millisecond, zerolog.Nop())

	ticket := &models.Ticket{
		ID:   "ACC-2x-test",
		Date: "2025-03-14",
		Legs: []models.AccumulatorLeg{
			{Pick: models.Pick{HomeTeam: "Arsenal", AwayTeam: "Fulham", Type: models.PickHomeWin, Odds: decimal.NewFromFloat(1.5)}},
		},
	}

	mockSource.EXPECT().
		GetFinalScore(gomock.Any(), "Arsenal", "Fulham", "2025-03-14").
		DoAndReturn(func(ctx context.Context, _, _, _ string) (*models.FinalScore, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	results, err := resolver.ResolveLegs(context.Background(), ticket)
	require.NoError(t, err)
	assert.Equal(t, models.LegVoid, results[0])
}
