// Package scheduler drives the daily ticket lifecycle: settle yesterday's
// tickets, then generate today's.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/ledger"
)

const dateLayout = "2006-01-02"

// Scheduler triggers ledger operations once per day at configured UTC hours.
// The ledger's own idempotence makes repeated triggers on the same day safe.
type Scheduler struct {
	ledger        *ledger.Ledger
	resolveHour   int
	generateHour  int
	checkInterval time.Duration
	logger        zerolog.Logger

	lastResolved  string // date the resolve run last fired for
	lastGenerated string
}

// New creates a daily scheduler.
func New(l *ledger.Ledger, resolveHour, generateHour int, checkInterval time.Duration, logger zerolog.Logger) *Scheduler {
	if checkInterval <= 0 {
		checkInterval = time.Minute
	}
	return &Scheduler{
		ledger:        l,
		resolveHour:   resolveHour,
		generateHour:  generateHour,
		checkInterval: checkInterval,
		logger:        logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start runs the scheduling loop until the context is cancelled. An immediate
// tick on start catches up after restarts.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			s.logger.Info().Msg("stopping scheduler")
			return nil
		}
	}
}

// tick fires whichever daily operations are due.
func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now().UTC()
	today := now.Format(dateLayout)

	if now.Hour() >= s.resolveHour && s.lastResolved != today {
		summary, err := s.ledger.ResolveTickets(ctx, "")
		if err != nil {
			s.logger.Error().Err(err).Msg("scheduled settlement failed")
		} else {
			s.lastResolved = today
			s.logger.Info().
				Str("date", summary.Date).
				Int("settled", len(summary.Results)).
				Msg("scheduled settlement complete")
		}
	}

	if now.Hour() >= s.generateHour && s.lastGenerated != today {
		if _, err := s.ledger.GenerateDailyTickets(ctx, nil); err != nil {
			s.logger.Error().Err(err).Msg("scheduled generation failed")
		} else {
			s.lastGenerated = today
			s.logger.Info().Str("date", today).Msg("scheduled generation complete")
		}
	}
}
