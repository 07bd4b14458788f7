// Package ledger owns the daily accumulator ticket lifecycle: generation,
// settlement, bankroll and streak accounting.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/metrics"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/selector"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/staking"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/store"
)

// ErrInsufficientCandidates is returned when the recommendation pool is too
// small to build safe tickets. The caller may retry later.
var ErrInsufficientCandidates = errors.New("ledger: insufficient candidate picks")

const dateLayout = "2006-01-02"

// streakWindow bounds how far back the streak recompute scans.
const streakWindow = 10

// Ledger is the ticket lifecycle state machine. All operations serialise on an
// internal mutex so the same-day idempotence check holds under concurrent
// callers; state follows a load -> mutate -> atomic save cycle.
type Ledger struct {
	mu            sync.Mutex
	store         Store
	candidates    CandidateSource
	resolver      TicketResolver
	sizer         *staking.Sizer
	selector      *selector.Selector
	minCandidates int
	now           func() time.Time
	logger        zerolog.Logger
}

// Config holds ledger construction parameters.
type Config struct {
	MinCandidates int              // minimum pool size for generation (default 3)
	Now           func() time.Time // injectable clock, defaults to time.Now
}

// New creates a ticket ledger.
func New(
	st Store,
	candidates CandidateSource,
	resolver TicketResolver,
	sizer *staking.Sizer,
	sel *selector.Selector,
	cfg Config,
	logger zerolog.Logger,
) *Ledger {
	if cfg.MinCandidates <= 0 {
		cfg.MinCandidates = 3
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Ledger{
		store:         st,
		candidates:    candidates,
		resolver:      resolver,
		sizer:         sizer,
		selector:      sel,
		minCandidates: cfg.MinCandidates,
		now:           cfg.Now,
		logger:        logger.With().Str("component", "ticket_ledger").Logger(),
	}
}

// loadState loads the ledger document, creating it with defaults on first
// access. Persistence failures are fatal and surfaced.
func (l *Ledger) loadState(ctx context.Context) (*models.LedgerState, error) {
	state, err := l.store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		state = models.NewLedgerState()
		if err := l.store.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to persist initial ledger state: %w", err)
		}
		l.logger.Info().
			Str("bankroll", state.Bankroll.String()).
			Msg("created ledger state with defaults")
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}
	return state, nil
}

// GenerateDailyTickets builds today's two accumulator tickets. Idempotent per
// calendar day: if both tickets already exist for today they are returned
// unchanged. A non-nil bankroll overrides the persisted bankroll for stake
// sizing and becomes the new snapshot.
func (l *Ledger) GenerateDailyTickets(ctx context.Context, bankroll *decimal.Decimal) (*models.TicketPair, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, err := l.loadState(ctx)
	if err != nil {
		return nil, err
	}

	today := l.now().UTC().Format(dateLayout)

	if existing := state.TicketsForDate(today); len(existing) >= 2 {
		l.logger.Info().Str("date", today).Msg("tickets already generated for today")
		return pairFromTickets(existing), nil
	}

	currentBankroll := state.Bankroll
	if bankroll != nil {
		currentBankroll = *bankroll
	}

	picks, err := l.candidates.GetCandidatePicks(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate picks: %w", err)
	}
	if len(picks) < l.minCandidates {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientCandidates, len(picks), l.minCandidates)
	}

	// Both tickets are built from the same pool; legs may be shared.
	ticket2x, err := l.buildTicket(models.TicketType2x, today, picks, currentBankroll, state)
	if err != nil {
		return nil, err
	}
	ticket3x, err := l.buildTicket(models.TicketType3x, today, picks, currentBankroll, state)
	if err != nil {
		return nil, err
	}

	state.History = append(state.History, *ticket2x, *ticket3x)
	state.Bankroll = currentBankroll
	state.LastGenerated = l.now().UTC()

	if err := l.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist ledger state: %w", err)
	}

	metrics.TicketsGenerated.WithLabelValues(string(models.TicketType2x)).Inc()
	metrics.TicketsGenerated.WithLabelValues(string(models.TicketType3x)).Inc()
	metrics.Bankroll.Set(state.Bankroll.InexactFloat64())

	l.logger.Info().
		Str("date", today).
		Str("odds_2x", ticket2x.DisplayOdds().String()).
		Str("stake_2x", ticket2x.Stake.String()).
		Str("odds_3x", ticket3x.DisplayOdds().String()).
		Str("stake_3x", ticket3x.Stake.String()).
		Msg("generated daily tickets")

	return &models.TicketPair{Ticket2x: ticket2x, Ticket3x: ticket3x}, nil
}

// buildTicket selects legs toward the type's target odds and prices the ticket.
func (l *Ledger) buildTicket(
	ticketType models.TicketType,
	date string,
	picks []models.Pick,
	bankroll decimal.Decimal,
	state *models.LedgerState,
) (*models.Ticket, error) {
	sel, err := l.selector.SelectToTarget(picks, ticketType.TargetOdds())
	if err != nil {
		return nil, fmt.Errorf("failed to select legs for %s ticket: %w", ticketType, err)
	}
	if !sel.ReachedTarget {
		l.logger.Warn().
			Str("type", string(ticketType)).
			Str("combined_odds", sel.CombinedOdds.String()).
			Msg("ticket under target odds, proceeding best-effort")
	}

	stake := l.sizer.ComputeStake(bankroll, state.StakePercent(ticketType), state.Streak)

	return &models.Ticket{
		ID:              fmt.Sprintf("ACC-%s-%s-%s", strings.ToUpper(string(ticketType)), date, uuid.New().String()[:8]),
		Type:            ticketType,
		Date:            date,
		Legs:            sel.Legs,
		CombinedOdds:    sel.CombinedOdds,
		ReachedTarget:   sel.ReachedTarget,
		Stake:           stake,
		PotentialReturn: stake.Mul(sel.CombinedOdds).Round(2),
		PotentialProfit: stake.Mul(sel.CombinedOdds.Sub(decimal.NewFromInt(1))).Round(2),
		Status:          models.TicketPending,
		CreatedAt:       l.now().UTC(),
	}, nil
}

// ResolveTickets settles all pending tickets for the given date (defaults to
// the prior calendar day). Every leg lookup completes before a ticket's status
// is finalised; terminal tickets are never revisited.
func (l *Ledger) ResolveTickets(ctx context.Context, date string) (*models.SettlementSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, err := l.loadState(ctx)
	if err != nil {
		return nil, err
	}

	if date == "" {
		date = l.now().UTC().AddDate(0, 0, -1).Format(dateLayout)
	}

	summary := &models.SettlementSummary{Date: date}

	for i := range state.History {
		ticket := &state.History[i]
		if ticket.Date != date || ticket.Status != models.TicketPending {
			continue
		}

		results, err := l.resolver.ResolveLegs(ctx, ticket)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve legs for ticket %s: %w", ticket.ID, err)
		}

		l.settleTicket(ticket, results)

		state.Bankroll = state.Bankroll.Add(ticket.Result.PnL)
		state.TotalPnL = state.TotalPnL.Add(ticket.Result.PnL)
		l.updateWinRate(state, ticket.Type)

		metrics.TicketsSettled.WithLabelValues(string(ticket.Type), string(ticket.Status)).Inc()

		summary.Results = append(summary.Results, models.TicketSettlement{
			TicketID: ticket.ID,
			Type:     ticket.Type,
			Status:   ticket.Status,
			LegsWon:  ticket.Result.LegsWon,
			LegsLost: ticket.Result.LegsLost,
			LegsVoid: ticket.Result.LegsVoid,
			PnL:      ticket.Result.PnL,
		})

		l.logger.Info().
			Str("ticket_id", ticket.ID).
			Str("status", string(ticket.Status)).
			Int("legs_won", ticket.Result.LegsWon).
			Int("legs_lost", ticket.Result.LegsLost).
			Int("legs_void", ticket.Result.LegsVoid).
			Str("pnl", ticket.Result.PnL.String()).
			Msg("settled ticket")
	}

	state.Streak = recomputeStreak(state.History)

	if len(summary.Results) > 0 {
		if err := l.store.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to persist ledger state: %w", err)
		}
		metrics.Bankroll.Set(state.Bankroll.InexactFloat64())
	}

	summary.Bankroll = state.Bankroll
	summary.TotalPnL = state.TotalPnL
	summary.Streak = state.Streak

	return summary, nil
}

// settleTicket derives the ticket status and P&L from leg results.
//
// All legs won => won, paid at the full combined odds. Any lost leg => lost,
// stake forfeit. Otherwise partial: all legs void is a no-op refund; a mix of
// won and void legs settles with void legs priced at odds 1.0, so the payout
// is the stake times the product of the won legs' odds only.
func (l *Ledger) settleTicket(ticket *models.Ticket, results []models.LegResult) {
	var won, lost, void int
	wonOdds := decimal.NewFromInt(1)

	for i, result := range results {
		ticket.Legs[i].Result = result
		switch result {
		case models.LegWon:
			won++
			wonOdds = wonOdds.Mul(ticket.Legs[i].Odds)
		case models.LegLost:
			lost++
		default:
			void++
		}
	}

	res := &models.TicketResult{LegsWon: won, LegsLost: lost, LegsVoid: void}

	switch {
	case won == len(ticket.Legs):
		ticket.Status = models.TicketWon
		res.ActualReturn = ticket.PotentialReturn
		res.PnL = ticket.PotentialProfit
	case lost > 0:
		ticket.Status = models.TicketLost
		res.ActualReturn = decimal.Zero
		res.PnL = ticket.Stake.Neg()
	case won == 0:
		// All legs void: refund, no bankroll movement.
		ticket.Status = models.TicketPartial
		res.ActualReturn = ticket.Stake
		res.PnL = decimal.Zero
	default:
		ticket.Status = models.TicketPartial
		res.ActualReturn = ticket.Stake.Mul(wonOdds).Round(2)
		res.PnL = res.ActualReturn.Sub(ticket.Stake)
	}

	ticket.Result = res
}

// updateWinRate recomputes the per-type win rate over settled tickets.
func (l *Ledger) updateWinRate(state *models.LedgerState, ticketType models.TicketType) {
	var settled, wins int
	for i := range state.History {
		t := &state.History[i]
		if t.Type != ticketType || !t.Status.IsTerminal() {
			continue
		}
		settled++
		if t.Status == models.TicketWon {
			wins++
		}
	}

	rate := 0.0
	if settled > 0 {
		rate = float64(wins) / float64(settled) * 100
	}
	if ticketType == models.TicketType3x {
		state.WinRate3x = rate
	} else {
		state.WinRate2x = rate
	}
}

// recomputeStreak scans backward over the most recent won/lost tickets
// (voids and partials are ambiguous and excluded) extending the streak while
// the sign is consistent.
func recomputeStreak(history []models.Ticket) int {
	var tail []models.TicketStatus
	for i := range history {
		if history[i].Status == models.TicketWon || history[i].Status == models.TicketLost {
			tail = append(tail, history[i].Status)
		}
	}
	if len(tail) > streakWindow {
		tail = tail[len(tail)-streakWindow:]
	}

	streak := 0
	for i := len(tail) - 1; i >= 0; i-- {
		if i == len(tail)-1 {
			if tail[i] == models.TicketWon {
				streak = 1
			} else {
				streak = -1
			}
			continue
		}
		if (streak > 0 && tail[i] == models.TicketWon) || (streak < 0 && tail[i] == models.TicketLost) {
			if streak > 0 {
				streak++
			} else {
				streak--
			}
			continue
		}
		break
	}
	return streak
}

// Status is the read-model returned by GetStatus.
type Status struct {
	Bankroll       decimal.Decimal `json:"bankroll"`
	TotalPnL       decimal.Decimal `json:"total_pnl"`
	Streak         int             `json:"streak"`
	WinRate2x      float64         `json:"win_rate_2x"`
	WinRate3x      float64         `json:"win_rate_3x"`
	TodayTickets   []models.Ticket `json:"today_tickets"`
	TotalTickets   int             `json:"total_tickets"`
	StakePercent2x decimal.Decimal `json:"stake_percent_2x"`
	StakePercent3x decimal.Decimal `json:"stake_percent_3x"`
	LastGenerated  time.Time       `json:"last_generated"`
}

// GetStatus returns the current ledger status and today's tickets.
func (l *Ledger) GetStatus(ctx context.Context) (*Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, err := l.loadState(ctx)
	if err != nil {
		return nil, err
	}

	today := l.now().UTC().Format(dateLayout)
	var todayTickets []models.Ticket
	for i := range state.History {
		if state.History[i].Date == today {
			todayTickets = append(todayTickets, state.History[i])
		}
	}

	return &Status{
		Bankroll:       state.Bankroll,
		TotalPnL:       state.TotalPnL,
		Streak:         state.Streak,
		WinRate2x:      math.Round(state.WinRate2x*10) / 10,
		WinRate3x:      math.Round(state.WinRate3x*10) / 10,
		TodayTickets:   todayTickets,
		TotalTickets:   len(state.History),
		StakePercent2x: state.StakePercent2x,
		StakePercent3x: state.StakePercent3x,
		LastGenerated:  state.LastGenerated,
	}, nil
}

// GetHistory returns the most recent tickets, newest last.
func (l *Ledger) GetHistory(ctx context.Context, limit int) ([]models.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, err := l.loadState(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > len(state.History) {
		limit = len(state.History)
	}
	return append([]models.Ticket(nil), state.History[len(state.History)-limit:]...), nil
}

// BankrollUpdate reports a manual bankroll override.
type BankrollUpdate struct {
	OldBankroll decimal.Decimal `json:"old_bankroll"`
	NewBankroll decimal.Decimal `json:"new_bankroll"`
	Difference  decimal.Decimal `json:"difference"`
}

// UpdateBankroll unconditionally overrides the bankroll (manual correction).
// It is not a settlement: streak and win rates are untouched.
func (l *Ledger) UpdateBankroll(ctx context.Context, newBankroll decimal.Decimal) (*BankrollUpdate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, err := l.loadState(ctx)
	if err != nil {
		return nil, err
	}

	old := state.Bankroll
	state.Bankroll = newBankroll

	if err := l.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist ledger state: %w", err)
	}
	metrics.Bankroll.Set(newBankroll.InexactFloat64())

	l.logger.Info().
		Str("old", old.String()).
		Str("new", newBankroll.String()).
		Msg("bankroll updated manually")

	return &BankrollUpdate{
		OldBankroll: old,
		NewBankroll: newBankroll,
		Difference:  newBankroll.Sub(old),
	}, nil
}

// pairFromTickets assembles a TicketPair from an existing day's tickets.
func pairFromTickets(tickets []*models.Ticket) *models.TicketPair {
	pair := &models.TicketPair{}
	for _, t := range tickets {
		copied := *t
		if t.Type == models.TicketType3x {
			pair.Ticket3x = &copied
		} else {
			pair.Ticket2x = &copied
		}
	}
	return pair
}
