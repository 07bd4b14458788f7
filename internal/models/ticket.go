package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PickType enumerates the supported bet outcomes for a single leg.
type PickType string

const (
	PickHomeWin    PickType = "home_win"
	PickAwayWin    PickType = "away_win"
	PickDraw       PickType = "draw"
	PickOverGoals  PickType = "over_goals"
	PickUnderGoals PickType = "under_goals"
	PickBTTSYes    PickType = "btts_yes"
	PickBTTSNo     PickType = "btts_no"
)

// Pick is a candidate leg produced by the recommendation source.
// Immutable once generated; binding into a ticket copies it into an AccumulatorLeg.
type Pick struct {
	HomeTeam   string          `json:"home_team"`
	AwayTeam   string          `json:"away_team"`
	League     string          `json:"league"`
	Type       PickType        `json:"pick"`
	GoalLine   decimal.Decimal `json:"goal_line,omitempty"` // only for over/under picks
	Odds       decimal.Decimal `json:"odds"`
	Confidence int             `json:"confidence"` // 1-10
	Reasoning  string          `json:"reasoning,omitempty"`
}

// Event is a fixture as reported by the sports data provider.
type Event struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	League   string `json:"league"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// LegResult is the settled outcome of a single leg.
type LegResult string

const (
	LegWon  LegResult = "won"
	LegLost LegResult = "lost"
	LegVoid LegResult = "void" // result unavailable, leg refunded
)

// AccumulatorLeg is a Pick bound into a specific ticket.
type AccumulatorLeg struct {
	Pick
	Result LegResult `json:"result,omitempty"`
}

// TicketType identifies the combined-odds target a ticket was built for.
type TicketType string

const (
	TicketType2x TicketType = "2x" // target combined odds 2.0
	TicketType3x TicketType = "3x" // target combined odds 3.0
)

// TargetOdds returns the minimum combined odds the ticket is built toward.
func (t TicketType) TargetOdds() decimal.Decimal {
	switch t {
	case TicketType3x:
		return decimal.NewFromInt(3)
	default:
		return decimal.NewFromInt(2)
	}
}

// TicketStatus is the ticket state machine: pending -> won | lost | partial.
type TicketStatus string

const (
	TicketPending TicketStatus = "pending"
	TicketWon     TicketStatus = "won"
	TicketLost    TicketStatus = "lost"
	TicketPartial TicketStatus = "partial" // no losses but not all legs won
)

// IsTerminal reports whether the ticket can no longer be mutated.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketWon || s == TicketLost || s == TicketPartial
}

// TicketResult holds settlement figures for a resolved ticket.
type TicketResult struct {
	LegsWon      int             `json:"legs_won"`
	LegsLost     int             `json:"legs_lost"`
	LegsVoid     int             `json:"legs_void"`
	ActualReturn decimal.Decimal `json:"actual_return"`
	PnL          decimal.Decimal `json:"pnl"`
}

// Ticket is a daily accumulator bet.
type Ticket struct {
	ID              string           `json:"id"`
	Type            TicketType       `json:"type"`
	Date            string           `json:"date"` // YYYY-MM-DD
	Legs            []AccumulatorLeg `json:"legs"`
	CombinedOdds    decimal.Decimal  `json:"combined_odds"` // exact product, unrounded
	ReachedTarget   bool             `json:"reached_target"`
	Stake           decimal.Decimal  `json:"stake"`
	PotentialReturn decimal.Decimal  `json:"potential_return"`
	PotentialProfit decimal.Decimal  `json:"potential_profit"`
	Status          TicketStatus     `json:"status"`
	Result          *TicketResult    `json:"result,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// DisplayOdds returns the combined odds rounded to 2 decimals.
// Payout math always uses the unrounded CombinedOdds.
func (t *Ticket) DisplayOdds() decimal.Decimal {
	return t.CombinedOdds.Round(2)
}

// TicketPair is the result of one day's generation run.
type TicketPair struct {
	Ticket2x *Ticket `json:"ticket_2x"`
	Ticket3x *Ticket `json:"ticket_3x"`
}

// FinalScore is a finished match score from the result source.
type FinalScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}
