package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerState is the single mutable document owning bankroll, stake
// configuration and ticket history. It is loaded fully at the start of every
// ledger operation, mutated in memory and written back atomically.
type LedgerState struct {
	Bankroll       decimal.Decimal `json:"bankroll"`
	StakePercent2x decimal.Decimal `json:"stake_percent_2x"`
	StakePercent3x decimal.Decimal `json:"stake_percent_3x"`
	History        []Ticket        `json:"history"` // append-only
	TotalPnL       decimal.Decimal `json:"total_pnl"`
	WinRate2x      float64         `json:"win_rate_2x"` // percent over settled 2x tickets
	WinRate3x      float64         `json:"win_rate_3x"`
	Streak         int             `json:"streak"` // >0 consecutive wins, <0 consecutive losses
	LastGenerated  time.Time       `json:"last_generated"`
}

// NewLedgerState returns the state created on first access.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		Bankroll:       decimal.NewFromInt(9975),
		StakePercent2x: decimal.NewFromInt(2),
		StakePercent3x: decimal.NewFromFloat(1.5),
		History:        []Ticket{},
		TotalPnL:       decimal.Zero,
	}
}

// StakePercent returns the base stake percentage configured for a ticket type.
func (s *LedgerState) StakePercent(t TicketType) decimal.Decimal {
	if t == TicketType3x {
		return s.StakePercent3x
	}
	return s.StakePercent2x
}

// TicketsForDate returns the tickets generated on a calendar day.
func (s *LedgerState) TicketsForDate(date string) []*Ticket {
	var out []*Ticket
	for i := range s.History {
		if s.History[i].Date == date {
			out = append(out, &s.History[i])
		}
	}
	return out
}

// TicketSettlement summarises one resolved ticket.
type TicketSettlement struct {
	TicketID string          `json:"ticket_id"`
	Type     TicketType      `json:"type"`
	Status   TicketStatus    `json:"status"`
	LegsWon  int             `json:"legs_won"`
	LegsLost int             `json:"legs_lost"`
	LegsVoid int             `json:"legs_void"`
	PnL      decimal.Decimal `json:"pnl"`
}

// SettlementSummary is the result of a resolveTickets run.
type SettlementSummary struct {
	Date     string             `json:"date"`
	Results  []TicketSettlement `json:"results"`
	Bankroll decimal.Decimal    `json:"bankroll"`
	TotalPnL decimal.Decimal    `json:"total_pnl"`
	Streak   int                `json:"streak"`
}

// MatchResultMessage is the Kafka payload published when a match finishes.
type MatchResultMessage struct {
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	League     string    `json:"league"`
	Date       string    `json:"date"` // YYYY-MM-DD
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	FinishedAt time.Time `json:"finished_at"`
}
