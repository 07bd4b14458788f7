package ledger

import (
	"context"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

// Store is the durable home of the ledger state document. Save must replace
// the document atomically.
type Store interface {
	Load(ctx context.Context) (*models.LedgerState, error)
	Save(ctx context.Context, state *models.LedgerState) error
}

// CandidateSource supplies confidence-ranked candidate picks for a calendar
// day. Implementations degrade to safe default picks when the primary
// recommendation source is unavailable.
type CandidateSource interface {
	GetCandidatePicks(ctx context.Context, date string) ([]models.Pick, error)
}

// TicketResolver settles every leg of a ticket. The returned slice is
// index-aligned with ticket.Legs; unresolvable legs come back void.
type TicketResolver interface {
	ResolveLegs(ctx context.Context, ticket *models.Ticket) ([]models.LegResult, error)
}
