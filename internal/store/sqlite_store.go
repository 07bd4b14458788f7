package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ledger_state (
    ledger_id  TEXT PRIMARY KEY,
    document   TEXT     NOT NULL,
    updated_at DATETIME NOT NULL
);
`

// SQLiteStore keeps the ledger state document as a single JSON row per ledger.
// Pure Go driver, no CGo.
type SQLiteStore struct {
	db       *sql.DB
	ledgerID string
	logger   zerolog.Logger
}

// NewSQLiteStore opens (or creates) the database at the given path and applies
// the schema.
func NewSQLiteStore(path, ledgerID string, logger zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db %q: %w", path, err)
	}
	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{
		db:       db,
		ledgerID: ledgerID,
		logger:   logger.With().Str("component", "sqlite_store").Logger(),
	}, nil
}

// Load reads the full ledger state document.
func (s *SQLiteStore) Load(ctx context.Context) (*models.LedgerState, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM ledger_state WHERE ledger_id = ?`, s.ledgerID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to query ledger state: %w", err)
	}

	var state models.LedgerState
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger state: %w", err)
	}

	return &state, nil
}

// Save atomically replaces the ledger state document via upsert.
func (s *SQLiteStore) Save(ctx context.Context, state *models.LedgerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ledger_state (ledger_id, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(ledger_id) DO UPDATE SET
			document   = excluded.document,
			updated_at = excluded.updated_at`,
		s.ledgerID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ledger state: %w", err)
	}

	s.logger.Debug().
		Str("ledger_id", s.ledgerID).
		Int("tickets", len(state.History)).
		Msg("saved ledger state")

	return nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
