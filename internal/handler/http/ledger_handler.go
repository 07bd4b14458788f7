// Package http exposes the ledger operations over HTTP. Routing stays on the
// standard mux; the scheduler drives the same operations internally.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/ledger"
)

// LedgerHandler handles HTTP requests for the ticket ledger.
type LedgerHandler struct {
	ledger *ledger.Ledger
	logger zerolog.Logger
}

// NewLedgerHandler creates a new ledger HTTP handler.
func NewLedgerHandler(l *ledger.Ledger, logger zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger: l,
		logger: logger.With().Str("component", "ledger_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux.
func (h *LedgerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/tickets/generate", h.handleGenerate)
	mux.HandleFunc("/api/v1/tickets/resolve", h.handleResolve)
	mux.HandleFunc("/api/v1/status", h.handleStatus)
	mux.HandleFunc("/api/v1/history", h.handleHistory)
	mux.HandleFunc("/api/v1/bankroll", h.handleBankroll)
}

type generateRequest struct {
	Bankroll *decimal.Decimal `json:"bankroll,omitempty"`
}

// handleGenerate handles POST /api/v1/tickets/generate
func (h *LedgerHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req generateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.Bankroll != nil && req.Bankroll.LessThanOrEqual(decimal.Zero) {
		h.errorResponse(w, http.StatusBadRequest, "bankroll must be positive")
		return
	}

	pair, err := h.ledger.GenerateDailyTickets(r.Context(), req.Bankroll)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientCandidates) {
			h.errorResponse(w, http.StatusServiceUnavailable, "not enough candidate picks, retry later")
			return
		}
		h.logger.Error().Err(err).Msg("ticket generation failed")
		h.errorResponse(w, http.StatusInternalServerError, "ticket generation failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, pair)
}

type resolveRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD, defaults to yesterday
}

// handleResolve handles POST /api/v1/tickets/resolve
func (h *LedgerHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req resolveRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	summary, err := h.ledger.ResolveTickets(r.Context(), req.Date)
	if err != nil {
		h.logger.Error().Err(err).Str("date", req.Date).Msg("settlement failed")
		h.errorResponse(w, http.StatusInternalServerError, "settlement failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, summary)
}

// handleStatus handles GET /api/v1/status
func (h *LedgerHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status, err := h.ledger.GetStatus(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load status")
		h.errorResponse(w, http.StatusInternalServerError, "failed to load status")
		return
	}

	h.jsonResponse(w, http.StatusOK, status)
}

// handleHistory handles GET /api/v1/history?limit=N
func (h *LedgerHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	history, err := h.ledger.GetHistory(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load history")
		h.errorResponse(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":   len(history),
		"tickets": history,
	})
}

type bankrollRequest struct {
	Bankroll decimal.Decimal `json:"bankroll"`
}

// handleBankroll handles PUT /api/v1/bankroll
func (h *LedgerHandler) handleBankroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req bankrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Bankroll.LessThanOrEqual(decimal.Zero) {
		h.errorResponse(w, http.StatusBadRequest, "bankroll must be positive")
		return
	}

	update, err := h.ledger.UpdateBankroll(r.Context(), req.Bankroll)
	if err != nil {
		h.logger.Error().Err(err).Msg("bankroll update failed")
		h.errorResponse(w, http.StatusInternalServerError, "bankroll update failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, update)
}

// jsonResponse writes a JSON response
func (h *LedgerHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *LedgerHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
