// Package metrics exposes Prometheus collectors for the ticket lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsGenerated counts generated tickets by type.
	TicketsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accumulator_tickets_generated_total",
		Help: "Number of accumulator tickets generated, by ticket type.",
	}, []string{"type"})

	// TicketsSettled counts settled tickets by type and final status.
	TicketsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accumulator_tickets_settled_total",
		Help: "Number of accumulator tickets settled, by ticket type and status.",
	}, []string{"type", "status"})

	// Bankroll tracks the current ledger bankroll.
	Bankroll = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "accumulator_ledger_bankroll",
		Help: "Current ledger bankroll in currency units.",
	})

	// ResultLookups counts settlement result lookups by outcome source.
	ResultLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accumulator_result_lookups_total",
		Help: "Number of final-score lookups, by source (cache, http, miss).",
	}, []string{"source"})
)
