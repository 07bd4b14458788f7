package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/config"
	httpHandler "github.com/cypherlabdev/accumulator-ledger-service/internal/handler/http"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/ledger"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/messaging"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/scheduler"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/selector"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/settlement"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/sportsdata"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/staking"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/store"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting accumulator-ledger-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create the ledger state store
	ledgerStore, ping, closeStore, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open ledger store")
	}
	defer closeStore()

	if err := ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to ledger store")
	}
	logger.Info().Str("backend", cfg.Store.Backend).Msg("ledger store ready")

	// Create the final-score cache fed by Kafka
	scoreCache := store.NewScoreCache(
		store.ScoreCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.ScoreTTL,
		},
		logger,
	)
	defer scoreCache.Close()

	// Create upstream clients
	sportsCfg := sportsdata.Config{
		PicksBaseURL:   cfg.Sports.PicksBaseURL,
		ResultsBaseURL: cfg.Sports.ResultsBaseURL,
		Timeout:        cfg.Sports.Timeout,
		RequestsPerSec: cfg.Sports.RequestsPerSec,
	}
	sportsClient := sportsdata.NewClient(sportsCfg, logger)
	picksClient := sportsdata.NewPicksClient(sportsClient, sportsCfg, logger)
	resultsClient := sportsdata.NewResultsClient(sportsClient, scoreCache, sportsCfg, logger)

	// Create the core components
	resolver := settlement.NewResolver(resultsClient, cfg.Sports.LookupTimeout, logger)
	sizer := staking.NewSizer(logger)
	legSelector := selector.New(logger)

	ticketLedger := ledger.New(
		ledgerStore,
		picksClient,
		resolver,
		sizer,
		legSelector,
		ledger.Config{MinCandidates: cfg.Ledger.MinCandidates},
		logger,
	)
	logger.Info().Msg("ticket ledger initialized")

	// Create Kafka results consumer
	consumer := messaging.NewResultsConsumer(
		messaging.ResultsConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		},
		scoreCache,
		logger,
	)
	defer consumer.Close()

	// Start Kafka consumer in goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("Kafka consumer failed")
		}
	}()

	// Start the daily scheduler
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(
			ticketLedger,
			cfg.Scheduler.ResolveHour,
			cfg.Scheduler.GenerateHour,
			cfg.Scheduler.CheckInterval,
			logger,
		)
		go func() {
			if err := sched.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("scheduler failed")
			}
		}()
		logger.Info().
			Int("resolve_hour", cfg.Scheduler.ResolveHour).
			Int("generate_hour", cfg.Scheduler.GenerateHour).
			Msg("daily scheduler started")
	}

	// Initialize HTTP handler
	ledgerHandler := httpHandler.NewLedgerHandler(ticketLedger, logger)
	logger.Info().Msg("HTTP handler initialized")

	// Setup HTTP server routes
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, ping)
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Register API routes
	ledgerHandler.RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop consumer and scheduler
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// buildStore opens the configured ledger state backend.
func buildStore(cfg *config.Config, logger zerolog.Logger) (ledger.Store, func(context.Context) error, func() error, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Store.SQLitePath, cfg.Store.LedgerID, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s.Ping, s.Close, nil
	default:
		s := store.NewRedisStore(
			store.RedisStoreConfig{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
				LedgerID: cfg.Store.LedgerID,
			},
			logger,
		)
		return s, s.Ping, s.Close, nil
	}
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "accumulator-ledger").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, ping func(context.Context) error) {
	// Check the ledger store connection
	if err := ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("ledger store unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
