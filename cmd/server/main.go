package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/api"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/catalog"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/config"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/loaner"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/refresh"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/store"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/uex"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/viewer"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	log.Info().Msg("Ship Viewer starting up")

	// Load config
	cfg := config.Load()

	// Open the persistent store
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	// Dataset clients, each over its own TTL cache
	catalogClient := catalog.NewClient(
		cfg.CatalogURL,
		cfg.RateLimit,
		store.NewCache[[]catalog.VehicleRecord](st, store.KeyCatalog, cfg.CatalogTTL),
	)
	uexClient := uex.NewClient(
		cfg.UEXBaseURL,
		cfg.RateLimit,
		store.NewCache[[]uex.PriceRow](st, store.KeyFiatPrices, cfg.FiatPriceTTL),
		store.NewCache[[]uex.AuecRow](st, store.KeyAUECPrices, cfg.AUECPriceTTL),
	)
	loanerClient := loaner.NewClient(
		loaner.NewHTTPFetcher(cfg.LoanerMatrixURL),
		cfg.LoanerTimeout,
		store.NewCache[map[string][]string](st, store.KeyLoanerMatrix, cfg.LoanerTTL),
	)

	// Viewer session service
	svc := viewer.NewService(catalogClient, uexClient, loanerClient, st)

	// Cache refresh scheduler
	scheduler := refresh.NewScheduler(catalogClient, uexClient, loanerClient, cfg)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start refresh scheduler")
	}
	defer scheduler.Stop()

	// API server
	srv := api.NewServer(svc, cfg)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("Ship Viewer stopped")
}
