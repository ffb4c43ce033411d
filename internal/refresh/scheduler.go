// Package refresh keeps the slow dataset caches warm on a schedule so
// the first viewer open of the day does not pay four upstream round
// trips. Fiat prices are excluded: their 2 minute TTL makes scheduled
// warming pointless.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/catalog"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/config"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/loaner"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/uex"
	"github.com/rs/zerolog/log"
)

type Scheduler struct {
	catalogClient *catalog.Client
	uexClient     *uex.Client
	loanerClient  *loaner.Client
	cfg           *config.Config
	cron          *cron.Cron
}

func NewScheduler(catalogClient *catalog.Client, uexClient *uex.Client, loanerClient *loaner.Client, cfg *config.Config) *Scheduler {
	return &Scheduler{
		catalogClient: catalogClient,
		uexClient:     uexClient,
		loanerClient:  loanerClient,
		cfg:           cfg,
		cron:          cron.New(),
	}
}

// Start registers the scheduled warm job and, when configured, runs a
// startup warm in the background.
func (s *Scheduler) Start() error {
	if s.cfg.RefreshSchedule != "" {
		_, err := s.cron.AddFunc(s.cfg.RefreshSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			log.Info().Msg("scheduled cache warm starting")
			s.Warm(ctx)
		})
		if err != nil {
			return fmt.Errorf("adding cron job: %w", err)
		}
		s.cron.Start()
		log.Info().Str("schedule", s.cfg.RefreshSchedule).Msg("refresh scheduler started")
	}

	if s.cfg.WarmOnStartup {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			log.Info().Msg("startup cache warm starting")
			s.Warm(ctx)
		}()
	}

	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("refresh scheduler stopped")
}

// Warm fetches the 24h datasets through their normal cached flows.
// Entries still inside their TTL are simply reused, expired ones are
// refetched and overwritten. Failures are logged and skipped; a warm
// never fails the process.
func (s *Scheduler) Warm(ctx context.Context) {
	if _, err := s.catalogClient.FetchCatalog(ctx); err != nil {
		log.Error().Err(err).Msg("catalog warm failed")
	}
	if _, err := s.uexClient.FetchAUECPrices(ctx); err != nil {
		log.Error().Err(err).Msg("aUEC prices warm failed")
	}
	if _, err := s.loanerClient.FetchMatrix(ctx); err != nil {
		log.Error().Err(err).Msg("loaner matrix warm failed")
	}
	log.Info().Msg("cache warm complete")
}
