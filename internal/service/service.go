package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"cointracker/internal/repository"
	"cointracker/internal/scheduler"
)

// Service keeps the local cache warm: on every scheduler tick it refreshes
// the coins snapshot and the favourite snapshot from the network. Failures
// surface as Error results inside the repositories; here they only decide
// what gets logged and whether the tick counts as failed.
type Service struct {
	scheduler  *scheduler.Scheduler
	coins      *repository.CoinsRepository
	favourites *repository.FavouritesRepository
	logger     zerolog.Logger
}

// New constructs the refresh service.
func New(sched *scheduler.Scheduler, coins *repository.CoinsRepository, favourites *repository.FavouritesRepository, logger zerolog.Logger) *Service {
	return &Service{
		scheduler:  sched,
		coins:      coins,
		favourites: favourites,
		logger:     logger.With().Str("component", "service").Logger(),
	}
}

// Run begins the periodic refresh loop.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return errors.New("scheduler not configured")
	}
	return s.scheduler.Run(ctx, s.RefreshOnce)
}

// RefreshOnce refreshes both cached resources. A failed resource leaves its
// previous snapshot in place; the tick reports failure when nothing could
// be refreshed.
func (s *Service) RefreshOnce(ctx context.Context, at time.Time) error {
	failures := 0

	if res := s.coins.Refresh(ctx); res.IsError() {
		msg, _ := res.Message()
		s.logger.Warn().Time("run_at", at).Str("reason", msg).Msg("coins refresh failed; keeping cached snapshot")
		failures++
	} else if coins, ok := res.Value(); ok {
		s.logger.Info().Time("run_at", at).Int("coins", len(coins)).Msg("coins cache refreshed")
	}

	if res := s.favourites.Refresh(ctx); res.IsError() {
		msg, _ := res.Message()
		s.logger.Warn().Time("run_at", at).Str("reason", msg).Msg("favourites refresh failed; keeping cached snapshot")
		failures++
	} else if coins, ok := res.Value(); ok {
		s.logger.Info().Time("run_at", at).Int("favourites", len(coins)).Msg("favourites cache refreshed")
	}

	if failures == 2 {
		return errors.New("all cache refreshes failed")
	}
	return nil
}
