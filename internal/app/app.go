package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"cointracker/internal/config"
	"cointracker/internal/domain"
	"cointracker/internal/fetcher"
	"cointracker/internal/repository"
	"cointracker/internal/scheduler"
	"cointracker/internal/service"
	"cointracker/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newClient() fetcher.PricingAPI {
	return fetcher.NewClient(fetcher.Options{
		BaseURL:           a.Config.API.BaseURL,
		APIKey:            a.Config.API.Key,
		ReferenceCurrency: a.Config.API.ReferenceCurrency,
		Timeout:           a.Config.API.RequestTimeout,
		UserAgent:         a.Config.API.UserAgent,
	}, a.Logger)
}

// stores opens the configured cache store: PostgreSQL when a DSN is set,
// the in-memory store otherwise.
func (a *App) stores(ctx context.Context) (storage.CoinCache, storage.FavouriteCache, func(), error) {
	if a.Config.Database.DSN == "" {
		a.Logger.Debug().Msg("database.dsn not configured; using in-memory cache")
		mem := storage.NewMemoryStore(a.Config.Cache.MemoryTTL)
		return mem, mem, func() {}, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	store := storage.NewStore(pool)
	return store, store, store.Close, nil
}

type repos struct {
	coins      *repository.CoinsRepository
	favourites *repository.FavouritesRepository
	details    *repository.DetailsRepository
	chart      *repository.ChartRepository
	stats      *repository.StatsRepository
	search     *repository.SearchRepository
}

func (a *App) newRepos(coinCache storage.CoinCache, favCache storage.FavouriteCache) repos {
	api := a.newClient()
	format := a.Config.CurrencyFormat()

	return repos{
		coins:      repository.NewCoinsRepository(api, coinCache, format, a.Config.Cache.CoinsLimit, a.Logger),
		favourites: repository.NewFavouritesRepository(api, favCache, format, a.Logger),
		details:    repository.NewDetailsRepository(api, format, a.Logger),
		chart:      repository.NewChartRepository(api, format, a.Logger),
		stats:      repository.NewStatsRepository(api, format, a.Logger),
		search:     repository.NewSearchRepository(api, a.Logger),
	}
}

// Run executes the long-running refresh service.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	coinCache, favCache, closeStore, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := a.newRepos(coinCache, favCache)

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Refresh.Interval,
		AlignToClock: a.Config.Refresh.AlignToClock,
		StartupDelay: a.Config.Refresh.StartupDelay,
	}, a.Logger)

	svc := service.New(sched, deps.coins, deps.favourites, a.Logger)

	a.Logger.Info().Msg("starting refresh service")
	err = svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("refresh service terminated with error")
		return err
	}

	a.Logger.Info().Msg("refresh service stopped")
	return nil
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit   int
	Refresh bool
}

// ChartOptions hold parameters for the chart command.
type ChartOptions struct {
	CoinID    string
	Period    domain.ChartPeriod
	PNGPath   string
	CSVPath   string
	MaxPoints int
}
