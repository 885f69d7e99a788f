// Package app assembles the rating service: config, telemetry, Postgres,
// the NATS JetStream event bus, and the four domain modules.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/modules/leaderboard"
	"github.com/rankforge/rankforge/app/modules/match"
	"github.com/rankforge/rankforge/app/modules/player"
	"github.com/rankforge/rankforge/app/modules/ranking"
	"github.com/rankforge/rankforge/config"
	"github.com/rankforge/rankforge/internal/bundb"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/observability"
	"github.com/rankforge/rankforge/internal/utils"
)

const observabilityShutdownTimeout = 10 * time.Second

// App owns the shared infrastructure and the module set.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus

	MatchModule       *match.Module
	RankingModule     *ranking.Module
	PlayerModule      *player.Module
	LeaderboardModule *leaderboard.Module

	// Each module configures middleware on its own router, so routers are
	// not shared between modules.
	routers       []*message.Router
	metricsServer *http.Server
}

// NewApp builds the application from cfg. Callers own ctx; cancellation
// stops everything started by Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.Init(observability.Config{
		Environment:    cfg.Observability.Environment,
		LogLevel:       cfg.Observability.LogLevel,
		MetricsAddress: cfg.Observability.MetricsAddress,
	})

	db, err := bundb.NewBunDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(obs.Logger)

	eventBus, err := eventbus.NewJetStreamEventBus(cfg.NATS.URL, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	helpers := utils.NewHelperService()

	newRouter := func() (*message.Router, error) {
		return message.NewRouter(message.RouterConfig{}, watermillLogger)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      eventBus,
	}

	matchRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create match router: %w", err)
	}
	app.MatchModule, err = match.NewMatchModule(ctx, cfg, obs, db, eventBus, matchRouter, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create match module: %w", err)
	}

	rankingRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create ranking router: %w", err)
	}
	app.RankingModule, err = ranking.NewRankingModule(ctx, cfg, obs, db, eventBus, rankingRouter, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create ranking module: %w", err)
	}

	playerRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create player router: %w", err)
	}
	app.PlayerModule, err = player.NewPlayerModule(ctx, cfg, obs, db, eventBus, playerRouter, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create player module: %w", err)
	}

	leaderboardRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard router: %w", err)
	}
	app.LeaderboardModule, err = leaderboard.NewLeaderboardModule(ctx, cfg, obs, db, eventBus, leaderboardRouter, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard module: %w", err)
	}

	app.routers = []*message.Router{matchRouter, rankingRouter, playerRouter, leaderboardRouter}
	app.metricsServer = obs.NewMetricsServer(cfg.Observability.MetricsAddress)

	return app, nil
}

// Run starts the routers, the module workers, and the metrics server, then
// blocks until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	for _, router := range a.routers {
		router := router
		go func() {
			if err := router.Run(ctx); err != nil {
				logger.Error("Router stopped with error", "error", err)
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go a.MatchModule.Run(ctx, &wg)
	go a.RankingModule.Run(ctx, &wg)
	go a.PlayerModule.Run(ctx, &wg)
	go a.LeaderboardModule.Run(ctx, &wg)

	go func() {
		logger.Info("Metrics server listening", "address", a.metricsServer.Addr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped with error", "error", err)
		}
	}()

	<-ctx.Done()
	wg.Wait()
	return nil
}

// Close shuts everything down in reverse dependency order.
func (a *App) Close() error {
	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), observabilityShutdownTimeout)
	defer cancel()
	if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
	}

	for _, m := range []interface{ Close() error }{
		a.MatchModule, a.RankingModule, a.PlayerModule, a.LeaderboardModule,
	} {
		if err := m.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, router := range a.routers {
		if err := router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("router close: %w", err))
		}
	}

	if err := a.EventBus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("event bus close: %w", err))
	}
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}

	return errors.Join(errs...)
}
