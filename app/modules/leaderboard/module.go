// Package leaderboard wires standings, rating history, charting, and export:
// read-only views over the rating and match tables.
package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	leaderboardservice "github.com/rankforge/rankforge/app/modules/leaderboard/application"
	leaderboarddb "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/router"
	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/config"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/observability"
	"github.com/rankforge/rankforge/internal/utils"
)

// Module bundles the leaderboard module's service and router.
type Module struct {
	EventBus           eventbus.EventBus
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter

	obs        *observability.Observability
	cancelFunc context.CancelFunc
}

// NewLeaderboardModule creates and configures the leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	metrics := observability.NewOperationMetrics(obs.Registry, "leaderboard")

	service := leaderboardservice.NewLeaderboardService(
		leaderboarddb.NewRepository(),
		matchdb.NewRepository(),
		playerdb.NewRepository(),
		rankingdb.NewRepository(),
		eventBus,
		obs.Logger,
		metrics,
		obs.Tracer("leaderboard"),
		db,
	)

	moduleRouter := leaderboardrouter.NewLeaderboardRouter(obs.Logger, router, eventBus, eventBus, helpers, obs.Tracer("leaderboard"), obs.Registry)
	if err := moduleRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		EventBus:           eventBus,
		LeaderboardService: service,
		LeaderboardRouter:  moduleRouter,
		obs:                obs,
	}, nil
}

// Run blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.obs.Logger.Info("Leaderboard module stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
