// Package ranking wires the ranking configuration surface: the repository,
// the application service, and the event router.
package ranking

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	rankingservice "github.com/rankforge/rankforge/app/modules/ranking/application"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	rankingrouter "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/router"
	"github.com/rankforge/rankforge/config"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/observability"
	"github.com/rankforge/rankforge/internal/utils"
)

// Module bundles the ranking module's service and router.
type Module struct {
	EventBus       eventbus.EventBus
	RankingService rankingservice.Service
	RankingRouter  *rankingrouter.RankingRouter

	obs        *observability.Observability
	cancelFunc context.CancelFunc
}

// NewRankingModule creates and configures the ranking module.
func NewRankingModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	metrics := observability.NewOperationMetrics(obs.Registry, "ranking")

	service := rankingservice.NewRankingService(
		rankingdb.NewRepository(),
		eventBus,
		obs.Logger,
		metrics,
		obs.Tracer("ranking"),
		db,
		cfg.Rating,
	)

	moduleRouter := rankingrouter.NewRankingRouter(obs.Logger, router, eventBus, eventBus, helpers, obs.Tracer("ranking"), obs.Registry)
	if err := moduleRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure ranking router: %w", err)
	}

	return &Module{
		EventBus:       eventBus,
		RankingService: service,
		RankingRouter:  moduleRouter,
		obs:            obs,
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
	m.obs.Logger.Info("Ranking module stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
