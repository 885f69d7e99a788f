// Package match wires the match lifecycle: repositories, the application
// service with the rescorer, the event router, and the rescore job queue.
package match

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
	matchqueue "github.com/rankforge/rankforge/app/modules/match/infrastructure/queue"
	matchrouter "github.com/rankforge/rankforge/app/modules/match/infrastructure/router"
	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/config"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/observability"
	"github.com/rankforge/rankforge/internal/utils"
)

// Module bundles the match module's service, router, and queue.
type Module struct {
	EventBus     eventbus.EventBus
	MatchService matchservice.Service
	MatchRouter  *matchrouter.MatchRouter
	Queue        matchqueue.QueueService

	obs        *observability.Observability
	cancelFunc context.CancelFunc
}

// NewMatchModule creates and configures the match module.
func NewMatchModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	metrics := observability.NewOperationMetrics(obs.Registry, "match")

	service := matchservice.NewMatchService(
		matchdb.NewRepository(),
		playerdb.NewRepository(),
		rankingdb.NewRepository(),
		eventBus,
		obs.Logger,
		metrics,
		obs.Tracer("match"),
		db,
	)

	queue, err := matchqueue.NewService(ctx, cfg.Postgres.DSN, service, eventBus, helpers, obs.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create match queue service: %w", err)
	}

	moduleRouter := matchrouter.NewMatchRouter(obs.Logger, router, eventBus, eventBus, helpers, obs.Tracer("match"), obs.Registry)
	if err := moduleRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure match router: %w", err)
	}

	return &Module{
		EventBus:     eventBus,
		MatchService: service,
		MatchRouter:  moduleRouter,
		Queue:        queue,
		obs:          obs,
	}, nil
}

// Run starts the queue workers and blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.Queue.Start(ctx); err != nil {
		m.obs.Logger.Error("Failed to start match queue", "error", err)
		return
	}

	<-ctx.Done()
	m.obs.Logger.Info("Match module stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return m.Queue.Stop(context.Background())
}
