// Package player wires player enrollment and rating lookups: the repository,
// the application service, and the event router.
package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	playerservice "github.com/rankforge/rankforge/app/modules/player/application"
	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	playerrouter "github.com/rankforge/rankforge/app/modules/player/infrastructure/router"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/config"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/observability"
	"github.com/rankforge/rankforge/internal/utils"
)

// Module bundles the player module's service and router.
type Module struct {
	EventBus      eventbus.EventBus
	PlayerService playerservice.Service
	PlayerRouter  *playerrouter.PlayerRouter

	obs        *observability.Observability
	cancelFunc context.CancelFunc
}

// NewPlayerModule creates and configures the player module.
func NewPlayerModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	metrics := observability.NewOperationMetrics(obs.Registry, "player")

	service := playerservice.NewPlayerService(
		playerdb.NewRepository(),
		rankingdb.NewRepository(),
		eventBus,
		obs.Logger,
		metrics,
		obs.Tracer("player"),
		db,
	)

	moduleRouter := playerrouter.NewPlayerRouter(obs.Logger, router, eventBus, eventBus, helpers, obs.Tracer("player"), obs.Registry)
	if err := moduleRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure player router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		PlayerService: service,
		PlayerRouter:  moduleRouter,
		obs:           obs,
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
	m.obs.Logger.Info("Player module stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
