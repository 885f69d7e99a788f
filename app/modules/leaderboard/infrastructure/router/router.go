package leaderboardrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	leaderboardservice "github.com/rankforge/rankforge/app/modules/leaderboard/application"
	leaderboardevents "github.com/rankforge/rankforge/app/modules/leaderboard/events"
	leaderboardhandlers "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/handlers"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/utils"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// LeaderboardRouter wires the leaderboard module's handlers into the shared
// watermill router.
type LeaderboardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     eventbus.EventBus
	publisher      eventbus.EventBus
	helper         utils.Helpers
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
	metricsEnabled bool
}

// NewLeaderboardRouter creates a new LeaderboardRouter.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *LeaderboardRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &LeaderboardRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		helper:         helper,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
		metricsEnabled: prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure registers middleware and the leaderboard handlers on the router.
func (r *LeaderboardRouter) Configure(routerCtx context.Context, service leaderboardservice.Service, handlerMetrics leaderboardhandlers.Metrics) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, r.logger, r.tracer, r.helper, handlerMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes each request topic and publishes whatever
// result messages the handler returns, resolving the destination from the
// message's topic metadata.
func (r *LeaderboardRouter) RegisterHandlers(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		leaderboardevents.StandingsRequest:       handlers.HandleStandingsRequest,
		leaderboardevents.RatingHistoryRequest:   handlers.HandleRatingHistoryRequest,
		leaderboardevents.HistoryChartRequest:    handlers.HandleHistoryChartRequest,
		leaderboardevents.StandingsExportRequest: handlers.HandleStandingsExportRequest,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("leaderboard.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber.Subscriber(),
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return nil, err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get(utils.TopicMetadataKey)
					if publishTopic == "" {
						r.logger.ErrorContext(ctx, "No publish topic on result message, dropping",
							attr.String("handler", handlerName),
							attr.String("message_id", m.UUID),
							attr.CorrelationIDFromMsg(m),
						)
						continue
					}
					if err := r.publisher.Publish(ctx, publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
