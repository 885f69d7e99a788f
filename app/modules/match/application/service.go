package matchservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/results"
)

// Database is the slice of *bun.DB the service needs: direct queries plus
// transactions. Tests substitute a fake that runs the closure directly.
type Database interface {
	bun.IDB
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(context.Context, bun.Tx) error) error
}

// MatchService implements the Service interface.
type MatchService struct {
	repo        matchdb.Repository
	playerRepo  playerdb.Repository
	rankingRepo rankingdb.Repository
	EventBus    eventbus.EventBus
	logger      *slog.Logger
	metrics     Metrics
	tracer      trace.Tracer
	db          Database

	// rescoreLocks serializes rescores per ranking. Replay order is total, so
	// two concurrent rescores of one ranking would race on the rating cache.
	rescoreLocks sync.Map
}

// NewMatchService creates a new MatchService.
func NewMatchService(
	repo matchdb.Repository,
	playerRepo playerdb.Repository,
	rankingRepo rankingdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
	db Database,
) *MatchService {
	return &MatchService{
		repo:        repo,
		playerRepo:  playerRepo,
		rankingRepo: rankingRepo,
		EventBus:    eventBus,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
	}
}

// lockRanking takes the ranking's rescore lock and returns the unlock func.
func (s *MatchService) lockRanking(rankingID sharedtypes.RankingID) func() {
	v, _ := s.rescoreLocks.LoadOrStore(rankingID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery. Domain failures count as failures in metrics but return nil error.
func withTelemetry[S any, F any](
	s *MatchService,
	ctx context.Context,
	operationName string,
	matchID sharedtypes.MatchID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("match_id", matchID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.MatchID("match_id", matchID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.MatchID("match_id", matchID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.MatchID("match_id", matchID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.metrics.RecordOperationFailure(ctx, operationName)
		return result, nil
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}
