package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"golang.org/x/time/rate"

	matchservice "github.com/rankforge/rankforge/app/modules/match/application"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/utils"
)

// QueueService schedules rescore jobs.
type QueueService interface {
	// EnqueueRescore queues a replay of the ranking's history from since
	// onward. Duplicate requests for the same window collapse.
	EnqueueRescore(ctx context.Context, job RescoreJob) error
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles rescore job scheduling for the match module using River.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger

	// limiters throttles how often one ranking can enqueue rescores, so a
	// burst of retroactive edits does not thrash the replay machinery.
	limitersMu sync.Mutex
	limiters   map[sharedtypes.RankingID]*rate.Limiter
}

// NewService creates a River-backed queue service. River needs its own pgx
// pool; the bun connection cannot be shared.
func NewService(
	ctx context.Context,
	dsn string,
	service matchservice.Service,
	eventBus eventbus.EventBus,
	helpers utils.Helpers,
	logger *slog.Logger,
) (*Service, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN for river: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database for river: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRescoreWorker(service, eventBus, helpers, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			// Rescores of one ranking serialize on the service lock anyway; a
			// small worker count keeps replay load predictable.
			"rescore": {MaxWorkers: 4},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create river client: %w", err)
	}

	return &Service{
		client:   client,
		pool:     pool,
		logger:   logger,
		limiters: make(map[sharedtypes.RankingID]*rate.Limiter),
	}, nil
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start river client: %w", err)
	}
	s.logger.InfoContext(ctx, "Match queue service started")
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop river client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Match queue service stopped")
	return nil
}

func (s *Service) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// limiterFor returns the ranking's enqueue limiter: one rescore burst of two,
// refilling every ten seconds.
func (s *Service) limiterFor(rankingID sharedtypes.RankingID) *rate.Limiter {
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()
	if l, ok := s.limiters[rankingID]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Every(10*time.Second), 2)
	s.limiters[rankingID] = l
	return l
}

func (s *Service) EnqueueRescore(ctx context.Context, job RescoreJob) error {
	if err := s.limiterFor(job.RankingID).Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rescore slot: %w", err)
	}

	res, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue: "rescore",
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue rescore for ranking %s: %w", job.RankingID, err)
	}

	s.logger.InfoContext(ctx, "Rescore job enqueued",
		attr.RankingID("ranking_id", job.RankingID),
		attr.Bool("reset", job.ResetToInitial),
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
	)
	return nil
}
