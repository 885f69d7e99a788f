package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboarddb "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/repositories"
	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/results"
)

// LeaderboardService implements the Service interface. Standings and history
// are read-only views over the rating and match tables.
type LeaderboardService struct {
	repo        leaderboarddb.Repository
	matchRepo   matchdb.Repository
	playerRepo  playerdb.Repository
	rankingRepo rankingdb.Repository
	EventBus    eventbus.EventBus
	logger      *slog.Logger
	metrics     Metrics
	tracer      trace.Tracer
	db          bun.IDB
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	repo leaderboarddb.Repository,
	matchRepo matchdb.Repository,
	playerRepo playerdb.Repository,
	rankingRepo rankingdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
	db bun.IDB,
) *LeaderboardService {
	return &LeaderboardService{
		repo:        repo,
		matchRepo:   matchRepo,
		playerRepo:  playerRepo,
		rankingRepo: rankingRepo,
		EventBus:    eventBus,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
	}
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func withTelemetry[S any, F any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	rankingID sharedtypes.RankingID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("ranking_id", rankingID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.RankingID("ranking_id", rankingID),
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
			attr.RankingID("ranking_id", rankingID),
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

// GetStandings returns the ranking's players ordered by current rating.
func (s *LeaderboardService) GetStandings(ctx context.Context, input GetStandingsInput) (results.OperationResult[StandingsPayload, LeaderboardFailurePayload], error) {
	return withTelemetry(s, ctx, "GetStandings", input.RankingID, func(ctx context.Context) (results.OperationResult[StandingsPayload, LeaderboardFailurePayload], error) {
		if _, err := s.rankingRepo.GetRanking(ctx, s.db, input.GuildID, input.RankingID); err != nil {
			if errors.Is(err, rankingdb.ErrNotFound) {
				return results.Failure[StandingsPayload](&LeaderboardFailurePayload{
					GuildID:   input.GuildID,
					RankingID: input.RankingID,
					Reason:    fmt.Sprintf("ranking %s not found", input.RankingID),
				}), nil
			}
			return results.OperationResult[StandingsPayload, LeaderboardFailurePayload]{}, fmt.Errorf("failed to get ranking: %w", err)
		}

		standings, err := s.repo.GetStandings(ctx, s.db, input.RankingID, input.Limit)
		if err != nil {
			return results.OperationResult[StandingsPayload, LeaderboardFailurePayload]{}, fmt.Errorf("failed to get standings: %w", err)
		}

		return results.Success[StandingsPayload, LeaderboardFailurePayload](&StandingsPayload{
			GuildID:   input.GuildID,
			RankingID: input.RankingID,
			Standings: standings,
		}), nil
	})
}

// GetRatingHistory walks the player's finished matches in replay order and
// collects the pre-match rating snapshots, closing with the current rating.
func (s *LeaderboardService) GetRatingHistory(ctx context.Context, input GetRatingHistoryInput) (results.OperationResult[RatingHistoryPayload, LeaderboardFailurePayload], error) {
	return withTelemetry(s, ctx, "GetRatingHistory", input.RankingID, func(ctx context.Context) (results.OperationResult[RatingHistoryPayload, LeaderboardFailurePayload], error) {
		points, failure, err := s.historyPoints(ctx, input.GuildID, input.RankingID, input.UserID)
		if err != nil {
			return results.OperationResult[RatingHistoryPayload, LeaderboardFailurePayload]{}, err
		}
		if failure != nil {
			return results.Failure[RatingHistoryPayload](failure), nil
		}

		return results.Success[RatingHistoryPayload, LeaderboardFailurePayload](&RatingHistoryPayload{
			RankingID: input.RankingID,
			UserID:    input.UserID,
			Points:    points,
		}), nil
	})
}

// historyPoints builds the rating trajectory shared by GetRatingHistory and
// RenderHistoryChart.
func (s *LeaderboardService) historyPoints(ctx context.Context, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID) ([]HistoryPoint, *LeaderboardFailurePayload, error) {
	if _, err := s.rankingRepo.GetRanking(ctx, s.db, guildID, rankingID); err != nil {
		if errors.Is(err, rankingdb.ErrNotFound) {
			return nil, &LeaderboardFailurePayload{
				GuildID:   guildID,
				RankingID: rankingID,
				Reason:    fmt.Sprintf("ranking %s not found", rankingID),
			}, nil
		}
		return nil, nil, fmt.Errorf("failed to get ranking: %w", err)
	}

	matches, err := s.matchRepo.ListFinishedSince(ctx, s.db, rankingID, time.Time{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list matches: %w", err)
	}

	var points []HistoryPoint
	for _, m := range matches {
		slot := m.Player(userID)
		if slot == nil {
			continue
		}
		points = append(points, HistoryPoint{
			At:        *m.TimeFinished,
			Rating:    slot.Rating.Rating,
			Deviation: slot.Rating.Deviation,
		})
	}

	current, err := s.playerRepo.GetRating(ctx, s.db, rankingID, userID)
	if err != nil {
		if errors.Is(err, playerdb.ErrRatingNotFound) {
			return nil, &LeaderboardFailurePayload{
				GuildID:   guildID,
				RankingID: rankingID,
				Reason:    fmt.Sprintf("no rating for player %s in ranking %s", userID, rankingID),
			}, nil
		}
		return nil, nil, fmt.Errorf("failed to get current rating: %w", err)
	}

	at := time.Now().UTC()
	if n := len(points); n > 0 && !points[n-1].At.Before(at) {
		at = points[n-1].At.Add(time.Second)
	}
	points = append(points, HistoryPoint{At: at, Rating: current.Rating, Deviation: current.Deviation})

	return points, nil, nil
}
