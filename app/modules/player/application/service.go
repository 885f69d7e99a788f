package playerservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/eventbus"
	"github.com/rankforge/rankforge/internal/rating"
	"github.com/rankforge/rankforge/internal/results"
)

// Database is the slice of *bun.DB the service needs.
type Database interface {
	bun.IDB
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(context.Context, bun.Tx) error) error
}

// PlayerService implements the Service interface.
type PlayerService struct {
	repo        playerdb.Repository
	rankingRepo rankingdb.Repository
	EventBus    eventbus.EventBus
	logger      *slog.Logger
	metrics     Metrics
	tracer      trace.Tracer
	db          Database
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(
	repo playerdb.Repository,
	rankingRepo rankingdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
	db Database,
) *PlayerService {
	return &PlayerService{
		repo:        repo,
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
	s *PlayerService,
	ctx context.Context,
	operationName string,
	userID sharedtypes.DiscordID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("user_id", string(userID)),
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
				attr.UserID("user_id", userID),
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
			attr.UserID("user_id", userID),
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

// RegisterPlayer upserts the guild membership row and, when a ranking is
// named, opens a rating row at the ranking's initial values. Registration is
// idempotent; re-registering refreshes the display name only.
func (s *PlayerService) RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (results.OperationResult[PlayerRegisteredPayload, PlayerFailurePayload], error) {
	return withTelemetry(s, ctx, "RegisterPlayer", input.UserID, func(ctx context.Context) (results.OperationResult[PlayerRegisteredPayload, PlayerFailurePayload], error) {
		if input.UserID == "" {
			return results.Failure[PlayerRegisteredPayload](&PlayerFailurePayload{
				GuildID: input.GuildID,
				Reason:  ErrUserIDRequired.Error(),
			}), nil
		}

		var (
			player  *playerdb.Player
			initial *rating.Rating
			failure *PlayerFailurePayload
		)

		err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			player = &playerdb.Player{
				GuildID:     input.GuildID,
				UserID:      input.UserID,
				DisplayName: input.DisplayName,
			}
			if err := s.repo.CreatePlayer(ctx, tx, player); err != nil {
				return fmt.Errorf("failed to register player: %w", err)
			}

			if input.RankingID.IsNil() {
				return nil
			}

			ranking, err := s.rankingRepo.GetRanking(ctx, tx, input.GuildID, input.RankingID)
			if err != nil {
				if errors.Is(err, rankingdb.ErrNotFound) {
					failure = &PlayerFailurePayload{
						GuildID: input.GuildID,
						UserID:  input.UserID,
						Reason:  fmt.Sprintf("ranking %s not found", input.RankingID),
					}
					return nil
				}
				return fmt.Errorf("failed to get ranking: %w", err)
			}

			init := ranking.Initial()
			if err := s.repo.EnsureRating(ctx, tx, input.GuildID, input.RankingID, input.UserID, init); err != nil {
				return fmt.Errorf("failed to ensure rating: %w", err)
			}
			initial = &init
			return nil
		})
		if err != nil {
			return results.OperationResult[PlayerRegisteredPayload, PlayerFailurePayload]{}, err
		}
		if failure != nil {
			return results.Failure[PlayerRegisteredPayload](failure), nil
		}

		s.logger.InfoContext(ctx, "Player registered",
			attr.UserID("user_id", input.UserID),
			attr.GuildID("guild_id", input.GuildID),
		)

		return results.Success[PlayerRegisteredPayload, PlayerFailurePayload](&PlayerRegisteredPayload{
			Player:        player,
			InitialRating: initial,
		}), nil
	})
}

// GetPlayerRating returns the player's current rating in one ranking.
func (s *PlayerService) GetPlayerRating(ctx context.Context, input GetPlayerRatingInput) (results.OperationResult[PlayerRatingPayload, PlayerFailurePayload], error) {
	return withTelemetry(s, ctx, "GetPlayerRating", input.UserID, func(ctx context.Context) (results.OperationResult[PlayerRatingPayload, PlayerFailurePayload], error) {
		rt, err := s.repo.GetRating(ctx, s.db, input.RankingID, input.UserID)
		if err != nil {
			if errors.Is(err, playerdb.ErrRatingNotFound) {
				return results.Failure[PlayerRatingPayload](&PlayerFailurePayload{
					GuildID: input.GuildID,
					UserID:  input.UserID,
					Reason:  fmt.Sprintf("no rating for player %s in ranking %s", input.UserID, input.RankingID),
				}), nil
			}
			return results.OperationResult[PlayerRatingPayload, PlayerFailurePayload]{}, fmt.Errorf("failed to get rating: %w", err)
		}

		return results.Success[PlayerRatingPayload, PlayerFailurePayload](&PlayerRatingPayload{
			GuildID:   input.GuildID,
			RankingID: input.RankingID,
			UserID:    input.UserID,
			Rating:    rt,
			FetchedAt: time.Now().UTC(),
		}), nil
	})
}

// ListPlayers returns every registered player in a guild.
func (s *PlayerService) ListPlayers(ctx context.Context, input ListPlayersInput) (results.OperationResult[PlayerListPayload, PlayerFailurePayload], error) {
	return withTelemetry(s, ctx, "ListPlayers", "", func(ctx context.Context) (results.OperationResult[PlayerListPayload, PlayerFailurePayload], error) {
		players, err := s.repo.ListPlayers(ctx, s.db, input.GuildID)
		if err != nil {
			return results.OperationResult[PlayerListPayload, PlayerFailurePayload]{}, fmt.Errorf("failed to list players: %w", err)
		}

		return results.Success[PlayerListPayload, PlayerFailurePayload](&PlayerListPayload{
			GuildID: input.GuildID,
			Players: players,
		}), nil
	})
}
