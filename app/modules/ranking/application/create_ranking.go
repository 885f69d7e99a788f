package rankingservice

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/rating"
	"github.com/rankforge/rankforge/internal/results"
)

// CreateRanking opens a new ranking ladder in a guild. Tunables the request
// leaves zero are filled from the app-level rating defaults.
func (s *RankingService) CreateRanking(ctx context.Context, input CreateRankingInput) (results.OperationResult[RankingCreatedPayload, RankingFailurePayload], error) {
	return withTelemetry(s, ctx, "CreateRanking", sharedtypes.RankingID{}, func(ctx context.Context) (results.OperationResult[RankingCreatedPayload, RankingFailurePayload], error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return results.Failure[RankingCreatedPayload](&RankingFailurePayload{
				GuildID: input.GuildID,
				Reason:  ErrNameRequired.Error(),
			}), nil
		}

		strategy := input.Strategy
		if strategy == "" {
			strategy = rating.StrategyGlicko2
		}
		if !strategy.Valid() {
			return results.Failure[RankingCreatedPayload](&RankingFailurePayload{
				GuildID: input.GuildID,
				Reason:  fmt.Sprintf("%s: %q", ErrInvalidStrategy, input.Strategy),
			}), nil
		}

		ranking := s.newRanking(input, name, strategy)
		if reason := validateTunables(ranking); reason != "" {
			return results.Failure[RankingCreatedPayload](&RankingFailurePayload{
				GuildID: input.GuildID,
				Reason:  reason,
			}), nil
		}

		err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			return s.repo.CreateRanking(ctx, tx, ranking)
		})
		if err != nil {
			return results.OperationResult[RankingCreatedPayload, RankingFailurePayload]{}, fmt.Errorf("failed to create ranking: %w", err)
		}

		s.logger.InfoContext(ctx, "Ranking created",
			attr.RankingID("ranking_id", ranking.ID),
			attr.GuildID("guild_id", ranking.GuildID),
			attr.String("strategy", string(ranking.Strategy)),
		)

		return results.Success[RankingCreatedPayload, RankingFailurePayload](&RankingCreatedPayload{Ranking: ranking}), nil
	})
}

func (s *RankingService) newRanking(input CreateRankingInput, name string, strategy rating.StrategyName) *rankingtypes.Ranking {
	now := time.Now().UTC()
	ranking := &rankingtypes.Ranking{
		ID:       sharedtypes.NewRankingID(),
		GuildID:  input.GuildID,
		Name:     name,
		Strategy: strategy,

		Scale:             pick(input.Scale, s.defaults.Scale),
		DefaultRating:     pick(input.DefaultRating, s.defaults.DefaultRating),
		Tau:               pick(input.Tau, s.defaults.Tau),
		InitialRating:     pick(input.InitialRating, s.defaults.InitialRating),
		InitialDeviation:  pick(input.InitialDeviation, s.defaults.InitialDeviation),
		InitialVolatility: pick(input.InitialVolatility, s.defaults.InitialVolatility),
		WinDiffStep:       pick(input.WinDiffStep, s.defaults.WinDiffStep),

		CreatedAt: now,
		UpdatedAt: now,
	}
	ranking.PeriodLength = input.PeriodLength
	if ranking.PeriodLength == 0 {
		ranking.PeriodLength = s.defaults.PeriodLength
	}
	return ranking
}

func pick(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// validateTunables rejects values the rating engine cannot run on. Returns
// an empty string when the ranking is sound.
func validateTunables(r *rankingtypes.Ranking) string {
	switch {
	case r.Scale <= 0:
		return fmt.Sprintf("%s: scale must be positive, got %v", ErrInvalidConfig, r.Scale)
	case r.Tau <= 0:
		return fmt.Sprintf("%s: tau must be positive, got %v", ErrInvalidConfig, r.Tau)
	case r.InitialDeviation <= 0:
		return fmt.Sprintf("%s: initial deviation must be positive, got %v", ErrInvalidConfig, r.InitialDeviation)
	case r.InitialVolatility <= 0:
		return fmt.Sprintf("%s: initial volatility must be positive, got %v", ErrInvalidConfig, r.InitialVolatility)
	case r.PeriodLength <= 0:
		return fmt.Sprintf("%s: period length must be positive, got %v", ErrInvalidConfig, r.PeriodLength)
	case r.Strategy == rating.StrategyWinDiff && r.WinDiffStep <= 0:
		return fmt.Sprintf("%s: win diff step must be positive, got %v", ErrInvalidConfig, r.WinDiffStep)
	}
	return ""
}
