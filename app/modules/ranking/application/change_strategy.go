package rankingservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/results"
)

// ChangeStrategy switches a ranking's scoring strategy. Stored ratings are
// meaningless under the new strategy, so the caller must follow up with a
// full-history rescore that resets every player to the initial rating.
func (s *RankingService) ChangeStrategy(ctx context.Context, input ChangeStrategyInput) (results.OperationResult[StrategyChangedPayload, RankingFailurePayload], error) {
	return withTelemetry(s, ctx, "ChangeStrategy", input.RankingID, func(ctx context.Context) (results.OperationResult[StrategyChangedPayload, RankingFailurePayload], error) {
		if !input.Strategy.Valid() {
			return results.Failure[StrategyChangedPayload](&RankingFailurePayload{
				GuildID:   input.GuildID,
				RankingID: input.RankingID,
				Reason:    fmt.Sprintf("%s: %q", ErrInvalidStrategy, input.Strategy),
			}), nil
		}

		var (
			updated *rankingtypes.Ranking
			failure *RankingFailurePayload
		)

		err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			ranking, err := s.repo.GetRanking(ctx, tx, input.GuildID, input.RankingID)
			if err != nil {
				if errors.Is(err, rankingdb.ErrNotFound) {
					failure = &RankingFailurePayload{
						GuildID:   input.GuildID,
						RankingID: input.RankingID,
						Reason:    fmt.Sprintf("ranking %s not found", input.RankingID),
					}
					return nil
				}
				return fmt.Errorf("failed to get ranking: %w", err)
			}

			if ranking.Strategy == input.Strategy {
				updated = ranking
				return nil
			}

			ranking.Strategy = input.Strategy
			if reason := validateTunables(ranking); reason != "" {
				failure = &RankingFailurePayload{
					GuildID:   input.GuildID,
					RankingID: input.RankingID,
					Reason:    reason,
				}
				return nil
			}

			if err := s.repo.UpdateStrategy(ctx, tx, input.GuildID, input.RankingID, input.Strategy); err != nil {
				return fmt.Errorf("failed to update strategy: %w", err)
			}

			updated = ranking
			return nil
		})
		if err != nil {
			return results.OperationResult[StrategyChangedPayload, RankingFailurePayload]{}, err
		}
		if failure != nil {
			return results.Failure[StrategyChangedPayload](failure), nil
		}

		s.logger.InfoContext(ctx, "Ranking strategy changed",
			attr.RankingID("ranking_id", updated.ID),
			attr.GuildID("guild_id", updated.GuildID),
			attr.String("strategy", string(updated.Strategy)),
		)

		return results.Success[StrategyChangedPayload, RankingFailurePayload](&StrategyChangedPayload{Ranking: updated}), nil
	})
}
