package rankingservice

import (
	"context"
	"errors"
	"fmt"

	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/results"
)

// GetRanking fetches one ranking by id.
func (s *RankingService) GetRanking(ctx context.Context, input GetRankingInput) (results.OperationResult[RankingRetrievedPayload, RankingFailurePayload], error) {
	return withTelemetry(s, ctx, "GetRanking", input.RankingID, func(ctx context.Context) (results.OperationResult[RankingRetrievedPayload, RankingFailurePayload], error) {
		ranking, err := s.repo.GetRanking(ctx, s.db, input.GuildID, input.RankingID)
		if err != nil {
			if errors.Is(err, rankingdb.ErrNotFound) {
				return results.Failure[RankingRetrievedPayload](&RankingFailurePayload{
					GuildID:   input.GuildID,
					RankingID: input.RankingID,
					Reason:    fmt.Sprintf("ranking %s not found", input.RankingID),
				}), nil
			}
			return results.OperationResult[RankingRetrievedPayload, RankingFailurePayload]{}, fmt.Errorf("failed to get ranking: %w", err)
		}

		return results.Success[RankingRetrievedPayload, RankingFailurePayload](&RankingRetrievedPayload{Ranking: ranking}), nil
	})
}

// ListRankings returns every ranking in a guild.
func (s *RankingService) ListRankings(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult[RankingListPayload, RankingFailurePayload], error) {
	return withTelemetry(s, ctx, "ListRankings", sharedtypes.RankingID{}, func(ctx context.Context) (results.OperationResult[RankingListPayload, RankingFailurePayload], error) {
		rankings, err := s.repo.ListRankings(ctx, s.db, guildID)
		if err != nil {
			return results.OperationResult[RankingListPayload, RankingFailurePayload]{}, fmt.Errorf("failed to list rankings: %w", err)
		}

		return results.Success[RankingListPayload, RankingFailurePayload](&RankingListPayload{
			GuildID:  guildID,
			Rankings: rankings,
		}), nil
	})
}
