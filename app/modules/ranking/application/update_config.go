package rankingservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/results"
)

// UpdateConfig applies the non-nil fields of the input to a ranking. When a
// rating tunable changes, the payload flags that stored ratings are stale and
// a full-history rescore must follow.
func (s *RankingService) UpdateConfig(ctx context.Context, input UpdateConfigInput) (results.OperationResult[ConfigUpdatedPayload, RankingFailurePayload], error) {
	return withTelemetry(s, ctx, "UpdateConfig", input.RankingID, func(ctx context.Context) (results.OperationResult[ConfigUpdatedPayload, RankingFailurePayload], error) {
		var (
			updated         *rankingtypes.Ranking
			rescoreRequired bool
			failure         *RankingFailurePayload
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

			rescoreRequired = applyConfig(ranking, input)
			if reason := validateConfigUpdate(ranking, input); reason != "" {
				failure = &RankingFailurePayload{
					GuildID:   input.GuildID,
					RankingID: input.RankingID,
					Reason:    reason,
				}
				return nil
			}

			ranking.UpdatedAt = time.Now().UTC()
			if err := s.repo.UpdateConfig(ctx, tx, ranking); err != nil {
				return fmt.Errorf("failed to update ranking config: %w", err)
			}

			updated = ranking
			return nil
		})
		if err != nil {
			return results.OperationResult[ConfigUpdatedPayload, RankingFailurePayload]{}, err
		}
		if failure != nil {
			return results.Failure[ConfigUpdatedPayload](failure), nil
		}

		s.logger.InfoContext(ctx, "Ranking config updated",
			attr.RankingID("ranking_id", updated.ID),
			attr.GuildID("guild_id", updated.GuildID),
			attr.Bool("rescore_required", rescoreRequired),
		)

		return results.Success[ConfigUpdatedPayload, RankingFailurePayload](&ConfigUpdatedPayload{
			Ranking:         updated,
			RescoreRequired: rescoreRequired,
		}), nil
	})
}

// applyConfig merges non-nil input fields into the ranking and reports
// whether any rating tunable changed. A name change alone never triggers a
// rescore.
func applyConfig(r *rankingtypes.Ranking, input UpdateConfigInput) bool {
	if input.Name != nil {
		r.Name = strings.TrimSpace(*input.Name)
	}

	changed := false
	setF := func(dst *float64, src *float64) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = true
		}
	}

	setF(&r.Scale, input.Scale)
	setF(&r.DefaultRating, input.DefaultRating)
	setF(&r.Tau, input.Tau)
	setF(&r.InitialRating, input.InitialRating)
	setF(&r.InitialDeviation, input.InitialDeviation)
	setF(&r.InitialVolatility, input.InitialVolatility)
	setF(&r.WinDiffStep, input.WinDiffStep)

	if input.PeriodLength != nil && *input.PeriodLength != r.PeriodLength {
		r.PeriodLength = *input.PeriodLength
		changed = true
	}

	return changed
}

func validateConfigUpdate(r *rankingtypes.Ranking, input UpdateConfigInput) string {
	if input.Name != nil && r.Name == "" {
		return ErrNameRequired.Error()
	}
	return validateTunables(r)
}
