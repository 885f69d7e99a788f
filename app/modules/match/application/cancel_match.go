package matchservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/results"
)

// CancelMatch cancels a match. Canceling an ongoing match just closes it.
// Canceling a finished match removes it from rating history and replays
// everything from its finish time, so its players roll back to the ratings
// they held before it.
func (s *MatchService) CancelMatch(ctx context.Context, input CancelMatchInput) (results.OperationResult[MatchCanceledPayload, MatchFailurePayload], error) {
	return withTelemetry(s, ctx, "CancelMatch", input.MatchID, func(ctx context.Context) (results.OperationResult[MatchCanceledPayload, MatchFailurePayload], error) {
		probe, err := s.repo.GetMatch(ctx, s.db, input.MatchID)
		if err != nil {
			if errors.Is(err, matchdb.ErrMatchNotFound) {
				return cancelFailure(input.GuildID, input.MatchID, err), nil
			}
			return results.OperationResult[MatchCanceledPayload, MatchFailurePayload]{}, err
		}

		unlock := s.lockRanking(probe.RankingID)
		defer unlock()

		var (
			match   *matchtypes.Match
			outcome rescoreOutcome
			domErr  error
		)
		err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			var err error
			match, err = s.repo.GetMatch(ctx, tx, input.MatchID)
			if err != nil {
				return err
			}

			switch match.Status {
			case matchtypes.MatchStatusOngoing:
				match.Status = matchtypes.MatchStatusCanceled
				return s.repo.UpdateMatch(ctx, tx, match)

			case matchtypes.MatchStatusFinished:
				if match.TimeFinished == nil {
					domErr = ErrMatchNotFinished
					return nil
				}
				since := *match.TimeFinished

				ranking, err := s.rankingRepo.GetRanking(ctx, tx, match.GuildID, match.RankingID)
				if err != nil {
					return err
				}

				affected, err := s.preWindowRatings(ctx, tx, ranking, match.PlayerIDs(), since)
				if err != nil {
					return err
				}

				match.Status = matchtypes.MatchStatusCanceled
				if err := s.repo.UpdateMatch(ctx, tx, match); err != nil {
					return err
				}

				outcome, err = s.replayHistory(ctx, tx, ranking, RescoreInput{
					GuildID:         match.GuildID,
					RankingID:       match.RankingID,
					Since:           since,
					AffectedRatings: affected,
				})
				return err

			default:
				domErr = ErrMatchNotOngoing
				return nil
			}
		})
		if err != nil {
			if errors.Is(err, matchdb.ErrMatchNotFound) {
				return cancelFailure(input.GuildID, input.MatchID, err), nil
			}
			return results.OperationResult[MatchCanceledPayload, MatchFailurePayload]{}, err
		}
		if domErr != nil {
			return cancelFailure(input.GuildID, input.MatchID, domErr), nil
		}

		return results.Success[MatchCanceledPayload, MatchFailurePayload](&MatchCanceledPayload{
			Match:           match,
			RescoredMatches: outcome.matches,
		}), nil
	})
}

func cancelFailure(guildID sharedtypes.GuildID, matchID sharedtypes.MatchID, reason error) results.OperationResult[MatchCanceledPayload, MatchFailurePayload] {
	return results.Failure[MatchCanceledPayload](&MatchFailurePayload{
		GuildID: guildID,
		MatchID: matchID,
		Reason:  reason.Error(),
	})
}
