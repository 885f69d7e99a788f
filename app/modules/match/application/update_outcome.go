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

// UpdateOutcome retroactively edits a finished match's outcome and/or finish
// time, then replays history from the earlier of the old and new finish
// times. Moving a match backward in time replays the span it crossed, so
// matches between the two positions see the corrected ratings.
func (s *MatchService) UpdateOutcome(ctx context.Context, input UpdateOutcomeInput) (results.OperationResult[OutcomeUpdatedPayload, MatchFailurePayload], error) {
	return withTelemetry(s, ctx, "UpdateOutcome", input.MatchID, func(ctx context.Context) (results.OperationResult[OutcomeUpdatedPayload, MatchFailurePayload], error) {
		probe, err := s.repo.GetMatch(ctx, s.db, input.MatchID)
		if err != nil {
			if errors.Is(err, matchdb.ErrMatchNotFound) {
				return updateFailure(input.GuildID, input.MatchID, err), nil
			}
			return results.OperationResult[OutcomeUpdatedPayload, MatchFailurePayload]{}, err
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

			if match.Status != matchtypes.MatchStatusFinished || match.TimeFinished == nil {
				domErr = ErrMatchNotFinished
				return nil
			}
			if input.Outcome != nil {
				if err := validateOutcome(input.Outcome, len(match.Teams)); err != nil {
					domErr = err
					return nil
				}
			}
			newFinished := *match.TimeFinished
			if input.TimeFinished != nil {
				newFinished = *input.TimeFinished
			}
			if newFinished.Before(match.TimeStarted) {
				domErr = ErrFinishBeforeStart
				return nil
			}

			// Replay from whichever position is earlier; both the vacated and
			// the newly occupied span need corrected ratings.
			since := *match.TimeFinished
			if newFinished.Before(since) {
				since = newFinished
			}

			ranking, err := s.rankingRepo.GetRanking(ctx, tx, match.GuildID, match.RankingID)
			if err != nil {
				return err
			}

			affected, err := s.preWindowRatings(ctx, tx, ranking, match.PlayerIDs(), since)
			if err != nil {
				return err
			}

			if input.Outcome != nil {
				match.Outcome = input.Outcome
			}
			match.TimeFinished = &newFinished
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
		})
		if err != nil {
			if errors.Is(err, matchdb.ErrMatchNotFound) {
				return updateFailure(input.GuildID, input.MatchID, err), nil
			}
			return results.OperationResult[OutcomeUpdatedPayload, MatchFailurePayload]{}, err
		}
		if domErr != nil {
			return updateFailure(input.GuildID, input.MatchID, domErr), nil
		}

		return results.Success[OutcomeUpdatedPayload, MatchFailurePayload](&OutcomeUpdatedPayload{
			Match:           match,
			RescoredMatches: outcome.matches,
		}), nil
	})
}

func updateFailure(guildID sharedtypes.GuildID, matchID sharedtypes.MatchID, reason error) results.OperationResult[OutcomeUpdatedPayload, MatchFailurePayload] {
	return results.Failure[OutcomeUpdatedPayload](&MatchFailurePayload{
		GuildID: guildID,
		MatchID: matchID,
		Reason:  reason.Error(),
	})
}
