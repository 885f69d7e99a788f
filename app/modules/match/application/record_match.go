package matchservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/results"
)

// RecordOutcome finalizes an ongoing match and replays every match finished
// at or after its finish time. A backdated TimeFinished therefore inserts
// the match into history, and everything after it is rescored in one
// transaction.
func (s *MatchService) RecordOutcome(ctx context.Context, input RecordOutcomeInput) (results.OperationResult[MatchFinalizedPayload, MatchFailurePayload], error) {
	return withTelemetry(s, ctx, "RecordOutcome", input.MatchID, func(ctx context.Context) (results.OperationResult[MatchFinalizedPayload, MatchFailurePayload], error) {
		timeFinished := input.TimeFinished
		if timeFinished.IsZero() {
			timeFinished = time.Now().UTC()
		}

		// An initial read learns the ranking so its rescore lock can be held
		// across the transaction. The match is re-read inside the tx.
		probe, err := s.repo.GetMatch(ctx, s.db, input.MatchID)
		if err != nil {
			if errors.Is(err, matchdb.ErrMatchNotFound) {
				return finalizeFailure(input.GuildID, input.MatchID, err), nil
			}
			return results.OperationResult[MatchFinalizedPayload, MatchFailurePayload]{}, err
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

			if match.Status != matchtypes.MatchStatusOngoing {
				domErr = ErrMatchNotOngoing
				return nil
			}
			if err := validateOutcome(input.Outcome, len(match.Teams)); err != nil {
				domErr = err
				return nil
			}
			if timeFinished.Before(match.TimeStarted) {
				domErr = ErrFinishBeforeStart
				return nil
			}

			ranking, err := s.rankingRepo.GetRanking(ctx, tx, match.GuildID, match.RankingID)
			if err != nil {
				return err
			}

			// Pre-window ratings must be read before the match joins history.
			affected, err := s.preWindowRatings(ctx, tx, ranking, match.PlayerIDs(), timeFinished)
			if err != nil {
				return err
			}

			match.Status = matchtypes.MatchStatusFinished
			match.TimeFinished = &timeFinished
			match.Outcome = input.Outcome
			if err := s.repo.UpdateMatch(ctx, tx, match); err != nil {
				return err
			}

			outcome, err = s.replayHistory(ctx, tx, ranking, RescoreInput{
				GuildID:         match.GuildID,
				RankingID:       match.RankingID,
				Since:           timeFinished,
				AffectedRatings: affected,
			})
			return err
		})
		if err != nil {
			if errors.Is(err, matchdb.ErrMatchNotFound) {
				return finalizeFailure(input.GuildID, input.MatchID, err), nil
			}
			return results.OperationResult[MatchFinalizedPayload, MatchFailurePayload]{}, err
		}
		if domErr != nil {
			return finalizeFailure(input.GuildID, input.MatchID, domErr), nil
		}

		return results.Success[MatchFinalizedPayload, MatchFailurePayload](&MatchFinalizedPayload{
			Match:           match,
			RescoredMatches: outcome.matches,
		}), nil
	})
}

func finalizeFailure(guildID sharedtypes.GuildID, matchID sharedtypes.MatchID, reason error) results.OperationResult[MatchFinalizedPayload, MatchFailurePayload] {
	return results.Failure[MatchFinalizedPayload](&MatchFailurePayload{
		GuildID: guildID,
		MatchID: matchID,
		Reason:  reason.Error(),
	})
}

// validateOutcome checks an outcome slice against a match's team count.
func validateOutcome(outcome []int, teams int) error {
	if len(outcome) != teams {
		return fmt.Errorf("%w: got %d entries for %d teams", ErrOutcomeLengthMismatch, len(outcome), teams)
	}
	return nil
}
