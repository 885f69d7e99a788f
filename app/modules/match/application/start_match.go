package matchservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/results"
)

// StartMatch validates the lineup, registers any unseen players into the
// ranking at initial values, and opens an ongoing match carrying each
// player's current rating snapshot.
func (s *MatchService) StartMatch(ctx context.Context, input StartMatchInput) (results.OperationResult[MatchStartedPayload, MatchFailurePayload], error) {
	return withTelemetry(s, ctx, "StartMatch", sharedtypes.MatchID{}, func(ctx context.Context) (results.OperationResult[MatchStartedPayload, MatchFailurePayload], error) {
		if err := validateTeams(input.Teams); err != nil {
			return startFailure(input.GuildID, err), nil
		}

		timeStarted := input.TimeStarted
		if timeStarted.IsZero() {
			timeStarted = time.Now().UTC()
		}

		var match *matchtypes.Match
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			ranking, err := s.rankingRepo.GetRanking(ctx, tx, input.GuildID, input.RankingID)
			if err != nil {
				return err
			}

			var players []sharedtypes.DiscordID
			for _, team := range input.Teams {
				players = append(players, team.Players...)
			}
			for _, id := range players {
				if err := s.playerRepo.EnsureRating(ctx, tx, input.GuildID, input.RankingID, id, ranking.Initial()); err != nil {
					return err
				}
			}

			current, err := s.playerRepo.GetRatings(ctx, tx, input.RankingID, players)
			if err != nil {
				return err
			}

			teams := make([]matchtypes.Team, len(input.Teams))
			for ti, team := range input.Teams {
				slots := make([]matchtypes.MatchPlayer, len(team.Players))
				for pi, id := range team.Players {
					r, ok := current[id]
					if !ok {
						r = ranking.Initial()
					}
					slots[pi] = matchtypes.MatchPlayer{UserID: id, Rating: r}
				}
				teams[ti] = matchtypes.Team{Players: slots}
			}

			match = &matchtypes.Match{
				ID:          sharedtypes.NewMatchID(),
				GuildID:     input.GuildID,
				RankingID:   input.RankingID,
				Status:      matchtypes.MatchStatusOngoing,
				TimeStarted: timeStarted,
				Teams:       teams,
				CreatedBy:   input.CreatedBy,
			}
			return s.repo.CreateMatch(ctx, tx, match)
		})
		if err != nil {
			if errors.Is(err, rankingdb.ErrNotFound) {
				return startFailure(input.GuildID, fmt.Errorf("ranking %s not found", input.RankingID)), nil
			}
			return results.OperationResult[MatchStartedPayload, MatchFailurePayload]{}, err
		}

		return results.Success[MatchStartedPayload, MatchFailurePayload](&MatchStartedPayload{Match: match}), nil
	})
}

func startFailure(guildID sharedtypes.GuildID, reason error) results.OperationResult[MatchStartedPayload, MatchFailurePayload] {
	return results.Failure[MatchStartedPayload](&MatchFailurePayload{
		GuildID: guildID,
		Reason:  reason.Error(),
	})
}

// validateTeams enforces the lineup rules shared by StartMatch.
func validateTeams(teams []TeamInput) error {
	if len(teams) < 2 {
		return ErrTooFewTeams
	}
	seen := make(map[sharedtypes.DiscordID]struct{})
	for _, team := range teams {
		if len(team.Players) == 0 {
			return ErrEmptyTeam
		}
		for _, id := range team.Players {
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}
