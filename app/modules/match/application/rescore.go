package matchservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/attr"
	"github.com/rankforge/rankforge/internal/rating"
	"github.com/rankforge/rankforge/internal/results"
)

// rescoreOutcome is what a replay run reports back.
type rescoreOutcome struct {
	matches int
	players int
}

// Rescore replays a ranking's finished history from input.Since onward. It
// takes the ranking's rescore lock and runs inside one transaction, so the
// leaderboard never observes a half-applied replay.
func (s *MatchService) Rescore(ctx context.Context, input RescoreInput) (results.OperationResult[RescorePayload, MatchFailurePayload], error) {
	return withTelemetry(s, ctx, "Rescore", sharedtypes.MatchID{}, func(ctx context.Context) (results.OperationResult[RescorePayload, MatchFailurePayload], error) {
		unlock := s.lockRanking(input.RankingID)
		defer unlock()

		var outcome rescoreOutcome
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			ranking, err := s.rankingRepo.GetRanking(ctx, tx, input.GuildID, input.RankingID)
			if err != nil {
				return err
			}
			outcome, err = s.replayHistory(ctx, tx, ranking, input)
			return err
		})
		if err != nil {
			if errors.Is(err, rankingdb.ErrNotFound) {
				return results.Failure[RescorePayload](&MatchFailurePayload{
					GuildID: input.GuildID,
					Reason:  fmt.Sprintf("ranking %s not found", input.RankingID),
				}), nil
			}
			return results.OperationResult[RescorePayload, MatchFailurePayload]{}, err
		}

		return results.Success[RescorePayload, MatchFailurePayload](&RescorePayload{
			RankingID:       input.RankingID,
			RescoredMatches: outcome.matches,
			PlayersUpdated:  outcome.players,
		}), nil
	})
}

// replayHistory is the rescorer core. The caller must hold the ranking's
// rescore lock and supply an open transaction.
//
// Matches replay in (time_finished, id) order. A player's start rating at
// first touch resolves, in order: the ranking's initial values when
// ResetToInitial is set; the caller-supplied pre-window rating from
// AffectedRatings; otherwise the snapshot stored on that first match, which
// is their pre-window rating whenever their own history before the window
// did not change. Stored snapshots are rewritten as replay goes, so a later
// rescore of any suffix starts from consistent state.
func (s *MatchService) replayHistory(ctx context.Context, tx bun.IDB, ranking *rankingtypes.Ranking, input RescoreInput) (rescoreOutcome, error) {
	strategy, err := ranking.NewStrategy()
	if err != nil {
		return rescoreOutcome{}, fmt.Errorf("building strategy for ranking %s: %w", ranking.ID, err)
	}
	clock, err := ranking.PeriodClock()
	if err != nil {
		return rescoreOutcome{}, fmt.Errorf("building period clock for ranking %s: %w", ranking.ID, err)
	}

	since := input.Since
	affected := input.AffectedRatings
	if input.ResetToInitial {
		since = time.Time{}
		affected = nil
	}

	matches, err := s.repo.ListFinishedSince(ctx, tx, ranking.ID, since)
	if err != nil {
		return rescoreOutcome{}, err
	}

	cache := make(map[sharedtypes.DiscordID]rating.Rating)
	lastPlayed := make(map[sharedtypes.DiscordID]time.Time)
	counts := make(map[sharedtypes.DiscordID]int)

	if !input.ResetToInitial {
		stats, err := s.repo.PlayerStatsBefore(ctx, tx, ranking.ID, since)
		if err != nil {
			return rescoreOutcome{}, err
		}
		for id, st := range stats {
			lastPlayed[id] = st.LastPlayed
			counts[id] = st.Matches
		}
	}

	for _, m := range matches {
		for _, id := range m.PlayerIDs() {
			if _, seeded := cache[id]; seeded {
				continue
			}
			cache[id] = s.startRating(ranking, affected, m, id, input.ResetToInitial)
		}

		teams, err := replayMatch(strategy, clock, m, cache, lastPlayed)
		if err != nil {
			return rescoreOutcome{}, err
		}
		if err := s.repo.UpdateTeamSnapshots(ctx, tx, m.ID, teams); err != nil {
			return rescoreOutcome{}, err
		}
		for _, id := range m.PlayerIDs() {
			counts[id]++
		}
	}

	// Players of a mutated match may no longer appear in the window at all,
	// e.g. their sole match was canceled. Their rating still rolls back.
	for id, r := range affected {
		if _, touched := cache[id]; !touched {
			cache[id] = r
		}
	}

	if err := s.playerRepo.UpdateRatings(ctx, tx, ranking.GuildID, ranking.ID, cache, counts, lastPlayed); err != nil {
		return rescoreOutcome{}, err
	}

	s.metrics.RecordRescoredMatches(ctx, len(matches))
	s.logger.InfoContext(ctx, "Rescore complete",
		attr.RankingID("ranking_id", ranking.ID),
		attr.Int("matches", len(matches)),
		attr.Int("players", len(cache)),
		attr.Bool("reset", input.ResetToInitial),
		attr.ExtractCorrelationID(ctx),
	)
	return rescoreOutcome{matches: len(matches), players: len(cache)}, nil
}

// startRating resolves a player's rating going into their first replayed
// match.
func (s *MatchService) startRating(
	ranking *rankingtypes.Ranking,
	affected map[sharedtypes.DiscordID]rating.Rating,
	first *matchtypes.Match,
	id sharedtypes.DiscordID,
	reset bool,
) rating.Rating {
	if reset {
		return ranking.Initial()
	}
	if r, ok := affected[id]; ok {
		return r
	}
	if slot := first.Player(id); slot != nil && slot.Rating != (rating.Rating{}) {
		return slot.Rating
	}
	return ranking.Initial()
}

// preWindowRatings computes, for the given players, the rating each held just
// before the replay window opens at since. It must run BEFORE the triggering
// mutation is written: for each player it takes the snapshot stored on their
// earliest finished match at or after since, falling back to their current
// stored rating when they have no match in the window, and to the ranking's
// initial values when they have never played.
func (s *MatchService) preWindowRatings(
	ctx context.Context,
	tx bun.IDB,
	ranking *rankingtypes.Ranking,
	players []sharedtypes.DiscordID,
	since time.Time,
) (map[sharedtypes.DiscordID]rating.Rating, error) {
	window, err := s.repo.ListFinishedSince(ctx, tx, ranking.ID, since)
	if err != nil {
		return nil, err
	}

	out := make(map[sharedtypes.DiscordID]rating.Rating, len(players))
	remaining := make(map[sharedtypes.DiscordID]struct{}, len(players))
	for _, id := range players {
		remaining[id] = struct{}{}
	}

	for _, m := range window {
		if len(remaining) == 0 {
			break
		}
		for id := range remaining {
			if slot := m.Player(id); slot != nil {
				out[id] = slot.Rating
				delete(remaining, id)
			}
		}
	}

	if len(remaining) > 0 {
		missing := make([]sharedtypes.DiscordID, 0, len(remaining))
		for id := range remaining {
			missing = append(missing, id)
		}
		current, err := s.playerRepo.GetRatings(ctx, tx, ranking.ID, missing)
		if err != nil {
			return nil, err
		}
		for _, id := range missing {
			if r, ok := current[id]; ok {
				out[id] = r
			} else {
				out[id] = ranking.Initial()
			}
		}
	}
	return out, nil
}
