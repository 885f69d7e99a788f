package matchservice

import (
	"fmt"
	"time"

	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// pairResult maps two teams' relative scores onto a pairwise result for the
// first team.
func pairResult(scoreA, scoreB int) float64 {
	switch {
	case scoreA > scoreB:
		return rating.Win
	case scoreA < scoreB:
		return rating.Loss
	default:
		return rating.Draw
	}
}

// ratingSum accumulates component-wise sums of post-pairing ratings so a
// player's pairings can be averaged.
type ratingSum struct {
	rating     float64
	deviation  float64
	volatility float64
	n          int
}

func (a *ratingSum) add(r rating.Rating) {
	a.rating += r.Rating
	a.deviation += r.Deviation
	a.volatility += r.Volatility
	a.n++
}

func (a *ratingSum) mean() rating.Rating {
	return rating.Rating{
		Rating:     a.rating / float64(a.n),
		Deviation:  a.deviation / float64(a.n),
		Volatility: a.volatility / float64(a.n),
	}
}

// replayMatch computes post-match ratings for every player of one finished
// match and advances the caches in place.
//
// Every pairing reads the pre-match snapshot, so pairing order cannot change
// the result. A player on a team of n facing m opponents gets the mean of
// their m pairwise updates. Inactivity decay rides inside each pairwise
// update; all of a player's pairings share the same period count, so the
// mean sees decay exactly once.
//
// It returns the teams with refreshed snapshots for persisting on the match.
func replayMatch(
	strategy rating.Strategy,
	clock rating.PeriodClock,
	m *matchtypes.Match,
	cache map[sharedtypes.DiscordID]rating.Rating,
	lastPlayed map[sharedtypes.DiscordID]time.Time,
) ([]matchtypes.Team, error) {
	if m.TimeFinished == nil {
		return nil, ErrMatchNotFinished
	}
	if len(m.Outcome) != len(m.Teams) {
		return nil, ErrOutcomeLengthMismatch
	}
	finished := *m.TimeFinished

	// Pre-match state per player, frozen before any pairing runs.
	pre := make(map[sharedtypes.DiscordID]rating.PlayerState)
	teams := make([]matchtypes.Team, len(m.Teams))
	for ti, team := range m.Teams {
		players := make([]matchtypes.MatchPlayer, len(team.Players))
		for pi, p := range team.Players {
			r, ok := cache[p.UserID]
			if !ok {
				return nil, fmt.Errorf("no start rating for player %s in match %s", p.UserID, m.ID)
			}

			slot := matchtypes.MatchPlayer{UserID: p.UserID, Rating: r}
			state := rating.PlayerState{Rating: r}
			if last, played := lastPlayed[p.UserID]; played {
				elapsed := finished.Sub(last)
				state.InactivePeriods = clock.Periods(elapsed)
				secs := int64(elapsed / time.Second)
				slot.TimeSinceLastMatch = &secs
			} else {
				slot.Flags |= matchtypes.FlagFirstMatch
			}

			pre[p.UserID] = state
			players[pi] = slot
		}
		teams[ti] = matchtypes.Team{Players: players}
	}

	sums := make(map[sharedtypes.DiscordID]*ratingSum)
	sumFor := func(id sharedtypes.DiscordID) *ratingSum {
		s, ok := sums[id]
		if !ok {
			s = &ratingSum{}
			sums[id] = s
		}
		return s
	}

	for i := 0; i < len(m.Teams); i++ {
		for j := i + 1; j < len(m.Teams); j++ {
			result := pairResult(m.Outcome[i], m.Outcome[j])
			for _, a := range m.Teams[i].Players {
				for _, b := range m.Teams[j].Players {
					ra, rb, err := strategy.Update(pre[a.UserID], pre[b.UserID], result)
					if err != nil {
						return nil, fmt.Errorf("pairing %s vs %s in match %s: %w", a.UserID, b.UserID, m.ID, err)
					}
					sumFor(a.UserID).add(ra)
					sumFor(b.UserID).add(rb)
				}
			}
		}
	}

	for id, sum := range sums {
		cache[id] = sum.mean()
		lastPlayed[id] = finished
	}
	return teams, nil
}
