package matchservice

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/uptrace/bun"

	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// FakeDB satisfies the Database interface; RunInTx just runs the closure.
type FakeDB struct {
	bun.IDB
}

func (f *FakeDB) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(context.Context, bun.Tx) error) error {
	return fn(ctx, bun.Tx{})
}

// ------------------------
// Fake Match Repo
// ------------------------

// FakeMatchRepository is an in-memory match store honoring the repository's
// ordering contract, so rescore tests exercise real replay behavior.
type FakeMatchRepository struct {
	matches map[sharedtypes.MatchID]*matchtypes.Match

	GetMatchFunc    func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchtypes.Match, error)
	UpdateMatchFunc func(ctx context.Context, db bun.IDB, match *matchtypes.Match) error
}

func NewFakeMatchRepository() *FakeMatchRepository {
	return &FakeMatchRepository{matches: make(map[sharedtypes.MatchID]*matchtypes.Match)}
}

func cloneMatch(m *matchtypes.Match) *matchtypes.Match {
	out := *m
	if m.TimeFinished != nil {
		t := *m.TimeFinished
		out.TimeFinished = &t
	}
	out.Outcome = append([]int(nil), m.Outcome...)
	out.Teams = cloneTeams(m.Teams)
	return &out
}

func cloneTeams(teams []matchtypes.Team) []matchtypes.Team {
	out := make([]matchtypes.Team, len(teams))
	for i, team := range teams {
		players := make([]matchtypes.MatchPlayer, len(team.Players))
		copy(players, team.Players)
		for pi := range players {
			if players[pi].TimeSinceLastMatch != nil {
				v := *players[pi].TimeSinceLastMatch
				players[pi].TimeSinceLastMatch = &v
			}
		}
		out[i] = matchtypes.Team{Players: players}
	}
	return out
}

func (f *FakeMatchRepository) CreateMatch(ctx context.Context, db bun.IDB, match *matchtypes.Match) error {
	f.matches[match.ID] = cloneMatch(match)
	return nil
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchtypes.Match, error) {
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	m, ok := f.matches[matchID]
	if !ok {
		return nil, matchdb.ErrMatchNotFound
	}
	return cloneMatch(m), nil
}

func (f *FakeMatchRepository) UpdateMatch(ctx context.Context, db bun.IDB, match *matchtypes.Match) error {
	if f.UpdateMatchFunc != nil {
		return f.UpdateMatchFunc(ctx, db, match)
	}
	if _, ok := f.matches[match.ID]; !ok {
		return matchdb.ErrNoRowsAffected
	}
	f.matches[match.ID] = cloneMatch(match)
	return nil
}

func (f *FakeMatchRepository) finishedSorted() []*matchtypes.Match {
	var out []*matchtypes.Match
	for _, m := range f.matches {
		if m.Status == matchtypes.MatchStatusFinished && m.TimeFinished != nil {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := *out[i].TimeFinished, *out[j].TimeFinished
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (f *FakeMatchRepository) ListFinishedSince(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, since time.Time) ([]*matchtypes.Match, error) {
	var out []*matchtypes.Match
	for _, m := range f.finishedSorted() {
		if m.RankingID == rankingID && !m.TimeFinished.Before(since) {
			out = append(out, cloneMatch(m))
		}
	}
	return out, nil
}

func (f *FakeMatchRepository) ListOngoing(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID) ([]*matchtypes.Match, error) {
	var out []*matchtypes.Match
	for _, m := range f.matches {
		if m.RankingID == rankingID && m.Status == matchtypes.MatchStatusOngoing {
			out = append(out, cloneMatch(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeStarted.Before(out[j].TimeStarted) })
	return out, nil
}

func (f *FakeMatchRepository) UpdateTeamSnapshots(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, teams []matchtypes.Team) error {
	m, ok := f.matches[matchID]
	if !ok {
		return matchdb.ErrNoRowsAffected
	}
	m.Teams = cloneTeams(teams)
	return nil
}

func (f *FakeMatchRepository) PlayerStatsBefore(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, before time.Time) (map[sharedtypes.DiscordID]matchdb.PriorStats, error) {
	stats := make(map[sharedtypes.DiscordID]matchdb.PriorStats)
	for _, m := range f.finishedSorted() {
		if m.RankingID != rankingID || !m.TimeFinished.Before(before) {
			continue
		}
		for _, id := range m.PlayerIDs() {
			s := stats[id]
			s.Matches++
			s.LastPlayed = *m.TimeFinished
			stats[id] = s
		}
	}
	return stats, nil
}

func (f *FakeMatchRepository) CountFinished(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID) (int, error) {
	n := 0
	for _, m := range f.matches {
		if m.RankingID == rankingID && m.Status == matchtypes.MatchStatusFinished {
			n++
		}
	}
	return n, nil
}

// ------------------------
// Fake Player Repo
// ------------------------

type ratingKey struct {
	rankingID sharedtypes.RankingID
	userID    sharedtypes.DiscordID
}

// FakePlayerRepository is an in-memory rating store.
type FakePlayerRepository struct {
	players map[sharedtypes.DiscordID]*playerdb.Player
	ratings map[ratingKey]rating.Rating

	// LastCommit records the final UpdateRatings call for assertions.
	LastCommit        map[sharedtypes.DiscordID]rating.Rating
	LastMatchesPlayed map[sharedtypes.DiscordID]int
	LastPlayedTimes   map[sharedtypes.DiscordID]time.Time
}

func NewFakePlayerRepository() *FakePlayerRepository {
	return &FakePlayerRepository{
		players: make(map[sharedtypes.DiscordID]*playerdb.Player),
		ratings: make(map[ratingKey]rating.Rating),
	}
}

func (f *FakePlayerRepository) CreatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	f.players[player.UserID] = player
	return nil
}

func (f *FakePlayerRepository) GetPlayer(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) (*playerdb.Player, error) {
	p, ok := f.players[userID]
	if !ok {
		return nil, playerdb.ErrPlayerNotFound
	}
	return p, nil
}

func (f *FakePlayerRepository) ListPlayers(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*playerdb.Player, error) {
	var out []*playerdb.Player
	for _, p := range f.players {
		if p.GuildID == guildID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *FakePlayerRepository) EnsureRating(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID, initial rating.Rating) error {
	key := ratingKey{rankingID, userID}
	if _, ok := f.ratings[key]; !ok {
		f.ratings[key] = initial
	}
	return nil
}

func (f *FakePlayerRepository) GetRating(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID) (rating.Rating, error) {
	r, ok := f.ratings[ratingKey{rankingID, userID}]
	if !ok {
		return rating.Rating{}, playerdb.ErrRatingNotFound
	}
	return r, nil
}

func (f *FakePlayerRepository) GetRatings(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, userIDs []sharedtypes.DiscordID) (map[sharedtypes.DiscordID]rating.Rating, error) {
	out := make(map[sharedtypes.DiscordID]rating.Rating)
	for _, id := range userIDs {
		if r, ok := f.ratings[ratingKey{rankingID, id}]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (f *FakePlayerRepository) UpdateRatings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, ratings map[sharedtypes.DiscordID]rating.Rating, matchesPlayed map[sharedtypes.DiscordID]int, lastPlayed map[sharedtypes.DiscordID]time.Time) error {
	for id, r := range ratings {
		f.ratings[ratingKey{rankingID, id}] = r
	}
	f.LastCommit = ratings
	f.LastMatchesPlayed = matchesPlayed
	f.LastPlayedTimes = lastPlayed
	return nil
}

// ------------------------
// Fake Ranking Repo
// ------------------------

// FakeRankingRepository serves rankings from a map.
type FakeRankingRepository struct {
	rankings map[sharedtypes.RankingID]*rankingtypes.Ranking
}

func NewFakeRankingRepository() *FakeRankingRepository {
	return &FakeRankingRepository{rankings: make(map[sharedtypes.RankingID]*rankingtypes.Ranking)}
}

func (f *FakeRankingRepository) CreateRanking(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error {
	f.rankings[ranking.ID] = ranking
	return nil
}

func (f *FakeRankingRepository) GetRanking(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID) (*rankingtypes.Ranking, error) {
	rk, ok := f.rankings[rankingID]
	if !ok {
		return nil, rankingdb.ErrNotFound
	}
	return rk, nil
}

func (f *FakeRankingRepository) ListRankings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*rankingtypes.Ranking, error) {
	var out []*rankingtypes.Ranking
	for _, rk := range f.rankings {
		if rk.GuildID == guildID {
			out = append(out, rk)
		}
	}
	return out, nil
}

func (f *FakeRankingRepository) UpdateConfig(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error {
	f.rankings[ranking.ID] = ranking
	return nil
}

func (f *FakeRankingRepository) UpdateStrategy(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, strategy rating.StrategyName) error {
	rk, ok := f.rankings[rankingID]
	if !ok {
		return rankingdb.ErrNotFound
	}
	rk.Strategy = strategy
	return nil
}
