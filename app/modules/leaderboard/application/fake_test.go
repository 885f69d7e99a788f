package leaderboardservice

import (
	"context"
	"sort"
	"time"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/repositories"
	matchdb "github.com/rankforge/rankforge/app/modules/match/infrastructure/repositories"
	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// FakeLeaderboardRepository computes standings from an in-memory rating map.
type FakeLeaderboardRepository struct {
	Rows []leaderboarddb.StandingRow
}

func (f *FakeLeaderboardRepository) GetStandings(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, limit int) ([]leaderboarddb.StandingRow, error) {
	rows := append([]leaderboarddb.StandingRow(nil), f.Rows...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].UserID < rows[j].UserID
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows, nil
}

// FakeMatchRepository serves finished matches in replay order.
type FakeMatchRepository struct {
	Matches []*matchtypes.Match
}

func (f *FakeMatchRepository) CreateMatch(ctx context.Context, db bun.IDB, match *matchtypes.Match) error {
	f.Matches = append(f.Matches, match)
	return nil
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchtypes.Match, error) {
	for _, m := range f.Matches {
		if m.ID == matchID {
			return m, nil
		}
	}
	return nil, matchdb.ErrMatchNotFound
}

func (f *FakeMatchRepository) UpdateMatch(ctx context.Context, db bun.IDB, match *matchtypes.Match) error {
	return nil
}

func (f *FakeMatchRepository) ListFinishedSince(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, since time.Time) ([]*matchtypes.Match, error) {
	var out []*matchtypes.Match
	for _, m := range f.Matches {
		if m.RankingID == rankingID && m.Status == matchtypes.MatchStatusFinished && m.TimeFinished != nil && !m.TimeFinished.Before(since) {
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
	return out, nil
}

func (f *FakeMatchRepository) ListOngoing(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID) ([]*matchtypes.Match, error) {
	return nil, nil
}

func (f *FakeMatchRepository) UpdateTeamSnapshots(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, teams []matchtypes.Team) error {
	return nil
}

func (f *FakeMatchRepository) PlayerStatsBefore(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, before time.Time) (map[sharedtypes.DiscordID]matchdb.PriorStats, error) {
	return map[sharedtypes.DiscordID]matchdb.PriorStats{}, nil
}

func (f *FakeMatchRepository) CountFinished(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID) (int, error) {
	n := 0
	for _, m := range f.Matches {
		if m.RankingID == rankingID && m.Status == matchtypes.MatchStatusFinished {
			n++
		}
	}
	return n, nil
}

type ratingKey struct {
	rankingID sharedtypes.RankingID
	userID    sharedtypes.DiscordID
}

// FakePlayerRepository serves current ratings from a map.
type FakePlayerRepository struct {
	Ratings map[ratingKey]rating.Rating
}

func (f *FakePlayerRepository) CreatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	return nil
}

func (f *FakePlayerRepository) GetPlayer(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) (*playerdb.Player, error) {
	return nil, playerdb.ErrPlayerNotFound
}

func (f *FakePlayerRepository) ListPlayers(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*playerdb.Player, error) {
	return nil, nil
}

func (f *FakePlayerRepository) EnsureRating(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID, initial rating.Rating) error {
	return nil
}

func (f *FakePlayerRepository) GetRating(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID) (rating.Rating, error) {
	r, ok := f.Ratings[ratingKey{rankingID, userID}]
	if !ok {
		return rating.Rating{}, playerdb.ErrRatingNotFound
	}
	return r, nil
}

func (f *FakePlayerRepository) GetRatings(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, userIDs []sharedtypes.DiscordID) (map[sharedtypes.DiscordID]rating.Rating, error) {
	out := make(map[sharedtypes.DiscordID]rating.Rating)
	for _, id := range userIDs {
		if r, ok := f.Ratings[ratingKey{rankingID, id}]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (f *FakePlayerRepository) UpdateRatings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, ratings map[sharedtypes.DiscordID]rating.Rating, matchesPlayed map[sharedtypes.DiscordID]int, lastPlayed map[sharedtypes.DiscordID]time.Time) error {
	for id, r := range ratings {
		f.Ratings[ratingKey{rankingID, id}] = r
	}
	return nil
}

// FakeRankingRepository serves rankings from a map.
type FakeRankingRepository struct {
	Rankings map[sharedtypes.RankingID]*rankingtypes.Ranking
}

func (f *FakeRankingRepository) CreateRanking(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error {
	f.Rankings[ranking.ID] = ranking
	return nil
}

func (f *FakeRankingRepository) GetRanking(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID) (*rankingtypes.Ranking, error) {
	rk, ok := f.Rankings[rankingID]
	if !ok {
		return nil, rankingdb.ErrNotFound
	}
	return rk, nil
}

func (f *FakeRankingRepository) ListRankings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*rankingtypes.Ranking, error) {
	return nil, nil
}

func (f *FakeRankingRepository) UpdateConfig(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error {
	return nil
}

func (f *FakeRankingRepository) UpdateStrategy(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, strategy rating.StrategyName) error {
	return nil
}
