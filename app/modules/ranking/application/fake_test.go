package rankingservice

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	rankingdb "github.com/rankforge/rankforge/app/modules/ranking/infrastructure/repositories"
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

// FakeRankingRepository stores rankings in a map and lets tests override
// individual calls with Func fields.
type FakeRankingRepository struct {
	rankings map[sharedtypes.RankingID]*rankingtypes.Ranking

	CreateRankingFunc func(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error
	UpdateConfigFunc  func(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error
}

func NewFakeRankingRepository() *FakeRankingRepository {
	return &FakeRankingRepository{rankings: make(map[sharedtypes.RankingID]*rankingtypes.Ranking)}
}

func (f *FakeRankingRepository) CreateRanking(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error {
	if f.CreateRankingFunc != nil {
		return f.CreateRankingFunc(ctx, db, ranking)
	}
	clone := *ranking
	f.rankings[ranking.ID] = &clone
	return nil
}

func (f *FakeRankingRepository) GetRanking(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID) (*rankingtypes.Ranking, error) {
	rk, ok := f.rankings[rankingID]
	if !ok || rk.GuildID != guildID {
		return nil, rankingdb.ErrNotFound
	}
	clone := *rk
	return &clone, nil
}

func (f *FakeRankingRepository) ListRankings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*rankingtypes.Ranking, error) {
	var out []*rankingtypes.Ranking
	for _, rk := range f.rankings {
		if rk.GuildID == guildID {
			clone := *rk
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *FakeRankingRepository) UpdateConfig(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error {
	if f.UpdateConfigFunc != nil {
		return f.UpdateConfigFunc(ctx, db, ranking)
	}
	if _, ok := f.rankings[ranking.ID]; !ok {
		return rankingdb.ErrNoRowsAffected
	}
	clone := *ranking
	f.rankings[ranking.ID] = &clone
	return nil
}

func (f *FakeRankingRepository) UpdateStrategy(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, strategy rating.StrategyName) error {
	rk, ok := f.rankings[rankingID]
	if !ok {
		return rankingdb.ErrNoRowsAffected
	}
	rk.Strategy = strategy
	return nil
}
