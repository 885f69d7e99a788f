package rankingdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// Repository defines the contract for ranking persistence. The db argument
// accepts either the shared *bun.DB or an open transaction.
//
// Error semantics:
//   - ErrNotFound: the ranking does not exist (GetRanking)
//   - ErrNoRowsAffected: UPDATE matched no rows
//   - other errors: infrastructure failures
type Repository interface {
	CreateRanking(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error
	GetRanking(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID) (*rankingtypes.Ranking, error)
	ListRankings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*rankingtypes.Ranking, error)
	UpdateConfig(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error
	UpdateStrategy(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, strategy rating.StrategyName) error
}
