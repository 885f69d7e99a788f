package leaderboarddb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// Repository reads standings off the player_ratings table. The db argument
// accepts either the shared *bun.DB or an open transaction.
type Repository interface {
	// GetStandings returns the ranking's players ordered by rating descending,
	// ties broken by user id. limit <= 0 means no limit.
	GetStandings(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, limit int) ([]StandingRow, error)
}
