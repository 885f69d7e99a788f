package leaderboarddb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// LeaderboardDBImpl is the bun-backed Repository implementation.
type LeaderboardDBImpl struct{}

var _ Repository = (*LeaderboardDBImpl)(nil)

// NewRepository returns a ready LeaderboardDBImpl.
func NewRepository() *LeaderboardDBImpl { return &LeaderboardDBImpl{} }

func (r *LeaderboardDBImpl) GetStandings(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, limit int) ([]StandingRow, error) {
	var rows []StandingRow
	q := db.NewSelect().
		TableExpr("player_ratings AS pr").
		ColumnExpr("pr.user_id").
		ColumnExpr("COALESCE(p.display_name, '') AS display_name").
		ColumnExpr("pr.rating, pr.deviation, pr.volatility").
		ColumnExpr("pr.matches_played, pr.last_match_at").
		Join("LEFT JOIN players AS p ON p.guild_id = pr.guild_id AND p.user_id = pr.user_id").
		Where("pr.ranking_id = ?", rankingID).
		OrderExpr("pr.rating DESC, pr.user_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch standings for ranking %s: %w", rankingID, err)
	}

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows, nil
}
