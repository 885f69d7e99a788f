package rankingdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// RankingDBImpl is the bun-backed Repository implementation.
type RankingDBImpl struct{}

var _ Repository = (*RankingDBImpl)(nil)

// NewRepository returns a ready RankingDBImpl.
func NewRepository() *RankingDBImpl { return &RankingDBImpl{} }

func (r *RankingDBImpl) CreateRanking(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error {
	model := fromDomain(ranking)
	if _, err := db.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert ranking %s: %w", ranking.ID, err)
	}
	return nil
}

func (r *RankingDBImpl) GetRanking(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID) (*rankingtypes.Ranking, error) {
	var model Ranking
	err := db.NewSelect().
		Model(&model).
		Where("id = ?", rankingID).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch ranking %s: %w", rankingID, err)
	}
	return toDomain(&model), nil
}

func (r *RankingDBImpl) ListRankings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*rankingtypes.Ranking, error) {
	var models []Ranking
	err := db.NewSelect().
		Model(&models).
		Where("guild_id = ?", guildID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings for guild %s: %w", guildID, err)
	}

	rankings := make([]*rankingtypes.Ranking, len(models))
	for i := range models {
		rankings[i] = toDomain(&models[i])
	}
	return rankings, nil
}

func (r *RankingDBImpl) UpdateConfig(ctx context.Context, db bun.IDB, ranking *rankingtypes.Ranking) error {
	model := fromDomain(ranking)
	res, err := db.NewUpdate().
		Model(model).
		Column("name", "scale", "default_rating", "tau",
			"initial_rating", "initial_deviation", "initial_volatility",
			"period_length_seconds", "win_diff_step").
		Set("updated_at = current_timestamp").
		Where("id = ?", ranking.ID).
		Where("guild_id = ?", ranking.GuildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update ranking %s: %w", ranking.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *RankingDBImpl) UpdateStrategy(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, strategy rating.StrategyName) error {
	res, err := db.NewUpdate().
		Model((*Ranking)(nil)).
		Set("strategy = ?", strategy).
		Set("updated_at = current_timestamp").
		Where("id = ?", rankingID).
		Where("guild_id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update strategy for ranking %s: %w", rankingID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
