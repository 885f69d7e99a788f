package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// MatchDBImpl is the bun-backed Repository implementation.
type MatchDBImpl struct{}

var _ Repository = (*MatchDBImpl)(nil)

// NewRepository returns a ready MatchDBImpl.
func NewRepository() *MatchDBImpl { return &MatchDBImpl{} }

func (r *MatchDBImpl) CreateMatch(ctx context.Context, db bun.IDB, match *matchtypes.Match) error {
	row := fromDomain(match)
	if _, err := db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}
	return nil
}

func (r *MatchDBImpl) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchtypes.Match, error) {
	var row Match
	err := db.NewSelect().
		Model(&row).
		Where("id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	return row.toDomain(), nil
}

func (r *MatchDBImpl) UpdateMatch(ctx context.Context, db bun.IDB, match *matchtypes.Match) error {
	row := fromDomain(match)
	res, err := db.NewUpdate().
		Model(row).
		Column("status", "time_finished", "outcome", "teams", "updated_at").
		Set("updated_at = current_timestamp").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", match.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *MatchDBImpl) ListFinishedSince(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, since time.Time) ([]*matchtypes.Match, error) {
	var rows []Match
	err := db.NewSelect().
		Model(&rows).
		Where("ranking_id = ?", rankingID).
		Where("status = ?", matchtypes.MatchStatusFinished).
		Where("time_finished >= ?", since).
		Order("time_finished ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished matches for ranking %s: %w", rankingID, err)
	}

	matches := make([]*matchtypes.Match, len(rows))
	for i := range rows {
		matches[i] = rows[i].toDomain()
	}
	return matches, nil
}

func (r *MatchDBImpl) ListOngoing(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID) ([]*matchtypes.Match, error) {
	var rows []Match
	err := db.NewSelect().
		Model(&rows).
		Where("ranking_id = ?", rankingID).
		Where("status = ?", matchtypes.MatchStatusOngoing).
		Order("time_started ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ongoing matches for ranking %s: %w", rankingID, err)
	}

	matches := make([]*matchtypes.Match, len(rows))
	for i := range rows {
		matches[i] = rows[i].toDomain()
	}
	return matches, nil
}

func (r *MatchDBImpl) UpdateTeamSnapshots(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, teams []matchtypes.Team) error {
	res, err := db.NewUpdate().
		Model((*Match)(nil)).
		Set("teams = ?", teams).
		Set("updated_at = current_timestamp").
		Where("id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update team snapshots for match %s: %w", matchID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *MatchDBImpl) PlayerStatsBefore(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, before time.Time) (map[sharedtypes.DiscordID]PriorStats, error) {
	var rows []Match
	err := db.NewSelect().
		Model(&rows).
		Column("id", "time_finished", "teams").
		Where("ranking_id = ?", rankingID).
		Where("status = ?", matchtypes.MatchStatusFinished).
		Where("time_finished < ?", before).
		Order("time_finished DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prior matches for ranking %s: %w", rankingID, err)
	}

	// Rows are newest first, so the first sighting of a player is their most
	// recent finished match.
	stats := make(map[sharedtypes.DiscordID]PriorStats)
	for i := range rows {
		if rows[i].TimeFinished == nil {
			continue
		}
		for _, team := range rows[i].Teams {
			for _, p := range team.Players {
				s := stats[p.UserID]
				if s.Matches == 0 {
					s.LastPlayed = *rows[i].TimeFinished
				}
				s.Matches++
				stats[p.UserID] = s
			}
		}
	}
	return stats, nil
}

func (r *MatchDBImpl) CountFinished(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID) (int, error) {
	count, err := db.NewSelect().
		Model((*Match)(nil)).
		Where("ranking_id = ?", rankingID).
		Where("status = ?", matchtypes.MatchStatusFinished).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count finished matches for ranking %s: %w", rankingID, err)
	}
	return count, nil
}
