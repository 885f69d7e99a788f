package playerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// PlayerDBImpl is the bun-backed Repository implementation.
type PlayerDBImpl struct{}

var _ Repository = (*PlayerDBImpl)(nil)

// NewRepository returns a ready PlayerDBImpl.
func NewRepository() *PlayerDBImpl { return &PlayerDBImpl{} }

func (r *PlayerDBImpl) CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	_, err := db.NewInsert().
		Model(player).
		On("CONFLICT (guild_id, user_id) DO UPDATE").
		Set("display_name = EXCLUDED.display_name, updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert player %s: %w", player.UserID, err)
	}
	return nil
}

func (r *PlayerDBImpl) GetPlayer(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.DiscordID) (*Player, error) {
	var player Player
	err := db.NewSelect().
		Model(&player).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to fetch player %s: %w", userID, err)
	}
	return &player, nil
}

func (r *PlayerDBImpl) ListPlayers(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]*Player, error) {
	var players []*Player
	err := db.NewSelect().
		Model(&players).
		Where("guild_id = ?", guildID).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for guild %s: %w", guildID, err)
	}
	return players, nil
}

func (r *PlayerDBImpl) EnsureRating(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID, initial rating.Rating) error {
	row := &PlayerRating{
		RankingID:  rankingID,
		UserID:     userID,
		GuildID:    guildID,
		Rating:     initial.Rating,
		Deviation:  initial.Deviation,
		Volatility: initial.Volatility,
	}
	_, err := db.NewInsert().
		Model(row).
		On("CONFLICT (ranking_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure rating for player %s in ranking %s: %w", userID, rankingID, err)
	}
	return nil
}

func (r *PlayerDBImpl) GetRating(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, userID sharedtypes.DiscordID) (rating.Rating, error) {
	var row PlayerRating
	err := db.NewSelect().
		Model(&row).
		Where("ranking_id = ?", rankingID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rating.Rating{}, ErrRatingNotFound
		}
		return rating.Rating{}, fmt.Errorf("failed to fetch rating for player %s: %w", userID, err)
	}
	return rating.Rating{Rating: row.Rating, Deviation: row.Deviation, Volatility: row.Volatility}, nil
}

func (r *PlayerDBImpl) GetRatings(ctx context.Context, db bun.IDB, rankingID sharedtypes.RankingID, userIDs []sharedtypes.DiscordID) (map[sharedtypes.DiscordID]rating.Rating, error) {
	if len(userIDs) == 0 {
		return map[sharedtypes.DiscordID]rating.Rating{}, nil
	}

	var rows []PlayerRating
	err := db.NewSelect().
		Model(&rows).
		Where("ranking_id = ?", rankingID).
		Where("user_id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ratings for ranking %s: %w", rankingID, err)
	}

	ratings := make(map[sharedtypes.DiscordID]rating.Rating, len(rows))
	for _, row := range rows {
		ratings[row.UserID] = rating.Rating{Rating: row.Rating, Deviation: row.Deviation, Volatility: row.Volatility}
	}
	return ratings, nil
}

func (r *PlayerDBImpl) UpdateRatings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, rankingID sharedtypes.RankingID, ratings map[sharedtypes.DiscordID]rating.Rating, matchesPlayed map[sharedtypes.DiscordID]int, lastPlayed map[sharedtypes.DiscordID]time.Time) error {
	if len(ratings) == 0 {
		return nil
	}

	rows := make([]*PlayerRating, 0, len(ratings))
	for userID, rt := range ratings {
		row := &PlayerRating{
			RankingID:  rankingID,
			UserID:     userID,
			GuildID:    guildID,
			Rating:     rt.Rating,
			Deviation:  rt.Deviation,
			Volatility: rt.Volatility,
		}
		if n, ok := matchesPlayed[userID]; ok {
			row.MatchesPlayed = n
		}
		if at, ok := lastPlayed[userID]; ok {
			t := at
			row.LastMatchAt = &t
		}
		rows = append(rows, row)
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (ranking_id, user_id) DO UPDATE").
		Set("rating = EXCLUDED.rating, deviation = EXCLUDED.deviation, volatility = EXCLUDED.volatility").
		Set("matches_played = EXCLUDED.matches_played, last_match_at = EXCLUDED.last_match_at, updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to write ratings for ranking %s: %w", rankingID, err)
	}
	return nil
}
