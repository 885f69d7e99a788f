package playerdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// Player is one registered member of a guild.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	GuildID     sharedtypes.GuildID   `bun:"guild_id,pk"`
	UserID      sharedtypes.DiscordID `bun:"user_id,pk"`
	DisplayName string                `bun:"display_name,nullzero"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// PlayerRating is a player's current rating state within one ranking. It is
// created at registration with the ranking's initial values and mutated only
// by the rescorer.
type PlayerRating struct {
	bun.BaseModel `bun:"table:player_ratings,alias:pr"`

	RankingID sharedtypes.RankingID `bun:"ranking_id,pk,type:uuid"`
	UserID    sharedtypes.DiscordID `bun:"user_id,pk"`
	GuildID   sharedtypes.GuildID   `bun:"guild_id,notnull"`

	Rating     float64 `bun:"rating,notnull"`
	Deviation  float64 `bun:"deviation,notnull"`
	Volatility float64 `bun:"volatility,notnull"`

	MatchesPlayed int        `bun:"matches_played,notnull,default:0"`
	LastMatchAt   *time.Time `bun:"last_match_at,nullzero"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
