package playerservice

import (
	"time"

	playerdb "github.com/rankforge/rankforge/app/modules/player/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// RegisterPlayerInput enrolls a player in a guild and, when RankingID is
// set, opens a rating row at the ranking's initial values.
type RegisterPlayerInput struct {
	GuildID     sharedtypes.GuildID   `json:"guild_id"`
	UserID      sharedtypes.DiscordID `json:"user_id"`
	DisplayName string                `json:"display_name,omitempty"`
	RankingID   sharedtypes.RankingID `json:"ranking_id,omitempty"`
}

// GetPlayerRatingInput fetches a player's current rating in one ranking.
type GetPlayerRatingInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
}

// ListPlayersInput lists a guild's registered players.
type ListPlayersInput struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// PlayerRegisteredPayload is the success payload of RegisterPlayer.
type PlayerRegisteredPayload struct {
	Player        *playerdb.Player `json:"player"`
	InitialRating *rating.Rating   `json:"initial_rating,omitempty"`
}

// PlayerRatingPayload is the success payload of GetPlayerRating.
type PlayerRatingPayload struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
	Rating    rating.Rating         `json:"rating"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// PlayerListPayload is the success payload of ListPlayers.
type PlayerListPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Players []*playerdb.Player  `json:"players"`
}

// PlayerFailurePayload is the shared domain-failure payload.
type PlayerFailurePayload struct {
	GuildID sharedtypes.GuildID   `json:"guild_id"`
	UserID  sharedtypes.DiscordID `json:"user_id,omitempty"`
	Reason  string                `json:"reason"`
}
