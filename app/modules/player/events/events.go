// Package playerevents defines the player module's topics and wire payloads.
package playerevents

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// Request topics consumed by the player router.
const (
	PlayerRegisterRequest  = "player.register.request"
	PlayerGetRatingRequest = "player.get_rating.request"
	PlayerListRequest      = "player.list.request"
)

// Result topics published after handling.
const (
	PlayerRegistered      = "player.registered"
	PlayerRegisterFailed  = "player.register.failed"
	PlayerRating          = "player.rating"
	PlayerGetRatingFailed = "player.get_rating.failed"
	PlayerListed          = "player.listed"
	PlayerListFailed      = "player.list.failed"
)

// PlayerRegisterRequestPayloadV1 asks to enroll a player. RankingID is
// optional; when set, a rating row is opened at the ranking's initial values.
type PlayerRegisterRequestPayloadV1 struct {
	GuildID     sharedtypes.GuildID   `json:"guild_id"`
	UserID      sharedtypes.DiscordID `json:"user_id"`
	DisplayName string                `json:"display_name,omitempty"`
	RankingID   sharedtypes.RankingID `json:"ranking_id,omitempty"`
}

// PlayerGetRatingRequestPayloadV1 asks for a player's current rating.
type PlayerGetRatingRequestPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
}

// PlayerListRequestPayloadV1 asks for a guild's registered players.
type PlayerListRequestPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// PlayerInfoPayload is one registered player on the wire.
type PlayerInfoPayload struct {
	UserID      sharedtypes.DiscordID `json:"user_id"`
	DisplayName string                `json:"display_name,omitempty"`
}

// PlayerRegisteredPayloadV1 announces an enrollment.
type PlayerRegisteredPayloadV1 struct {
	GuildID       sharedtypes.GuildID   `json:"guild_id"`
	UserID        sharedtypes.DiscordID `json:"user_id"`
	DisplayName   string                `json:"display_name,omitempty"`
	InitialRating *rating.Rating        `json:"initial_rating,omitempty"`
}

// PlayerRatingPayloadV1 carries a player's current rating.
type PlayerRatingPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
	Rating    rating.Rating         `json:"rating"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// PlayerListedPayloadV1 carries a guild's players.
type PlayerListedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Players []PlayerInfoPayload `json:"players"`
}

// PlayerFailedPayloadV1 reports a domain failure for any player operation.
type PlayerFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID   `json:"guild_id"`
	UserID  sharedtypes.DiscordID `json:"user_id,omitempty"`
	Reason  string                `json:"reason"`
}
