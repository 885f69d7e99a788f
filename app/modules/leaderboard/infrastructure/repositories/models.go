package leaderboarddb

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// StandingRow is one player's row in a ranking's standings, ordered by
// current rating.
type StandingRow struct {
	Position    int                   `json:"position"`
	UserID      sharedtypes.DiscordID `json:"user_id"`
	DisplayName string                `json:"display_name,omitempty"`

	Rating     float64 `json:"rating"`
	Deviation  float64 `json:"deviation"`
	Volatility float64 `json:"volatility"`

	MatchesPlayed int        `json:"matches_played"`
	LastMatchAt   *time.Time `json:"last_match_at,omitempty"`
}
