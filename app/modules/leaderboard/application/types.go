package leaderboardservice

import (
	"time"

	leaderboarddb "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// GetStandingsInput fetches a ranking's standings. Limit <= 0 returns all.
type GetStandingsInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	Limit     int                   `json:"limit,omitempty"`
}

// GetRatingHistoryInput fetches one player's rating trajectory.
type GetRatingHistoryInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
}

// RenderHistoryChartInput renders a player's rating trajectory as a PNG.
type RenderHistoryChartInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
}

// ExportStandingsInput builds an xlsx workbook of a ranking's standings.
type ExportStandingsInput struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
}

// HistoryPoint is one observation of a player's rating: the pre-match
// snapshot of each finished match, plus a final point for the current rating.
type HistoryPoint struct {
	At        time.Time `json:"at"`
	Rating    float64   `json:"rating"`
	Deviation float64   `json:"deviation"`
}

// StandingsPayload is the success payload of GetStandings.
type StandingsPayload struct {
	GuildID   sharedtypes.GuildID         `json:"guild_id"`
	RankingID sharedtypes.RankingID       `json:"ranking_id"`
	Standings []leaderboarddb.StandingRow `json:"standings"`
}

// RatingHistoryPayload is the success payload of GetRatingHistory.
type RatingHistoryPayload struct {
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
	Points    []HistoryPoint        `json:"points"`
}

// HistoryChartPayload carries a rendered PNG.
type HistoryChartPayload struct {
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
	PNG       []byte                `json:"png"`
}

// StandingsExportPayload carries an xlsx workbook.
type StandingsExportPayload struct {
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	Filename  string                `json:"filename"`
	XLSX      []byte                `json:"xlsx"`
}

// LeaderboardFailurePayload is the shared domain-failure payload.
type LeaderboardFailurePayload struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id,omitempty"`
	Reason    string                `json:"reason"`
}
