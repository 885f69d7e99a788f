// Package leaderboardevents defines the leaderboard module's topics and wire
// payloads.
package leaderboardevents

import (
	"time"

	leaderboarddb "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// Request topics consumed by the leaderboard router.
const (
	StandingsRequest       = "leaderboard.standings.request"
	RatingHistoryRequest   = "leaderboard.history.request"
	HistoryChartRequest    = "leaderboard.chart.request"
	StandingsExportRequest = "leaderboard.export.request"
)

// Result topics published after handling.
const (
	StandingsRetrieved     = "leaderboard.standings"
	StandingsFailed        = "leaderboard.standings.failed"
	RatingHistoryRetrieved = "leaderboard.history"
	RatingHistoryFailed    = "leaderboard.history.failed"
	HistoryChartRendered   = "leaderboard.chart"
	HistoryChartFailed     = "leaderboard.chart.failed"
	StandingsExported      = "leaderboard.export"
	StandingsExportFailed  = "leaderboard.export.failed"
)

// StandingsRequestPayloadV1 asks for a ranking's standings.
type StandingsRequestPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	Limit     int                   `json:"limit,omitempty"`
}

// RatingHistoryRequestPayloadV1 asks for a player's rating trajectory.
type RatingHistoryRequestPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
}

// HistoryChartRequestPayloadV1 asks for a rendered rating chart.
type HistoryChartRequestPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
}

// StandingsExportRequestPayloadV1 asks for an xlsx standings workbook.
type StandingsExportRequestPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
}

// HistoryPointPayload is one rating observation on the wire.
type HistoryPointPayload struct {
	At        time.Time `json:"at"`
	Rating    float64   `json:"rating"`
	Deviation float64   `json:"deviation"`
}

// StandingsPayloadV1 carries a ranking's standings.
type StandingsPayloadV1 struct {
	GuildID   sharedtypes.GuildID         `json:"guild_id"`
	RankingID sharedtypes.RankingID       `json:"ranking_id"`
	Standings []leaderboarddb.StandingRow `json:"standings"`
}

// RatingHistoryPayloadV1 carries a player's rating trajectory.
type RatingHistoryPayloadV1 struct {
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
	Points    []HistoryPointPayload `json:"points"`
}

// HistoryChartPayloadV1 carries a rendered PNG chart.
type HistoryChartPayloadV1 struct {
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	UserID    sharedtypes.DiscordID `json:"user_id"`
	PNG       []byte                `json:"png"`
}

// StandingsExportedPayloadV1 carries an xlsx workbook.
type StandingsExportedPayloadV1 struct {
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	Filename  string                `json:"filename"`
	XLSX      []byte                `json:"xlsx"`
}

// LeaderboardFailedPayloadV1 reports a domain failure for any leaderboard
// operation.
type LeaderboardFailedPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id,omitempty"`
	Reason    string                `json:"reason"`
}
