// Package rankingevents defines the ranking module's topics and wire payloads.
package rankingevents

import (
	"time"

	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/rating"
)

// Request topics consumed by the ranking router.
const (
	RankingCreateRequest         = "ranking.create.request"
	RankingUpdateConfigRequest   = "ranking.update_config.request"
	RankingChangeStrategyRequest = "ranking.change_strategy.request"
	RankingGetRequest            = "ranking.get.request"
	RankingListRequest           = "ranking.list.request"
)

// Result topics published after handling.
const (
	RankingCreated              = "ranking.created"
	RankingCreateFailed         = "ranking.create.failed"
	RankingConfigUpdated        = "ranking.config.updated"
	RankingUpdateConfigFailed   = "ranking.update_config.failed"
	RankingStrategyChanged      = "ranking.strategy.changed"
	RankingChangeStrategyFailed = "ranking.change_strategy.failed"
	RankingRetrieved            = "ranking.retrieved"
	RankingGetFailed            = "ranking.get.failed"
	RankingListed               = "ranking.listed"
	RankingListFailed           = "ranking.list.failed"
)

// RankingCreateRequestPayloadV1 asks to open a new ranking ladder. Zero
// tunables fall back to the app defaults.
type RankingCreateRequestPayloadV1 struct {
	GuildID  sharedtypes.GuildID `json:"guild_id"`
	Name     string              `json:"name"`
	Strategy rating.StrategyName `json:"strategy,omitempty"`

	Scale         float64 `json:"scale,omitempty"`
	DefaultRating float64 `json:"default_rating,omitempty"`
	Tau           float64 `json:"tau,omitempty"`

	InitialRating     float64 `json:"initial_rating,omitempty"`
	InitialDeviation  float64 `json:"initial_deviation,omitempty"`
	InitialVolatility float64 `json:"initial_volatility,omitempty"`

	PeriodLength time.Duration `json:"period_length,omitempty"`
	WinDiffStep  float64       `json:"win_diff_step,omitempty"`
}

// RankingUpdateConfigRequestPayloadV1 asks to change a ranking's tunables.
// Absent fields stay untouched.
type RankingUpdateConfigRequestPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`

	Name *string `json:"name,omitempty"`

	Scale         *float64 `json:"scale,omitempty"`
	DefaultRating *float64 `json:"default_rating,omitempty"`
	Tau           *float64 `json:"tau,omitempty"`

	InitialRating     *float64 `json:"initial_rating,omitempty"`
	InitialDeviation  *float64 `json:"initial_deviation,omitempty"`
	InitialVolatility *float64 `json:"initial_volatility,omitempty"`

	PeriodLength *time.Duration `json:"period_length,omitempty"`
	WinDiffStep  *float64       `json:"win_diff_step,omitempty"`
}

// RankingChangeStrategyRequestPayloadV1 asks to switch scoring strategies.
type RankingChangeStrategyRequestPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
	Strategy  rating.StrategyName   `json:"strategy"`
}

// RankingGetRequestPayloadV1 asks for one ranking.
type RankingGetRequestPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id"`
}

// RankingListRequestPayloadV1 asks for every ranking in a guild.
type RankingListRequestPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// RankingCreatedPayloadV1 announces a new ranking.
type RankingCreatedPayloadV1 struct {
	Ranking *rankingtypes.Ranking `json:"ranking"`
}

// RankingConfigUpdatedPayloadV1 announces a config change. RescoreRequired
// means a full-history replay has been queued behind it.
type RankingConfigUpdatedPayloadV1 struct {
	Ranking         *rankingtypes.Ranking `json:"ranking"`
	RescoreRequired bool                  `json:"rescore_required"`
}

// RankingStrategyChangedPayloadV1 announces a strategy switch. A full
// reset-and-replay rescore always follows.
type RankingStrategyChangedPayloadV1 struct {
	Ranking *rankingtypes.Ranking `json:"ranking"`
}

// RankingRetrievedPayloadV1 carries one ranking.
type RankingRetrievedPayloadV1 struct {
	Ranking *rankingtypes.Ranking `json:"ranking"`
}

// RankingListedPayloadV1 carries a guild's rankings.
type RankingListedPayloadV1 struct {
	GuildID  sharedtypes.GuildID     `json:"guild_id"`
	Rankings []*rankingtypes.Ranking `json:"rankings"`
}

// RankingFailedPayloadV1 reports a domain failure for any ranking operation.
type RankingFailedPayloadV1 struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	RankingID sharedtypes.RankingID `json:"ranking_id,omitempty"`
	Reason    string                `json:"reason"`
}
